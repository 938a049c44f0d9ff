package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding
	Logout     key.Binding

	// View switching
	ViewSearch    key.Binding
	ViewFavorites key.Binding
	ViewActivity  key.Binding

	// Search actions
	ToggleFavorite key.Binding
	NextPage       key.Binding
	PrevPage       key.Binding
	FirstPage      key.Binding
	EditBreeds     key.Binding
	EditZips       key.Binding
	EditAgeMin     key.Binding
	EditAgeMax     key.Binding
	CycleSort      key.Binding
	FlipDirection  key.Binding
	CyclePageSize  key.Binding
	ClearFilters   key.Binding
	Refresh        key.Binding

	// Favorites and match actions
	Match  key.Binding
	Remove key.Binding
	Back   key.Binding

	// Activity actions
	CycleLevel   key.Binding
	ToggleFollow key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	PageUp       key.Binding
	PageDown     key.Binding

	// Input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Cycle views"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Cycle views (reverse)"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close input / back to search"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Log out"),
		),

		// View switching
		ViewSearch: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Search view"),
		),
		ViewFavorites: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Favorites view"),
		),
		ViewActivity: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Activity log"),
		),

		// Search actions
		ToggleFavorite: key.NewBinding(
			key.WithKeys(" ", "f"),
			key.WithHelp("space/f", "Toggle favorite"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "]"),
			key.WithHelp("n/]", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "["),
			key.WithHelp("p/[", "Previous page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "First page"),
		),
		EditBreeds: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Pick breeds"),
		),
		EditZips: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "Zip codes"),
		),
		EditAgeMin: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Minimum age"),
		),
		EditAgeMax: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "Maximum age"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle sort field"),
		),
		FlipDirection: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Flip sort direction"),
		),
		CyclePageSize: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Cycle page size"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear filters"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Search again"),
		),

		// Favorites actions
		Match: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "Find my match"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove favorite"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "backspace"),
			key.WithHelp("b", "Back to favorites"),
		),

		// Activity actions
		CycleLevel: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Cycle log level"),
		),
		ToggleFollow: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Toggle follow mode"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Half page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up (activity)"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " "),
			key.WithHelp("pgdn/space", "Page down (activity)"),
		),

		// Input
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ViewSearch, k.ViewFavorites, k.ViewActivity, k.Escape},
		{k.Up, k.Down, k.Top, k.Bottom, k.HalfPageDown, k.HalfPageUp, k.PageDown, k.PageUp},
		{k.EditBreeds, k.EditZips, k.EditAgeMin, k.EditAgeMax, k.ClearFilters},
		{k.NextPage, k.PrevPage, k.FirstPage, k.CycleSort, k.FlipDirection, k.CyclePageSize, k.Refresh},
		{k.ToggleFavorite, k.Remove, k.Match, k.Back},
		{k.CycleLevel, k.ToggleFollow},
		{k.CycleTheme, k.Logout, k.Help, k.Quit},
	}
}
