package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette. Colors are hex strings so they can be handed to
// lipgloss directly or to BgStyle.
type Theme struct {
	Name string

	Background string // behind modals
	Surface    string // header, command bar, unfocused panels
	FocusBg    string // focused panel
	Selection  string // cursor row

	BorderMuted string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// TagColors maps tag names (tagFavorite, tagBreed, ...) to chip colors.
	TagColors map[string]string
}

// Styles are the text styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	tagColors map[string]string
	chipText  string
	muted     string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: fg(t.Text).
			Background(lipgloss.Color(t.Surface)).
			Padding(0, 1),
		Logo: fg(t.Warning).Bold(true),
		Selected: fg(t.Text).
			Background(lipgloss.Color(t.Selection)),

		tagColors: t.TagColors,
		chipText:  t.Background,
		muted:     t.Muted,
	}
}

// TagStyle returns the chip style for tag, falling back to the muted color.
func (s Styles) TagStyle(tag string) lipgloss.Style {
	color, ok := s.tagColors[tag]
	if !ok {
		color = s.muted
	}
	return fg(s.chipText).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground paints every text style onto bgColor so styled runs do not
// punch holes in a filled panel. Header and Selected keep their own fill.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	for _, st := range []*lipgloss.Style{
		&s.Text, &s.MutedText, &s.FaintText, &s.AccentText,
		&s.SuccessText, &s.WarningText, &s.DangerText, &s.InfoText, &s.Logo,
	} {
		*st = st.Background(bg)
	}
	return s
}

// Tag names used with TagStyle.
const (
	tagFavorite = "favorite"
	tagBreed    = "breed"
	tagZip      = "zip"
	tagAge      = "age"
	tagSort     = "sort"
	tagMatch    = "match"
	tagError    = "error"
)

var themeOrder = []Theme{nightfoxTheme(), kanagawaTheme(), slateTheme()}

// GetTheme returns the theme called name, or the first theme.
func GetTheme(name string) Theme {
	for _, t := range themeOrder {
		if t.Name == name {
			return t
		}
	}
	return themeOrder[0]
}

// NextTheme returns the name after current, wrapping. Unknown names restart
// the cycle.
func NextTheme(current string) string {
	for i, t := range themeOrder {
		if t.Name == current {
			return themeOrder[(i+1)%len(themeOrder)].Name
		}
	}
	return themeOrder[0].Name
}

// ThemeNames lists the themes in cycle order.
func ThemeNames() []string {
	names := make([]string, len(themeOrder))
	for i, t := range themeOrder {
		names[i] = t.Name
	}
	return names
}

// tags assigns the chip palette in tag order: favorite, breed, zip, age,
// sort, match, error.
func tags(colors ...string) map[string]string {
	keys := []string{tagFavorite, tagBreed, tagZip, tagAge, tagSort, tagMatch, tagError}
	m := make(map[string]string, len(keys))
	for i, k := range keys {
		m[k] = colors[i]
	}
	return m
}

// https://github.com/EdenEast/nightfox.nvim
func nightfoxTheme() Theme {
	return Theme{
		Name:        "Nightfox",
		Background:  "#131a24",
		Surface:     "#192330",
		FocusBg:     "#29394f",
		Selection:   "#2b3b51",
		BorderMuted: "#212e3f",
		BorderFocus: "#719cd6",
		Text:        "#cdcecf",
		Muted:       "#738091",
		Faint:       "#71839b",
		Accent:      "#719cd6",
		Success:     "#81b29a",
		Warning:     "#dbc074",
		Danger:      "#c94f6d",
		Info:        "#63cdcf",
		TagColors:   tags("#dbc074", "#719cd6", "#63cdcf", "#9d79d6", "#81b29a", "#f4a261", "#c94f6d"),
	}
}

// https://github.com/rebelot/kanagawa.nvim
func kanagawaTheme() Theme {
	return Theme{
		Name:        "Kanagawa",
		Background:  "#16161D",
		Surface:     "#1F1F28",
		FocusBg:     "#2A2A37",
		Selection:   "#2D4F67",
		BorderMuted: "#2A2A37",
		BorderFocus: "#7E9CD8",
		Text:        "#DCD7BA",
		Muted:       "#C8C093",
		Faint:       "#727169",
		Accent:      "#7E9CD8",
		Success:     "#98BB6C",
		Warning:     "#E6C384",
		Danger:      "#E46876",
		Info:        "#7FB4CA",
		TagColors:   tags("#E6C384", "#7E9CD8", "#7FB4CA", "#957FB8", "#98BB6C", "#FFA066", "#E46876"),
	}
}

// Tailwind slate and sky.
func slateTheme() Theme {
	return Theme{
		Name:        "Slate",
		Background:  "#020617",
		Surface:     "#0f172a",
		FocusBg:     "#283548",
		Selection:   "#0284c7",
		BorderMuted: "#1e293b",
		BorderFocus: "#38bdf8",
		Text:        "#f1f5f9",
		Muted:       "#94a3b8",
		Faint:       "#64748b",
		Accent:      "#38bdf8",
		Success:     "#22c55e",
		Warning:     "#f59e0b",
		Danger:      "#ef4444",
		Info:        "#06b6d4",
		TagColors:   tags("#f59e0b", "#38bdf8", "#06b6d4", "#a78bfa", "#22c55e", "#fb923c", "#dc2626"),
	}
}
