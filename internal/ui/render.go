package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pawmatch/internal/breeds"
	"github.com/five82/pawmatch/internal/catalog"
	"github.com/five82/pawmatch/internal/filter"
	"github.com/five82/pawmatch/internal/paging"
)

// renderMain lays out header, the active view and the command bar.
func (m Model) renderMain() string {
	header := m.renderHeader()
	cmdBar := m.renderCommandBar()
	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(cmdBar), 3)

	var body string
	switch m.currentView {
	case ViewFavorites:
		body = m.renderFavorites(m.width, bodyHeight)
	case ViewMatch:
		body = m.renderMatch(m.width, bodyHeight)
	case ViewActivity:
		body = m.renderActivity(m.width, bodyHeight)
	default:
		body = m.renderSearch(m.width, bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, cmdBar)
}

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("pawmatch", styles.Logo)}
	if m.login.user != "" {
		parts = append(parts, bg.Render("● "+m.login.user, styles.SuccessText))
	}

	if m.hasPage {
		first, last := paging.Window(m.page.Offset, m.page.Filter.PageSize(), m.page.Total)
		label := "Showing"
		if compact {
			label = ""
		}
		text := fmt.Sprintf("%d-%d of %d", first, last, m.page.Total)
		if m.page.Total == 0 {
			text = "no results"
		}
		parts = append(parts, strings.TrimSpace(bg.Render(label, styles.MutedText)+bg.Space()+bg.Render(text, styles.Text)))
	}

	parts = append(parts,
		bg.Render("Favorites:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", m.favs.Len()), styles.TagStyle(tagFavorite).UnsetPadding()))

	if m.busy() {
		label := "Searching..."
		if m.matching {
			label = "Matching..."
		}
		parts = append(parts, bg.Render(m.spinner.View()+" "+label, styles.WarningText))
	}

	if status := m.statusLine(); status != "" {
		limit := 80
		if compact {
			limit = 40
		}
		style := styles.WarningText
		if m.notice == "" {
			style = styles.DangerText
		}
		parts = append(parts, bg.Render(truncate(status, limit), style))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints for the active view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.currentView == ViewSearch && m.input == inputBreed:
		commands = []cmd{{"enter", "Toggle breed"}, {"up/down", "Choose"}, {"esc", "Done"}}
	case m.currentView == ViewSearch && m.input != inputNone:
		commands = []cmd{{"enter", "Apply"}, {"esc", "Cancel"}}
	case m.currentView == ViewFavorites:
		commands = []cmd{{"j/k", "Navigate"}, {"x", "Remove"}, {"M", "Match"}, {"1", "Search"}, {"?", "More"}}
	case m.currentView == ViewMatch:
		commands = []cmd{{"M", "Again"}, {"esc", "Favorites"}, {"?", "More"}}
	case m.currentView == ViewActivity:
		follow := "Follow"
		if m.activity.follow {
			follow = "Pause"
		}
		commands = []cmd{{"F", follow}, {"v", "Level " + m.activity.levelName()}, {"j/k", "Scroll"}, {"1", "Search"}, {"?", "More"}}
	default:
		commands = []cmd{
			{"space", "Favorite"},
			{"n/p", "Page"},
			{"b", "Breeds"},
			{"z", "Zips"},
			{"a/A", "Age"},
			{"s", "Sort"},
			{"M", "Match"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderTitledBox draws content inside a rounded border with title set into
// the top edge.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor := m.theme.BorderMuted
	bgColor := m.theme.Surface
	if focused {
		borderColor = m.theme.BorderFocus
		bgColor = m.theme.FocusBg
	}
	border := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor)).Background(lipgloss.Color(bgColor))
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent)).Background(lipgloss.Color(bgColor)).Bold(true)

	inner := max(width-2, 1)
	rows := max(height-2, 1)

	label := truncate(title, max(inner-4, 1))
	fill := max(inner-lipgloss.Width(label)-3, 0)
	top := border.Render("╭─ ") + titleStyle.Render(label) + border.Render(" "+strings.Repeat("─", fill)+"╮")
	if lipgloss.Width(label)+3 > inner {
		top = border.Render("╭" + strings.Repeat("─", inner) + "╮")
	}

	body := lipgloss.NewStyle().
		Background(lipgloss.Color(bgColor)).
		Width(inner).
		Height(rows).
		MaxHeight(rows).
		Render(content)

	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines)+2)
	out = append(out, top)
	side := border.Render("│")
	for _, line := range lines {
		out = append(out, side+line+side)
	}
	out = append(out, border.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return strings.Join(out, "\n")
}

// renderSearch renders the filter panel beside (or above, when narrow) the
// results table.
func (m Model) renderSearch(width, height int) string {
	if width < LayoutCompactWidth {
		filters := m.renderFilters(width, m.filterPanelHeight())
		results := m.renderResults(width, max(height-lipgloss.Height(filters), 3))
		return lipgloss.JoinVertical(lipgloss.Left, filters, results)
	}
	filters := m.renderFilters(filterPaneWidth, height)
	results := m.renderResults(width-filterPaneWidth, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, filters, results)
}

func (m Model) filterPanelHeight() int {
	// Four label and value pairs, the page size line and the border.
	const base = 11
	switch m.input {
	case inputBreed:
		return base + 2 + len(m.pickerItems())
	case inputNone:
		return base
	}
	return base + 2
}

// renderFilters shows the active criteria and any open editor.
func (m Model) renderFilters(width, height int) string {
	focused := m.input != inputNone
	bgColor := ternary(focused, m.theme.FocusBg, m.theme.Surface)
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)
	inner := max(width-2, 8)

	chips := func(tag string, values []string) string {
		if len(values) == 0 {
			return bg.Render("any", styles.FaintText)
		}
		rendered := make([]string, 0, len(values))
		for _, v := range values {
			rendered = append(rendered, styles.TagStyle(tag).Render(truncate(v, inner-4)))
		}
		return bg.Join(rendered, " ")
	}

	var lines []string
	row := func(label, value string) {
		lines = append(lines, bg.Render(label, styles.MutedText))
		lines = append(lines, value)
	}

	row("Breeds (b)", chips(tagBreed, m.filter.Breeds()))
	row("Zip codes (z)", chips(tagZip, m.filter.ZipCodes()))
	row("Age (a/A)", m.renderAgeRange(styles, bg))
	row("Sort (s/d)", m.renderSortLabel(styles, bg))
	lines = append(lines, bg.Render("Page size (S)", styles.MutedText)+bg.Space()+
		bg.Render(fmt.Sprintf("%d", m.filter.PageSize()), styles.Text))

	switch m.input {
	case inputBreed:
		lines = append(lines, "", m.picker.input.View())
		for i, item := range m.pickerItems() {
			lines = append(lines, m.renderPickerItem(item, i == m.picker.cursor, inner, styles, bg))
		}
	case inputZip, inputAgeMin, inputAgeMax:
		lines = append(lines, "", m.fieldInput.View())
	}

	return m.renderTitledBox("Filters", strings.Join(lines, "\n"), width, height, focused)
}

func (m Model) renderAgeRange(styles Styles, bg BgStyle) string {
	lo, hi := m.filter.AgeMin().String(), m.filter.AgeMax().String()
	if lo == "" && hi == "" {
		return bg.Render("any", styles.FaintText)
	}
	return styles.TagStyle(tagAge).Render(ternary(lo == "", "0", lo) + " to " + ternary(hi == "", "any", hi))
}

func (m Model) renderSortLabel(styles Styles, bg BgStyle) string {
	if m.filter.SortField() == filter.SortNone {
		return bg.Render("catalog order", styles.FaintText)
	}
	arrow := ternary(m.filter.SortDirection() == filter.Desc, "↓", "↑")
	return styles.TagStyle(tagSort).Render(titleCase(string(m.filter.SortField())) + " " + arrow)
}

func (m Model) renderPickerItem(item pickerItem, active bool, width int, styles Styles, bg BgStyle) string {
	marker := "  "
	style := styles.Text
	switch {
	case item.selected:
		marker = "✓ "
		style = styles.SuccessText
	case isSentinelItem(item):
		style = styles.FaintText
	}
	text := marker + truncate(item.name, width-2)
	if active {
		return styles.Selected.Width(width).Render(text)
	}
	return bg.Render(text, style)
}

// dogColumn is one results-table column.
type dogColumn struct {
	title string
	width int
}

// dogColumns sizes the table for width. The zip column drops out on narrow
// terminals; name and breed share what is left.
func (m Model) dogColumns(width int) []dogColumn {
	const favWidth, ageWidth, zipWidth = 2, 7, 10
	showZip := width >= LayoutZipColumnWidth
	fixed := favWidth + ageWidth + 4
	if showZip {
		fixed += zipWidth + 1
	}
	flex := max(width-fixed, 10)
	nameWidth := flex * 2 / 5
	cols := []dogColumn{
		{"★", favWidth},
		{"Name", nameWidth},
		{"Breed", flex - nameWidth},
		{"Age", ageWidth},
	}
	if showZip {
		cols = append(cols, dogColumn{"Zip", zipWidth})
	}
	return cols
}

func renderDogHeader(cols []dogColumn, styles Styles, bg BgStyle) string {
	cells := make([]string, 0, len(cols))
	for _, c := range cols {
		cells = append(cells, bg.Render(fitColumn(c.title, c.width), styles.MutedText.Bold(true)))
	}
	return bg.Join(cells, " ")
}

func (m Model) renderDogRow(dog catalog.Dog, cols []dogColumn, selected bool, width int) string {
	bgColor := m.theme.FocusBg
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	values := []string{
		ternary(m.favs.Has(dog.ID), "★", " "),
		dog.Name,
		dog.Breed,
		formatAge(dog.Age),
		dog.ZipCode,
	}

	if selected {
		plain := make([]string, 0, len(cols))
		for i, c := range cols {
			plain = append(plain, fitColumn(values[i], c.width))
		}
		return styles.Selected.Width(width).Render(strings.Join(plain, " "))
	}

	cells := make([]string, 0, len(cols))
	for i, c := range cols {
		style := styles.Text
		switch i {
		case 0:
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.TagColors[tagFavorite]))
		case 2, 4:
			style = styles.MutedText
		}
		cells = append(cells, bg.Render(fitColumn(values[i], c.width), style))
	}
	return bg.FillLine(bg.Join(cells, " "), width)
}

// renderResults renders the current page.
func (m Model) renderResults(width, height int) string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	inner := max(width-2, 10)

	title := "Results"
	if m.hasPage {
		page, pages := paging.PageNumber(m.page.Offset, m.page.Filter.PageSize(), m.page.Total)
		if pages > 0 {
			title = fmt.Sprintf("Results (page %d of %d)", page, pages)
		}
	}

	switch {
	case !m.hasPage && m.searching:
		return m.renderTitledBox(title, bg.Render(m.spinner.View()+" Searching...", styles.WarningText), width, height, m.input == inputNone)
	case !m.hasPage && m.searchErr != nil:
		msg := styles.TagStyle(tagError).Render("Search failed") + bg.Space() + bg.Render("Press r to retry.", styles.MutedText)
		return m.renderTitledBox(title, msg, width, height, m.input == inputNone)
	case !m.hasPage:
		return m.renderTitledBox(title, bg.Render("No search yet.", styles.MutedText), width, height, m.input == inputNone)
	case len(m.page.Dogs) == 0:
		return m.renderTitledBox(title, bg.Render("No dogs match these filters.", styles.MutedText), width, height, m.input == inputNone)
	}

	cols := m.dogColumns(inner)
	visible := max(height-3, 1)
	start := 0
	if m.selectedRow >= visible {
		start = m.selectedRow - visible + 1
	}
	end := min(start+visible, len(m.page.Dogs))

	lines := []string{bg.FillLine(renderDogHeader(cols, styles, bg), inner)}
	for i := start; i < end; i++ {
		lines = append(lines, m.renderDogRow(m.page.Dogs[i], cols, i == m.selectedRow && m.input == inputNone, inner))
	}
	return m.renderTitledBox(title, strings.Join(lines, "\n"), width, height, m.input == inputNone)
}

func isSentinelItem(item pickerItem) bool {
	return !item.selected && breeds.IsSentinel(item.name)
}
