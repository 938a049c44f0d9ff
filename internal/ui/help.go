package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// helpTitles names the groups returned by keyMap.FullHelp, in order.
var helpTitles = []string{
	"Views",
	"Navigation",
	"Filters",
	"Results",
	"Favorites",
	"Activity",
	"General",
}

// renderHelp renders the help overlay from the key bindings.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	groups := m.keys.FullHelp()
	columns := make([]string, 0, 2)
	var col strings.Builder
	for i, group := range groups {
		title := "More"
		if i < len(helpTitles) {
			title = helpTitles[i]
		}
		col.WriteString(styles.AccentText.Bold(true).Render(title))
		col.WriteString("\n")
		for _, binding := range group {
			col.WriteString(renderHelpBinding(binding, keyStyle, styles))
		}
		col.WriteString("\n")

		// Split into two columns halfway through.
		if i == (len(groups)-1)/2 {
			columns = append(columns, col.String())
			col.Reset()
		}
	}
	if col.Len() > 0 {
		columns = append(columns, col.String())
	}

	if m.width >= 90 && len(columns) == 2 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(40).Render(columns[0]), columns[1]))
	} else {
		b.WriteString(strings.Join(columns, ""))
	}
	b.WriteString(styles.FaintText.Render("Press any key to close"))

	modalWidth := 44
	if m.width >= 90 {
		modalWidth = 84
	}
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(modalWidth).
		Render(b.String())

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

func renderHelpBinding(binding key.Binding, keyStyle lipgloss.Style, styles Styles) string {
	h := binding.Help()
	if h.Key == "" {
		return ""
	}
	return keyStyle.Render(h.Key) + styles.Text.Render(h.Desc) + "\n"
}
