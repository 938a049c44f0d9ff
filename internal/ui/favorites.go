package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pawmatch/internal/catalog"
	"github.com/five82/pawmatch/internal/match"
)

// handleFavoritesKey processes keyboard input for the favorites view.
func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	dogs := m.favs.Snapshot()
	last := max(len(dogs)-1, 0)

	switch {
	case key.Matches(msg, m.keys.Down):
		m.favRow = min(m.favRow+1, last)
	case key.Matches(msg, m.keys.Up):
		m.favRow = max(m.favRow-1, 0)
	case key.Matches(msg, m.keys.Top):
		m.favRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.favRow = last
	case key.Matches(msg, m.keys.Remove, m.keys.ToggleFavorite):
		if m.favRow < len(dogs) {
			m.favs.Remove(dogs[m.favRow].ID)
			m.favRow = min(m.favRow, max(len(dogs)-2, 0))
		}
	case key.Matches(msg, m.keys.Match):
		cmd := m.requestMatch()
		return m, cmd
	}
	return m, nil
}

// requestMatch asks the catalog to pick one of the favorites.
func (m *Model) requestMatch() tea.Cmd {
	if m.matching {
		return nil
	}
	if m.favs.Len() == 0 {
		m.notice = "Add a favorite first (space on a search result)"
		return nil
	}
	m.notice = ""
	m.matching = true
	m.matchErr = nil
	m.matched = nil
	m.currentView = ViewMatch
	return tea.Batch(m.matchCmd(m.favs.IDs()), m.spinner.Tick)
}

func (m Model) handleMatchResult(msg matchResultMsg) (tea.Model, tea.Cmd) {
	m.matching = false
	if msg.err != nil {
		m.matchErr = msg.err
		m.logger.Warn("match failed", "error", msg.err)
		m.checkExpired(msg.err)
		return m, nil
	}
	dog := msg.dog
	m.matched = &dog
	m.matchErr = nil
	m.logger.Info("match found", "dog_id", dog.ID, "name", dog.Name)
	return m, nil
}

// handleMatchKey processes keyboard input for the match card.
func (m Model) handleMatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Match, m.keys.Refresh):
		cmd := m.requestMatch()
		return m, cmd
	case key.Matches(msg, m.keys.Back):
		m.currentView = ViewFavorites
	}
	return m, nil
}

// renderFavorites lists the favorites with a cursor.
func (m Model) renderFavorites(width, height int) string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	dogs := m.favs.Snapshot()
	inner := max(width-2, 10)

	title := fmt.Sprintf("Favorites (%d)", len(dogs))
	if len(dogs) == 0 {
		body := bg.FillLine(bg.Render("No favorites yet. Press space on a search result to add one.", styles.MutedText), inner)
		return m.renderTitledBox(title, body, width, height, true)
	}

	cols := m.dogColumns(inner)
	visible := max(height-5, 1)
	start := max(m.favRow-visible+1, 0)
	end := min(start+visible, len(dogs))

	lines := []string{bg.FillLine(renderDogHeader(cols, styles, bg), inner)}
	for i := start; i < end; i++ {
		lines = append(lines, m.renderDogRow(dogs[i], cols, i == m.favRow, inner))
	}
	lines = append(lines, "", bg.FillLine(bg.Render("M: find my match  x: remove", styles.FaintText), inner))
	return m.renderTitledBox(title, strings.Join(lines, "\n"), width, height, true)
}

// renderMatch shows the match card.
func (m Model) renderMatch(width, height int) string {
	styles := m.theme.Styles()

	var b strings.Builder
	switch {
	case m.matching:
		b.WriteString(m.spinner.View() + " " + styles.WarningText.Render("Finding your match..."))
	case m.matchErr != nil:
		msg := firstLine(m.matchErr.Error())
		if errors.Is(m.matchErr, match.ErrNoCandidate) {
			msg = "The catalog picked a dog it could not describe. Try again."
		}
		b.WriteString(styles.DangerText.Render("No match"))
		b.WriteString("\n\n")
		b.WriteString(styles.Text.Render(msg))
	case m.matched != nil:
		b.WriteString(renderMatchCard(*m.matched, m.theme))
	default:
		b.WriteString(styles.MutedText.Render("Press M to find your match."))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("M: try again  esc: back to favorites"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.TagColors[tagMatch])).
		Padding(1, 3).
		Width(min(56, max(width-4, 20))).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)))
}

func renderMatchCard(dog catalog.Dog, theme Theme) string {
	styles := theme.Styles()
	field := func(label, value string) string {
		return styles.MutedText.Render(padRight(label, 8)) + styles.Text.Render(value)
	}
	lines := []string{
		styles.TagStyle(tagMatch).Render("It's a match!"),
		"",
		styles.Logo.Render(dog.Name),
		"",
		field("Breed", dog.Breed),
		field("Age", formatAge(dog.Age)),
		field("Zip", dog.ZipCode),
		field("ID", dog.ID),
	}
	if dog.ImageURL != "" {
		lines = append(lines, field("Photo", truncateMiddle(dog.ImageURL, 40)))
	}
	return strings.Join(lines, "\n")
}
