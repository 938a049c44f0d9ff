package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type loginField int

const (
	fieldName loginField = iota
	fieldEmail
)

// loginState holds the login form.
type loginState struct {
	name    textinput.Model
	email   textinput.Model
	focus   loginField
	busy    bool
	err     error
	message string
	user    string
}

func newLoginState(name, email string) loginState {
	n := textinput.New()
	n.Placeholder = "Your name"
	n.CharLimit = 64
	n.SetValue(name)

	e := textinput.New()
	e.Placeholder = "you@example.com"
	e.CharLimit = 128
	e.SetValue(email)

	s := loginState{name: n, email: e}
	s.focusField(fieldName)
	return s
}

func (s *loginState) focusField(f loginField) {
	s.focus = f
	if f == fieldName {
		s.name.Focus()
		s.email.Blur()
	} else {
		s.email.Focus()
		s.name.Blur()
	}
}

// submitLogin validates the form and starts the login request.
func (m *Model) submitLogin() tea.Cmd {
	name := strings.TrimSpace(m.login.name.Value())
	email := strings.TrimSpace(m.login.email.Value())
	switch {
	case name == "":
		m.login.err = errors.New("name is required")
		m.login.focusField(fieldName)
		return nil
	case email == "":
		m.login.err = errors.New("email is required")
		m.login.focusField(fieldEmail)
		return nil
	}
	m.login.busy = true
	m.login.err = nil
	return tea.Batch(m.loginCmd(name, email), m.spinner.Tick)
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.busy {
		return m, nil
	}
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		if m.login.focus == fieldName {
			m.login.focusField(fieldEmail)
		} else {
			m.login.focusField(fieldName)
		}
		return m, nil
	case "enter":
		if m.login.focus == fieldName {
			m.login.focusField(fieldEmail)
			return m, nil
		}
		cmd := m.submitLogin()
		return m, cmd
	case "esc":
		m.login.err = nil
		return m, nil
	}
	return m.updateLoginInputs(msg)
}

func (m Model) updateLoginInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.login.focus == fieldName {
		m.login.name, cmd = m.login.name.Update(msg)
	} else {
		m.login.email, cmd = m.login.email.Update(msg)
	}
	return m, cmd
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if msg.err != nil {
		m.login.err = msg.err
		m.login.message = ""
		m.logger.Warn("login failed", "error", msg.err)
		return m, nil
	}
	m.login.user = msg.user
	m.login.message = ""
	m.login.err = nil
	m.currentView = ViewSearch
	m.searching = true
	m.searchErr = nil
	return m, tea.Batch(m.loadBreedsCmd(), m.searchCmd(m.filter), m.spinner.Tick)
}

// renderLogin renders the login form centered on screen.
func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Logo.Render("pawmatch"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Find a shelter dog to adopt"))
	b.WriteString("\n\n")

	label := func(text string, focused bool) string {
		if focused {
			return styles.AccentText.Bold(true).Render(text)
		}
		return styles.MutedText.Render(text)
	}
	b.WriteString(label("Name", m.login.focus == fieldName))
	b.WriteString("\n")
	b.WriteString(m.login.name.View())
	b.WriteString("\n\n")
	b.WriteString(label("Email", m.login.focus == fieldEmail))
	b.WriteString("\n")
	b.WriteString(m.login.email.View())
	b.WriteString("\n\n")

	switch {
	case m.login.busy:
		b.WriteString(m.spinner.View() + " " + styles.WarningText.Render("Signing in..."))
	case m.login.err != nil:
		b.WriteString(styles.DangerText.Render(firstLine(m.login.err.Error())))
	case m.login.message != "":
		b.WriteString(styles.WarningText.Render(m.login.message))
	default:
		b.WriteString(styles.FaintText.Render("enter: continue  tab: switch field  ctrl+c: quit"))
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(48).
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
