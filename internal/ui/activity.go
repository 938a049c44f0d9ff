package ui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pawmatch/internal/logtail"
)

// activityLevels is the order the level key steps through.
var activityLevels = []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}

// activityState holds the log viewer.
type activityState struct {
	viewport viewport.Model
	lines    []string
	level    slog.Level
	follow   bool
	ticking  bool
	err      error
}

func newActivityState() activityState {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle()
	return activityState{
		viewport: vp,
		level:    slog.LevelInfo,
		follow:   true,
	}
}

func (s activityState) levelName() string {
	switch s.level {
	case slog.LevelDebug:
		return "debug"
	case slog.LevelWarn:
		return "warn"
	case slog.LevelError:
		return "error"
	}
	return "info"
}

// resizeActivity fits the viewport inside the titled box.
func (m *Model) resizeActivity() {
	m.activity.viewport.Width = max(m.width-2, 1)
	m.activity.viewport.Height = max(m.height-4, 1)
	m.refreshActivityContent()
}

// enterActivity reads the log and starts the follow ticker if it is not
// already running.
func (m *Model) enterActivity() tea.Cmd {
	cmds := []tea.Cmd{m.readActivity()}
	if m.activity.follow && !m.activity.ticking {
		m.activity.ticking = true
		cmds = append(cmds, activityTickCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) readActivity() tea.Cmd {
	return readActivityCmd(m.logFile)
}

func (m *Model) handleActivity(msg activityMsg) {
	m.activity.err = msg.err
	if msg.err != nil {
		return
	}
	m.activity.lines = msg.lines
	m.refreshActivityContent()
}

// refreshActivityContent rerenders the filtered log into the viewport.
func (m *Model) refreshActivityContent() {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	width := m.activity.viewport.Width

	entries := logtail.Filter(m.activity.lines, m.activity.level)
	if len(entries) == 0 {
		m.activity.viewport.SetContent(bg.FillLine(bg.Render("No activity at this level yet.", styles.MutedText), width))
		return
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, bg.FillLine(renderEntry(e, styles, bg), width))
	}
	m.activity.viewport.SetContent(strings.Join(lines, "\n"))
	if m.activity.follow {
		m.activity.viewport.GotoBottom()
	}
}

func renderEntry(e logtail.Entry, styles Styles, bg BgStyle) string {
	if !e.Parsed {
		return bg.Render(e.Raw, styles.FaintText)
	}
	var (
		levelStyle lipgloss.Style
		token      string
	)
	switch {
	case e.Level >= slog.LevelError:
		levelStyle, token = styles.DangerText, "ERR"
	case e.Level >= slog.LevelWarn:
		levelStyle, token = styles.WarningText, "WRN"
	case e.Level >= slog.LevelInfo:
		levelStyle, token = styles.InfoText, "INF"
	default:
		levelStyle, token = styles.FaintText, "DBG"
	}
	return bg.Render(e.Time.Format("15:04:05"), styles.FaintText) + bg.Space() +
		bg.Render(token, levelStyle) + bg.Space() +
		bg.Render(e.Message, styles.Text)
}

// handleActivityKey processes keyboard input for the activity view.
func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CycleLevel):
		i := 0
		for j, lvl := range activityLevels {
			if lvl == m.activity.level {
				i = j
			}
		}
		m.activity.level = activityLevels[(i+1)%len(activityLevels)]
		m.refreshActivityContent()
		return m, nil

	case key.Matches(msg, m.keys.ToggleFollow):
		m.activity.follow = !m.activity.follow
		if m.activity.follow {
			m.activity.viewport.GotoBottom()
			cmd := m.enterActivity()
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.activity.follow = false
		m.activity.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.activity.follow = true
		m.activity.viewport.GotoBottom()
	case key.Matches(msg, m.keys.Down):
		m.activity.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.activity.follow = false
		m.activity.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.activity.viewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.activity.follow = false
		m.activity.viewport.HalfPageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.activity.viewport.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.activity.follow = false
		m.activity.viewport.PageUp()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.readActivity()
	}
	return m, nil
}

// renderActivity renders the activity log view.
func (m Model) renderActivity(width, height int) string {
	title := "Activity (" + m.activity.levelName() + "+)"
	if m.activity.follow {
		title += " following"
	}
	content := m.activity.viewport.View()
	if m.activity.err != nil {
		styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
		content = styles.DangerText.Render("Cannot read log: " + firstLine(m.activity.err.Error()))
	} else if m.logFile == "" {
		styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
		content = styles.MutedText.Render("Logging to a file is disabled.")
	}
	return m.renderTitledBox(title, content, width, height, true)
}
