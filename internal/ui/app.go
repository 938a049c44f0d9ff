package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"k8s.io/utils/clock"

	"github.com/five82/pawmatch/internal/breeds"
	"github.com/five82/pawmatch/internal/catalog"
	"github.com/five82/pawmatch/internal/favorites"
	"github.com/five82/pawmatch/internal/filter"
	"github.com/five82/pawmatch/internal/logging"
	"github.com/five82/pawmatch/internal/prefs"
	"github.com/five82/pawmatch/internal/search"
)

// View represents the current active view.
type View int

const (
	ViewLogin View = iota
	ViewSearch
	ViewFavorites
	ViewMatch
	ViewActivity
)

// inputMode is the filter field currently taking keystrokes on the search view.
type inputMode int

const (
	inputNone inputMode = iota
	inputBreed
	inputZip
	inputAgeMin
	inputAgeMax
)

// Authenticator logs the user in and out of the catalog.
type Authenticator interface {
	Login(ctx context.Context, name, email string) error
	Logout(ctx context.Context) error
	LoggedIn() bool
	User() string
}

// ExpiryNotifier reports credential failures seen by any catalog caller.
type ExpiryNotifier interface {
	OnExpired(fn func(error))
}

// BreedSource loads the breed vocabulary.
type BreedSource interface {
	Load(ctx context.Context) (*breeds.Matcher, error)
}

// Searcher runs one filtered search.
type Searcher interface {
	Search(ctx context.Context, f filter.State) (search.Page, error)
}

// MatchRequester picks one dog out of a set of ids.
type MatchRequester interface {
	Match(ctx context.Context, ids []string) (catalog.Dog, error)
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Auth      Authenticator
	Expiry    ExpiryNotifier
	Breeds    BreedSource
	Search    Searcher
	Match     MatchRequester
	Favorites *favorites.Set
	Clock     clock.WithDelayedExecution
	Logger    *slog.Logger
	LogFile   string
	Name      string
	Email     string
	AutoLogin bool
	Prefs     prefs.Prefs
	PrefsPath string
}

// relay forwards messages from timer goroutines into the running program.
type relay struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (r *relay) Send(msg tea.Msg) {
	r.mu.Lock()
	send := r.send
	r.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func (r *relay) set(send func(tea.Msg)) {
	r.mu.Lock()
	r.send = send
	r.mu.Unlock()
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx       context.Context
	auth      Authenticator
	breedSrc  BreedSource
	searcher  Searcher
	matcher   MatchRequester
	favs      *favorites.Set
	suggester *breeds.Suggester
	relay     *relay
	logger    *slog.Logger
	keys      keyMap
	logFile   string
	prefs     prefs.Prefs
	prefsPath string

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	spinner     spinner.Model

	// Login state
	login loginState

	// Search state
	filter      filter.State
	page        search.Page
	hasPage     bool
	searching   bool
	searchErr   error
	notice      string
	selectedRow int
	input       inputMode
	fieldInput  textinput.Model
	picker      pickerState

	// Favorites state
	favRow int

	// Match state
	matching bool
	matched  *catalog.Dog
	matchErr error

	// Activity state
	activity activityState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	favs := opts.Favorites
	if favs == nil {
		favs = favorites.New()
	}

	userPrefs := opts.Prefs
	if userPrefs.Theme == "" {
		userPrefs = prefs.Defaults()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	fieldInput := textinput.New()
	fieldInput.CharLimit = 10

	m := Model{
		ctx:         ctx,
		auth:        opts.Auth,
		breedSrc:    opts.Breeds,
		searcher:    opts.Search,
		matcher:     opts.Match,
		favs:        favs,
		suggester:   breeds.NewSuggester(nil, breeds.DebounceDelay, clk),
		relay:       &relay{},
		logger:      logger,
		keys:        DefaultKeyMap(),
		logFile:     opts.LogFile,
		prefs:       userPrefs,
		prefsPath:   opts.PrefsPath,
		theme:       GetTheme(userPrefs.Theme),
		currentView: ViewLogin,
		spinner:     sp,
		login:       newLoginState(opts.Name, opts.Email),
		filter:      userPrefs.ApplyTo(filter.Empty()),
		fieldInput:  fieldInput,
		picker:      newPickerState(),
		activity:    newActivityState(),
	}
	// Signing in with configured credentials skips the form.
	m.login.busy = opts.AutoLogin && strings.TrimSpace(opts.Name) != "" && strings.TrimSpace(opts.Email) != ""
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.auth != nil && m.auth.LoggedIn() {
		cmds = append(cmds, func() tea.Msg { return loginResultMsg{user: m.auth.User()} })
	} else if m.login.busy {
		cmds = append(cmds,
			m.loginCmd(strings.TrimSpace(m.login.name.Value()), strings.TrimSpace(m.login.email.Value())),
			m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeActivity()
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case logoutMsg:
		if msg.err != nil {
			m.logger.Warn("logout failed", "error", msg.err)
		}
		m.toLogin("Logged out.")
		return m, nil

	case sessionExpiredMsg:
		if m.currentView != ViewLogin {
			m.toLogin("Session expired. Log in again to continue.")
		}
		return m, nil

	case breedsLoadedMsg:
		if msg.err != nil {
			m.notice = "Breed list unavailable: " + firstLine(msg.err.Error())
			m.checkExpired(msg.err)
			return m, nil
		}
		m.suggester.SetMatcher(msg.matcher)
		if m.input == inputBreed {
			m.picker.suggestions = m.suggester.Now(m.picker.input.Value())
		}
		return m, nil

	case suggestionsMsg:
		m.applySuggestions(breeds.Suggestions(msg))
		return m, nil

	case searchResultMsg:
		return m.handleSearchResult(msg)

	case matchResultMsg:
		return m.handleMatchResult(msg)

	case activityMsg:
		m.handleActivity(msg)
		return m, nil

	case activityTickMsg:
		if m.currentView == ViewActivity && m.activity.follow {
			return m, tea.Batch(m.readActivity(), activityTickCmd())
		}
		m.activity.ticking = false
		return m, nil
	}

	if m.currentView == ViewLogin {
		return m.updateLoginInputs(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.currentView == ViewLogin {
		return m.renderLogin()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.currentView == ViewLogin {
		return m.handleLoginKey(msg)
	}

	if m.currentView == ViewSearch && m.input != inputNone {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.refreshActivityContent()
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		return m, m.logoutCmd()

	case key.Matches(msg, m.keys.Tab):
		return m.switchView(m.nextView(1))

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchView(m.nextView(-1))

	case key.Matches(msg, m.keys.ViewSearch):
		return m.switchView(ViewSearch)

	case key.Matches(msg, m.keys.ViewFavorites):
		return m.switchView(ViewFavorites)

	case key.Matches(msg, m.keys.ViewActivity):
		return m.switchView(ViewActivity)

	case key.Matches(msg, m.keys.Escape):
		if m.currentView == ViewMatch {
			return m.switchView(ViewFavorites)
		}
		m.notice = ""
		return m.switchView(ViewSearch)
	}

	switch m.currentView {
	case ViewSearch:
		return m.handleSearchKey(msg)
	case ViewFavorites:
		return m.handleFavoritesKey(msg)
	case ViewMatch:
		return m.handleMatchKey(msg)
	case ViewActivity:
		return m.handleActivityKey(msg)
	}

	return m, nil
}

var viewCycle = []View{ViewSearch, ViewFavorites, ViewActivity}

// nextView steps through the tab cycle. The match card sits outside it and
// counts as favorites.
func (m Model) nextView(step int) View {
	current := m.currentView
	if current == ViewMatch {
		current = ViewFavorites
	}
	for i, v := range viewCycle {
		if v == current {
			return viewCycle[(i+step+len(viewCycle))%len(viewCycle)]
		}
	}
	return ViewSearch
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.currentView = v
	if v == ViewActivity {
		cmd := m.enterActivity()
		return m, cmd
	}
	return m, nil
}

// busy reports whether a remote call is in flight.
func (m Model) busy() bool {
	return m.searching || m.matching || m.login.busy
}

// checkExpired sends the user back to login when err is a credential failure
// and reports whether it did.
func (m *Model) checkExpired(err error) bool {
	if !errors.Is(err, catalog.ErrSessionExpired) {
		return false
	}
	if m.currentView != ViewLogin {
		m.toLogin("Session expired. Log in again to continue.")
	}
	return true
}

// toLogin shows the login form with message. Favorites and filters survive.
func (m *Model) toLogin(message string) {
	m.currentView = ViewLogin
	m.closeInput()
	m.searching = false
	m.matching = false
	m.login.busy = false
	m.login.message = message
	m.login.err = nil
	m.login.focusField(fieldName)
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", "error", err)
	}
}

// SetSender connects the model's timer callbacks to a program. Run calls it;
// tests pass their own function.
func (m Model) SetSender(send func(tea.Msg)) {
	m.relay.set(send)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	m.SetSender(p.Send)
	if opts.Expiry != nil {
		opts.Expiry.OnExpired(func(err error) { p.Send(sessionExpiredMsg{err: err}) })
	}
	_, err := p.Run()
	m.suggester.Cancel()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}

// statusLine summarizes the last problem for the footer.
func (m Model) statusLine() string {
	switch {
	case m.notice != "":
		return m.notice
	case m.searchErr != nil:
		return "Search failed: " + firstLine(m.searchErr.Error())
	case m.matchErr != nil:
		return "Match failed: " + firstLine(m.matchErr.Error())
	}
	return ""
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
