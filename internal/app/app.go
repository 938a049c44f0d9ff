package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"k8s.io/utils/clock"

	"github.com/five82/pawmatch/internal/auth"
	"github.com/five82/pawmatch/internal/breeds"
	"github.com/five82/pawmatch/internal/catalog"
	"github.com/five82/pawmatch/internal/config"
	"github.com/five82/pawmatch/internal/favorites"
	"github.com/five82/pawmatch/internal/logging"
	"github.com/five82/pawmatch/internal/match"
	"github.com/five82/pawmatch/internal/prefs"
	"github.com/five82/pawmatch/internal/search"
	"github.com/five82/pawmatch/internal/ui"
)

// ErrNoIdentity is returned by Login when the config lacks a name or email.
var ErrNoIdentity = errors.New("name and email must be configured (PAWMATCH_NAME, PAWMATCH_EMAIL)")

// Options configure the pawmatch TUI.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses $XDG_CONFIG_HOME/pawmatch/prefs.toml
	LogLevel   string // overrides the configured level when set
}

// Services is the wired set of components shared by the TUI and the CLI.
type Services struct {
	Config     config.Config
	Logger     *slog.Logger
	Session    *auth.Session
	Client     *catalog.Client
	Vocabulary *breeds.Vocabulary
	Search     *search.Orchestrator
	Match      *match.Requester
}

// NewServices builds every remote-facing component from cfg. Credential
// failures reported by search and match flow into the session.
func NewServices(cfg config.Config, logger *slog.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	session, err := auth.NewSession(cfg.APIURL, logger.With("component", "auth"))
	if err != nil {
		return nil, fmt.Errorf("init session: %w", err)
	}
	client, err := catalog.NewClient(cfg.APIURL,
		catalog.WithAuthorizer(session),
		catalog.WithLogger(logger.With("component", "catalog")),
		catalog.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("init catalog client: %w", err)
	}
	return &Services{
		Config:     cfg,
		Logger:     logger,
		Session:    session,
		Client:     client,
		Vocabulary: breeds.NewVocabulary(client),
		Search:     search.New(client, session, logger.With("component", "search")),
		Match:      match.New(client, session, logger.With("component", "match")),
	}, nil
}

// Login signs in with the configured identity.
func (s *Services) Login(ctx context.Context) error {
	if !s.Config.HasIdentity() {
		return ErrNoIdentity
	}
	return s.Session.Login(ctx, s.Config.Name, s.Config.Email)
}

// Run boots the pawmatch TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	// The TUI owns the terminal, so logs go to a file the activity view tails.
	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger, err := logging.New(logging.Options{Writer: logFile, Level: cfg.LogLevel, NoColor: true})
	if err != nil {
		logger.Warn("falling back to info level", "error", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	svc, err := NewServices(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("starting", "api", svc.Client.BaseURL().String(), "log_level", cfg.LogLevel)

	uiOpts := ui.Options{
		Context:   ctx,
		Auth:      svc.Session,
		Expiry:    svc.Session,
		Breeds:    svc.Vocabulary,
		Search:    svc.Search,
		Match:     svc.Match,
		Favorites: favorites.New(),
		Clock:     clock.RealClock{},
		Logger:    logger.With("component", "ui"),
		LogFile:   cfg.LogFile,
		Name:      cfg.Name,
		Email:     cfg.Email,
		AutoLogin: cfg.HasIdentity(),
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
	}
	err = ui.Run(uiOpts)

	// Best effort; the credential is gone locally either way.
	if svc.Session.LoggedIn() {
		if lerr := svc.Session.Logout(context.WithoutCancel(ctx)); lerr != nil {
			logger.Warn("logout failed", "error", lerr)
		}
	}
	return err
}
