// Package auth holds the catalog session credential.
//
// A Session logs in with a name and email, keeps the access cookie the
// service hands back, and attaches it to every catalog request. When a catalog
// call fails with a non-success status the owning component reports it through
// SessionExpired; the session drops its credential and notifies listeners so
// the UI can send the user back to the login form. Nothing here is persisted.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/five82/pawmatch/internal/catalog"
)

// CookieName is the access cookie set by POST /auth/login.
const CookieName = "fetch-access-token"

const loginTimeout = 10 * time.Second

var (
	// ErrNotLoggedIn is returned by Authorize before a successful Login. It
	// matches catalog.ErrSessionExpired so callers treat both the same way.
	ErrNotLoggedIn = fmt.Errorf("not logged in: %w", catalog.ErrSessionExpired)
	// ErrNoCredential is returned when login succeeds without a cookie.
	ErrNoCredential = errors.New("login response carried no session cookie")
)

// ExpiryHandler receives credential failures reported by catalog callers.
type ExpiryHandler interface {
	SessionExpired(err error)
}

// ExpiryFunc adapts a function to ExpiryHandler.
type ExpiryFunc func(err error)

// SessionExpired calls f(err).
func (f ExpiryFunc) SessionExpired(err error) { f(err) }

// Session implements catalog.Authorizer and ExpiryHandler.
type Session struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger

	mu        sync.RWMutex
	token     string
	user      string
	listeners []func(error)
}

var (
	_ catalog.Authorizer = (*Session)(nil)
	_ ExpiryHandler      = (*Session)(nil)
)

// NewSession builds a logged-out session for the service at baseURL.
func NewSession(baseURL string, logger *slog.Logger) (*Session, error) {
	base, err := catalog.ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		baseURL: base,
		http:    &http.Client{Timeout: loginTimeout},
		logger:  logger,
	}, nil
}

// Login exchanges name and email for an access cookie.
func (s *Session) Login(ctx context.Context, name, email string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email %q", email)
	}

	resp, err := s.post(ctx, "/auth/login", catalog.LoginRequest{Name: name, Email: email}, "")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError("POST /auth/login", resp)
	}
	var token string
	for _, c := range resp.Cookies() {
		if c.Name == CookieName && c.Value != "" {
			token = c.Value
		}
	}
	if token == "" {
		return ErrNoCredential
	}

	s.mu.Lock()
	s.token = token
	s.user = name
	s.mu.Unlock()
	s.logger.Info("logged in", "user", name)
	return nil
}

// Logout tells the service to drop the credential and forgets it locally.
// The local credential is cleared even when the request fails.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	token := s.token
	s.token = ""
	s.user = ""
	s.mu.Unlock()
	if token == "" {
		return nil
	}

	resp, err := s.post(ctx, "/auth/logout", nil, token)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError("POST /auth/logout", resp)
	}
	s.logger.Info("logged out")
	return nil
}

// Authorize attaches the access cookie to req.
func (s *Session) Authorize(req *http.Request) error {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" {
		return ErrNotLoggedIn
	}
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	return nil
}

// LoggedIn reports whether a credential is held.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// User returns the name used for the current login.
func (s *Session) User() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// OnExpired registers fn to run whenever SessionExpired is reported.
func (s *Session) OnExpired(fn func(error)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// SessionExpired drops the credential and notifies listeners.
func (s *Session) SessionExpired(err error) {
	s.mu.Lock()
	s.token = ""
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	s.logger.Warn("session expired", "error", err)
	for _, fn := range listeners {
		fn(err)
	}
}

func (s *Session) post(ctx context.Context, path string, body any, token string) (*http.Response, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	reqURL := s.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

func statusError(op string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &catalog.StatusError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(snippet)),
	}
}
