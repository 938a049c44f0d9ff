package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_api.go -package=mocks -source=client.go API,Authorizer

// API defines the remote catalog operations the core depends on.
// This interface is implemented by *Client and can be mocked in tests.
type API interface {
	Breeds(ctx context.Context) ([]string, error)
	Search(ctx context.Context, query SearchQuery) (SearchResponse, error)
	Dogs(ctx context.Context, ids []string) ([]Dog, error)
	Match(ctx context.Context, ids []string) (MatchResponse, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Authorizer attaches the session credential to outgoing requests.
type Authorizer interface {
	Authorize(req *http.Request) error
}

// ErrSessionExpired is matched by every StatusError. The service answers any
// request with a stale or missing credential with a non-success status, and
// the client does not try to tell those apart.
var ErrSessionExpired = errors.New("catalog session expired")

// StatusError reports a non-success HTTP status from the service.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("api %s returned status %d", e.Op, e.StatusCode)
}

// Is reports StatusError as ErrSessionExpired.
func (e *StatusError) Is(target error) bool {
	return target == ErrSessionExpired
}

// Client talks to the dog catalog HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	auth      Authorizer
	userAgent string
	logger    *slog.Logger
}

const (
	// DefaultBaseURL is the hosted catalog service.
	DefaultBaseURL   = "https://frontend-take-home-service.fetch.com"
	defaultUserAgent = "pawmatch/0.1"
	requestTimeout   = 10 * time.Second
	maxErrorBody     = 512
	requestIDHeader  = "X-Request-ID"
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithAuthorizer sets the credential source used on every request.
func WithAuthorizer(a Authorizer) Option {
	return func(c *Client) { c.auth = a }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewClient builds a Client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the resolved service root.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// Breeds retrieves the full breed vocabulary.
func (c *Client) Breeds(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []string
	if err := c.do(ctx, http.MethodGet, "/dogs/breeds", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Search runs a filtered, paginated id search.
func (c *Client) Search(ctx context.Context, query SearchQuery) (SearchResponse, error) {
	if c == nil {
		return SearchResponse{}, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/dogs/search", RawQuery: query.Values().Encode()}
	var payload SearchResponse
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return SearchResponse{}, err
	}
	return payload, nil
}

// Dogs resolves ids to full records. The result is reordered to match ids;
// ids the service did not return are dropped.
func (c *Client) Dogs(ctx context.Context, ids []string) ([]Dog, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var payload []Dog
	if err := c.do(ctx, http.MethodPost, "/dogs", ids, &payload); err != nil {
		return nil, err
	}
	return OrderByIDs(payload, ids), nil
}

// Match asks the service to pick one dog out of ids.
func (c *Client) Match(ctx context.Context, ids []string) (MatchResponse, error) {
	if c == nil {
		return MatchResponse{}, fmt.Errorf("client is nil")
	}
	var payload MatchResponse
	if err := c.do(ctx, http.MethodPost, "/dogs/match", ids, &payload); err != nil {
		return MatchResponse{}, err
	}
	return payload, nil
}

// OrderByIDs returns dogs sorted into the order of ids.
func OrderByIDs(dogs []Dog, ids []string) []Dog {
	if len(dogs) == 0 {
		return nil
	}
	byID := make(map[string]Dog, len(dogs))
	for _, d := range dogs {
		byID[d.ID] = d
	}
	ordered := make([]Dog, 0, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			ordered = append(ordered, d)
		}
	}
	return ordered
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auth != nil {
		if err := c.auth.Authorize(req); err != nil {
			return fmt.Errorf("authorize request: %w", err)
		}
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", rel.Path, "request_id", requestID, "error", err)
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("request complete",
		"method", method,
		"path", rel.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Op:         method + " " + rel.Path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ParseBaseURL normalizes a service address, defaulting to DefaultBaseURL and
// to https when no scheme is given.
func ParseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
