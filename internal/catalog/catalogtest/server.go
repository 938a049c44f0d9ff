// Package catalogtest runs an in-memory catalog service for tests.
package catalogtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/five82/pawmatch/internal/catalog"
)

// CookieName is the session cookie the service issues on login.
const CookieName = "fetch-access-token"

const (
	defaultSize  = 25
	maxLookupIDs = 100
)

// Server is a fake catalog service backed by a fixed list of dogs.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	dogs     []catalog.Dog
	tokens   map[string]bool
	failNext map[string]int
	calls    map[string]int
	picker   func(ids []string) string
	onSearch func(query url.Values)
}

// New starts a server holding dogs. Call Close when done.
func New(dogs []catalog.Dog) *Server {
	s := &Server{
		dogs:     slices.Clone(dogs),
		tokens:   make(map[string]bool),
		failNext: make(map[string]int),
		calls:    make(map[string]int),
		picker:   func(ids []string) string { return ids[0] },
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.count)
	r.Use(s.injectFailures)

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/dogs/breeds", s.handleBreeds)
		r.Get("/dogs/search", s.handleSearch)
		r.Post("/dogs", s.handleDogs)
		r.Post("/dogs/match", s.handleMatch)
	})
	return r
}

// FailNext makes the next request to path answer with status.
func (s *Server) FailNext(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext[path] = status
}

// Calls returns how many requests reached path.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// ExpireSessions invalidates every issued token.
func (s *Server) ExpireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.tokens)
}

// IssueToken registers a valid token without going through login.
func (s *Server) IssueToken() string {
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = true
	s.mu.Unlock()
	return token
}

// SetMatchPicker overrides how /dogs/match chooses among ids.
func (s *Server) SetMatchPicker(fn func(ids []string) string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.picker = fn
}

// OnSearch registers a hook that runs inside every search request before the
// response is written. Tests use it to hold a request open.
func (s *Server) OnSearch(fn func(query url.Values)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSearch = fn
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.URL.Path]++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status, ok := s.failNext[r.URL.Path]
		delete(s.failNext, r.URL.Path)
		s.mu.Unlock()
		if ok {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		s.mu.Lock()
		valid := s.tokens[cookie.Value]
		s.mu.Unlock()
		if !valid {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body catalog.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Email) == "" {
		http.Error(w, "name and email required", http.StatusBadRequest)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.IssueToken(),
		Path:     "/",
		HttpOnly: true,
	})
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(CookieName); err == nil {
		s.mu.Lock()
		delete(s.tokens, cookie.Value)
		s.mu.Unlock()
	}
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleBreeds(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	seen := make(map[string]bool)
	var out []string
	for _, d := range s.dogs {
		if !seen[d.Breed] {
			seen[d.Breed] = true
			out = append(out, d.Breed)
		}
	}
	s.mu.Unlock()
	slices.Sort(out)
	writeJSON(w, out)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	s.mu.Lock()
	hook := s.onSearch
	dogs := slices.Clone(s.dogs)
	s.mu.Unlock()
	if hook != nil {
		hook(query)
	}

	breeds := query["breeds"]
	zips := query["zipCodes"]
	ageMin, hasMin := intParam(query, "ageMin")
	ageMax, hasMax := intParam(query, "ageMax")

	matched := dogs[:0:0]
	for _, d := range dogs {
		if len(breeds) > 0 && !slices.Contains(breeds, d.Breed) {
			continue
		}
		if len(zips) > 0 && !slices.Contains(zips, d.ZipCode) {
			continue
		}
		if hasMin && d.Age < ageMin {
			continue
		}
		if hasMax && d.Age > ageMax {
			continue
		}
		matched = append(matched, d)
	}
	sortDogs(matched, query.Get("sortField"), query.Get("sort"))

	size := defaultSize
	if v, ok := intParam(query, "size"); ok && v > 0 {
		size = v
	}
	from, _ := intParam(query, "from")
	from = max(from, 0)

	resp := catalog.SearchResponse{Total: len(matched), ResultIDs: []string{}}
	for i := from; i < len(matched) && i < from+size; i++ {
		resp.ResultIDs = append(resp.ResultIDs, matched[i].ID)
	}
	if from+size < len(matched) {
		resp.Next = cursor(query, from+size)
	}
	if from > 0 {
		resp.Prev = cursor(query, max(from-size, 0))
	}
	writeJSON(w, resp)
}

func (s *Server) handleDogs(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if len(ids) > maxLookupIDs {
		http.Error(w, "too many ids", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Stored order, not request order, like the real service.
	out := []catalog.Dog{}
	for _, d := range s.dogs {
		if slices.Contains(ids, d.ID) {
			out = append(out, d)
		}
	}
	writeJSON(w, out)
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil || len(ids) == 0 {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	pick := s.picker
	s.mu.Unlock()
	writeJSON(w, catalog.MatchResponse{Match: pick(ids)})
}

func sortDogs(dogs []catalog.Dog, field, dir string) {
	if field == "" {
		field = "breed"
	}
	slices.SortStableFunc(dogs, func(a, b catalog.Dog) int {
		var c int
		switch field {
		case "age":
			c = a.Age - b.Age
		case "name":
			c = strings.Compare(a.Name, b.Name)
		default:
			c = strings.Compare(a.Breed, b.Breed)
		}
		if dir == "desc" {
			return -c
		}
		return c
	})
}

func cursor(query url.Values, from int) string {
	next := url.Values{}
	for k, v := range query {
		next[k] = slices.Clone(v)
	}
	next.Set("from", strconv.Itoa(from))
	return "/dogs/search?" + next.Encode()
}

func intParam(query url.Values, key string) (int, bool) {
	raw := query.Get(key)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
