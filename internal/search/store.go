package search

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/five82/pawmatch/internal/catalog"
	"github.com/five82/pawmatch/internal/filter"
)

// Page is one resolved result window. It replaces the previous page
// wholesale; pages are never merged.
type Page struct {
	Seq        uint64
	Filter     filter.State
	Dogs       []catalog.Dog
	Total      int
	Offset     int
	NextOffset int
	HasNext    bool
}

// Snapshot represents the latest search state available to the UI.
type Snapshot struct {
	Page                Page
	HasPage             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed searches
}

// IsDegraded returns true when several searches in a row have failed.
func (s Snapshot) IsDegraded() bool {
	return s.ConsecutiveFailures >= 2
}

// Store is the single current-page slot. Every request takes a sequence
// number from Begin; only the holder of the newest number may publish.
type Store struct {
	mu       sync.RWMutex
	issued   uint64
	snapshot Snapshot
}

// Begin issues the next sequence number.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Latest returns the newest issued sequence number.
func (s *Store) Latest() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.issued
}

// Publish replaces the current page. It returns false, leaving the slot
// untouched, when a newer request has been issued since page.Seq.
func (s *Store) Publish(page Page) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page.Seq != s.issued {
		return false
	}
	page.Dogs = cloneDogs(page.Dogs)
	s.snapshot.Page = page
	s.snapshot.HasPage = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// Fail records err for seq. The previous page is kept. Failures of
// superseded requests are dropped and false is returned.
func (s *Store) Fail(seq uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.issued {
		return false
	}
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Page.Dogs = cloneDogs(s.snapshot.Page.Dogs)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Reset clears the slot. Requests still in flight become stale.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.snapshot = Snapshot{}
}

func cloneDogs(dogs []catalog.Dog) []catalog.Dog {
	if len(dogs) == 0 {
		return nil
	}
	return slices.Clone(dogs)
}
