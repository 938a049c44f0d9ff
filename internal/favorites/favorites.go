// Package favorites keeps the user's selected dogs for the session.
//
// Records are copied in when toggled on, so the selection outlives the result
// page they came from. Insertion order is kept for display and for the match
// payload.
package favorites

import (
	"slices"
	"sync"

	"github.com/five82/pawmatch/internal/catalog"
)

// Set is an id-keyed, insertion-ordered selection. Safe for concurrent use.
type Set struct {
	mu    sync.RWMutex
	byID  map[string]catalog.Dog
	order []string
}

// New returns an empty Set.
func New() *Set {
	return &Set{byID: make(map[string]catalog.Dog)}
}

// Toggle adds dog when add is true and removes it otherwise. Both directions
// are idempotent.
func (s *Set) Toggle(dog catalog.Dog, add bool) {
	if dog.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, present := s.byID[dog.ID]
	switch {
	case add && !present:
		s.byID[dog.ID] = dog
		s.order = append(s.order, dog.ID)
	case add:
		s.byID[dog.ID] = dog
	case present:
		delete(s.byID, dog.ID)
		s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == dog.ID })
	}
}

// Flip toggles dog's membership and reports whether it is now a favorite.
func (s *Set) Flip(dog catalog.Dog) bool {
	add := !s.Has(dog.ID)
	s.Toggle(dog, add)
	return add
}

// Remove drops id.
func (s *Set) Remove(id string) {
	s.Toggle(catalog.Dog{ID: id}, false)
}

// Has reports whether id is a favorite.
func (s *Set) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of favorites.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Snapshot returns the favorites in insertion order.
func (s *Set) Snapshot() []catalog.Dog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Dog, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// IDs returns the favorite ids in insertion order.
func (s *Set) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// Clear empties the set.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.byID)
	s.order = nil
}
