package breeds

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Fetcher loads the breed list from the catalog.
type Fetcher interface {
	Breeds(ctx context.Context) ([]string, error)
}

// Vocabulary loads the breed list once per session. Concurrent callers share
// one in-flight request; failures are not cached.
type Vocabulary struct {
	fetch Fetcher
	group singleflight.Group

	mu      sync.RWMutex
	matcher *Matcher
}

// NewVocabulary returns a loader backed by f.
func NewVocabulary(f Fetcher) *Vocabulary {
	return &Vocabulary{fetch: f}
}

// Load returns the cached Matcher, fetching the vocabulary on first use.
func (v *Vocabulary) Load(ctx context.Context) (*Matcher, error) {
	if m := v.Cached(); m != nil {
		return m, nil
	}
	res, err, _ := v.group.Do("breeds", func() (any, error) {
		if m := v.Cached(); m != nil {
			return m, nil
		}
		names, err := v.fetch.Breeds(ctx)
		if err != nil {
			return nil, fmt.Errorf("load breeds: %w", err)
		}
		m := New(names)
		v.mu.Lock()
		v.matcher = m
		v.mu.Unlock()
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*Matcher), nil
}

// Cached returns the loaded Matcher or nil.
func (v *Vocabulary) Cached() *Matcher {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.matcher
}

// Reset forgets the cached vocabulary, e.g. after logout.
func (v *Vocabulary) Reset() {
	v.mu.Lock()
	v.matcher = nil
	v.mu.Unlock()
}
