package breeds

import (
	"sync/atomic"
	"time"

	"k8s.io/utils/clock"
)

// Suggestions is one debounced query result.
type Suggestions struct {
	Seq   uint64
	Query string
	Names []string
}

// Empty reports whether the result only holds the NoMatches sentinel.
func (s Suggestions) Empty() bool {
	return len(s.Names) == 1 && IsSentinel(s.Names[0])
}

// Suggester runs Matcher queries behind a Debouncer so that only the last
// keystroke of a burst reaches the index.
type Suggester struct {
	matcher  atomic.Pointer[Matcher]
	debounce *Debouncer
	seq      atomic.Uint64
}

// NewSuggester wires m to a debouncer on clk with the given delay.
func NewSuggester(m *Matcher, delay time.Duration, clk clock.WithDelayedExecution) *Suggester {
	s := &Suggester{debounce: NewDebouncer(delay, clk)}
	if m == nil {
		m = New(nil)
	}
	s.matcher.Store(m)
	return s
}

// SetMatcher swaps the index, for when the vocabulary arrives after startup.
func (s *Suggester) SetMatcher(m *Matcher) {
	if m != nil {
		s.matcher.Store(m)
	}
}

// Matcher returns the current index.
func (s *Suggester) Matcher() *Matcher {
	return s.matcher.Load()
}

// Submit schedules a query for text. Earlier submissions still inside the
// debounce window are dropped; deliver runs on the timer goroutine.
func (s *Suggester) Submit(text string, deliver func(Suggestions)) {
	seq := s.seq.Add(1)
	s.debounce.Trigger(func() {
		deliver(Suggestions{
			Seq:   seq,
			Query: text,
			Names: s.matcher.Load().Query(text),
		})
	})
}

// Now runs a query immediately, cancelling any pending submission.
func (s *Suggester) Now(text string) Suggestions {
	s.debounce.Cancel()
	return Suggestions{
		Seq:   s.seq.Add(1),
		Query: text,
		Names: s.matcher.Load().Query(text),
	}
}

// Cancel drops any pending submission.
func (s *Suggester) Cancel() {
	s.debounce.Cancel()
}
