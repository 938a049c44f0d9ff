package breeds

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
)

const (
	// MaxResults caps every Query result.
	MaxResults = 5
	// Threshold is the similarity a candidate must exceed to be returned.
	Threshold = 0.5
	// NoMatches is the single entry returned when nothing clears Threshold.
	NoMatches = "No matches found"
)

// Similarity weights. They sum to 1 so scores stay within [0, 1].
const (
	weightContiguity = 0.5
	weightStart      = 0.3
	weightCoverage   = 0.2
)

// IsSentinel reports whether name is the NoMatches placeholder.
func IsSentinel(name string) bool {
	return name == NoMatches
}

// Matcher is an immutable index over a breed vocabulary.
type Matcher struct {
	names  []string
	folded []string
}

// New builds a Matcher. Entries are trimmed, blank entries dropped, and
// case-insensitive duplicates collapsed onto their first spelling.
func New(vocabulary []string) *Matcher {
	fold := cases.Fold()
	m := &Matcher{}
	seen := make(map[string]bool, len(vocabulary))
	for _, name := range vocabulary {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := fold.String(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		m.names = append(m.names, name)
		m.folded = append(m.folded, key)
	}
	return m
}

// Len returns the vocabulary size.
func (m *Matcher) Len() int {
	return len(m.names)
}

// Names returns a copy of the vocabulary in its original order.
func (m *Matcher) Names() []string {
	return slices.Clone(m.names)
}

// Query returns up to MaxResults breeds ranked by similarity to text. A blank
// query lists the head of the vocabulary. When nothing clears Threshold the
// result is []string{NoMatches}; it is never empty.
func (m *Matcher) Query(text string) []string {
	q := cases.Fold().String(strings.TrimSpace(text))
	if q == "" {
		if len(m.names) == 0 {
			return []string{NoMatches}
		}
		return slices.Clone(m.names[:min(MaxResults, len(m.names))])
	}

	type candidate struct {
		index int
		sim   float64
		score int
	}
	var ranked []candidate
	for _, match := range fuzzy.FindFrom(q, source(m.folded)) {
		sim := Similarity(q, m.folded[match.Index])
		if sim <= Threshold {
			continue
		}
		ranked = append(ranked, candidate{index: match.Index, sim: sim, score: match.Score})
	}
	if len(ranked) == 0 {
		return []string{NoMatches}
	}

	slices.SortFunc(ranked, func(a, b candidate) int {
		if c := cmp.Compare(b.sim, a.sim); c != 0 {
			return c
		}
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})

	out := make([]string, 0, min(MaxResults, len(ranked)))
	for _, c := range ranked[:min(MaxResults, len(ranked))] {
		out = append(out, m.names[c.index])
	}
	return out
}

// Similarity scores how well query matches target on a 0..1 scale. Both are
// expected to be case-folded already. A query that is not a subsequence of
// target scores 0.
//
// The score blends how contiguous the matched characters are, whether the
// match begins at the start of target or of a word in it, and how much of
// target the query covers.
func Similarity(query, target string) float64 {
	q := []rune(query)
	t := []rune(target)
	if len(q) == 0 || len(q) > len(t) {
		return 0
	}
	positions := align(q, t)
	if positions == nil {
		return 0
	}

	runs := 1
	for i := 1; i < len(positions); i++ {
		if positions[i] != positions[i-1]+1 {
			runs++
		}
	}
	contiguity := float64(len(q)-runs+1) / float64(len(q))

	var start float64
	switch {
	case positions[0] == 0:
		start = 1
	case isWordBreak(t[positions[0]-1]):
		start = 0.5
	}

	coverage := float64(len(q)) / float64(len(t))

	return weightContiguity*contiguity + weightStart*start + weightCoverage*coverage
}

// align returns the rune positions in t matched by q, or nil. A contiguous
// occurrence is preferred, earliest word-aligned first; otherwise the
// leftmost subsequence is used.
func align(q, t []rune) []int {
	best := -1
	for i := 0; i+len(q) <= len(t); i++ {
		if !slices.Equal(t[i:i+len(q)], q) {
			continue
		}
		if i == 0 || isWordBreak(t[i-1]) {
			best = i
			break
		}
		if best < 0 {
			best = i
		}
	}
	if best >= 0 {
		positions := make([]int, len(q))
		for i := range positions {
			positions[i] = best + i
		}
		return positions
	}

	positions := make([]int, 0, len(q))
	j := 0
	for i := 0; i < len(t) && j < len(q); i++ {
		if t[i] == q[j] {
			positions = append(positions, i)
			j++
		}
	}
	if j < len(q) {
		return nil
	}
	return positions
}

func isWordBreak(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == '(' || r == '/'
}

// source adapts a string slice to fuzzy.Source.
type source []string

func (s source) String(i int) string { return s[i] }
func (s source) Len() int            { return len(s) }
