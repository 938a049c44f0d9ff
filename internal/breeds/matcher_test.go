package breeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_PrefixPicksSingleBreed(t *testing.T) {
	m := New([]string{"Labrador", "Poodle", "Beagle"})

	assert.Equal(t, []string{"Labrador"}, m.Query("lab"))
}

func TestQuery_CaseInsensitive(t *testing.T) {
	m := New([]string{"Labrador Retriever", "Pug"})

	assert.Equal(t, []string{"Labrador Retriever"}, m.Query("  LAB "))
}

func TestQuery_NoCandidateReturnsSentinel(t *testing.T) {
	m := New([]string{"Labrador", "Poodle", "Beagle"})

	got := m.Query("zzz")
	require.Len(t, got, 1)
	assert.True(t, IsSentinel(got[0]))
}

func TestQuery_WeakMatchesAreSuppressed(t *testing.T) {
	m := New([]string{"Labrador Retriever"})

	// a, o and e are scattered mid-word across the name.
	assert.Equal(t, []string{NoMatches}, m.Query("aoe"))
}

func TestQuery_CapsResults(t *testing.T) {
	m := New([]string{
		"Airedale Terrier", "Border Terrier", "Cairn Terrier", "Irish Terrier",
		"Norfolk Terrier", "Scottish Terrier", "Silky Terrier", "Welsh Terrier",
	})

	got := m.Query("terrier")
	assert.Len(t, got, MaxResults)
	for _, name := range got {
		assert.Contains(t, name, "Terrier")
	}
}

func TestQuery_RanksStartOfNameFirst(t *testing.T) {
	m := New([]string{"Black Lab Mix", "Labrador Retriever", "Lab"})

	assert.Equal(t, []string{"Lab", "Labrador Retriever", "Black Lab Mix"}, m.Query("lab"))
}

func TestQuery_BlankListsVocabularyHead(t *testing.T) {
	names := []string{"A1", "A2", "A3", "A4", "A5", "A6"}
	m := New(names)

	assert.Equal(t, names[:MaxResults], m.Query(""))
	assert.Equal(t, []string{NoMatches}, New(nil).Query(""))
}

func TestNew_DedupesAndTrims(t *testing.T) {
	m := New([]string{" Pug ", "pug", "", "Beagle", "PUG"})

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"Pug", "Beagle"}, m.Names())
}

func TestQuery_DoesNotMutateVocabulary(t *testing.T) {
	m := New([]string{"Pug", "Beagle"})
	got := m.Query("")
	got[0] = "changed"

	assert.Equal(t, []string{"Pug", "Beagle"}, m.Names())
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		target string
		check  func(t *testing.T, score float64)
	}{
		{
			name: "exact", query: "pug", target: "pug",
			check: func(t *testing.T, s float64) { assert.InDelta(t, 1.0, s, 1e-9) },
		},
		{
			name: "prefix", query: "lab", target: "labrador",
			check: func(t *testing.T, s float64) { assert.InDelta(t, 0.875, s, 1e-9) },
		},
		{
			name: "word start", query: "retriever", target: "labrador retriever",
			check: func(t *testing.T, s float64) { assert.InDelta(t, 0.75, s, 1e-9) },
		},
		{
			name: "not a subsequence", query: "xyz", target: "labrador",
			check: func(t *testing.T, s float64) { assert.Zero(t, s) },
		},
		{
			name: "longer than target", query: "poodles", target: "poodle",
			check: func(t *testing.T, s float64) { assert.Zero(t, s) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Similarity(tt.query, tt.target)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
			tt.check(t, score)
		})
	}
}
