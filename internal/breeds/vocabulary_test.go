package breeds

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetcherFunc func(ctx context.Context) ([]string, error)

func (f fetcherFunc) Breeds(ctx context.Context) ([]string, error) { return f(ctx) }

func TestVocabulary_ConcurrentLoadsFetchOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	release := make(chan struct{})
	v := NewVocabulary(fetcherFunc(func(context.Context) ([]string, error) {
		calls.Add(1)
		<-release
		return []string{"Beagle", "Pug"}, nil
	}))

	var wg sync.WaitGroup
	results := make([]*Matcher, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := v.Load(context.Background())
			assert.NoError(t, err)
			results[i] = m
		}()
	}
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	for _, m := range results {
		require.NotNil(t, m)
		assert.Same(t, results[0], m)
	}
	assert.Equal(t, 2, v.Cached().Len())
}

func TestVocabulary_FailureIsNotCached(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	v := NewVocabulary(fetcherFunc(func(context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("boom")
		}
		return []string{"Pug"}, nil
	}))

	_, err := v.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, v.Cached())

	m, err := v.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Pug"}, m.Names())

	v.Reset()
	assert.Nil(t, v.Cached())
}
