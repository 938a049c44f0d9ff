package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pawmatch/internal/catalog/catalogtest"
	"github.com/five82/pawmatch/internal/config"
	"github.com/five82/pawmatch/internal/filter"
)

func TestNewServices_LoginSearchAndMatch(t *testing.T) {
	t.Parallel()

	srv := catalogtest.New(catalogtest.SampleDogs())
	t.Cleanup(srv.Close)

	svc, err := NewServices(config.Config{APIURL: srv.URL, Name: "Ada", Email: "ada@example.com"}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, svc.Login(ctx))
	assert.Equal(t, "Ada", svc.Session.User())

	m, err := svc.Vocabulary.Load(ctx)
	require.NoError(t, err)
	assert.Positive(t, m.Len())

	f, _ := filter.Empty().ToggleBreed("Pug")
	page, err := svc.Search.Search(ctx, f)
	require.NoError(t, err)
	require.Len(t, page.Dogs, 2)

	dog, err := svc.Match.Match(ctx, []string{page.Dogs[1].ID, page.Dogs[0].ID})
	require.NoError(t, err)
	assert.Equal(t, page.Dogs[1].ID, dog.ID)
}

func TestNewServices_ExpiryDropsSession(t *testing.T) {
	t.Parallel()

	srv := catalogtest.New(catalogtest.SampleDogs())
	t.Cleanup(srv.Close)

	svc, err := NewServices(config.Config{APIURL: srv.URL, Name: "Ada", Email: "ada@example.com"}, nil)
	require.NoError(t, err)
	require.NoError(t, svc.Login(context.Background()))

	srv.ExpireSessions()
	_, err = svc.Search.Search(context.Background(), filter.Empty())
	require.Error(t, err)
	assert.False(t, svc.Session.LoggedIn())
}

func TestServices_LoginRequiresIdentity(t *testing.T) {
	t.Parallel()

	svc, err := NewServices(config.Config{APIURL: "http://127.0.0.1:1"}, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Login(context.Background()), ErrNoIdentity)
}

func TestNewServices_RejectsBadURL(t *testing.T) {
	t.Parallel()

	_, err := NewServices(config.Config{APIURL: "://nope"}, nil)
	assert.Error(t, err)
}
