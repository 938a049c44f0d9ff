package search_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pawmatch/internal/auth"
	"github.com/five82/pawmatch/internal/catalog"
	"github.com/five82/pawmatch/internal/catalog/catalogtest"
	"github.com/five82/pawmatch/internal/filter"
	"github.com/five82/pawmatch/internal/paging"
	"github.com/five82/pawmatch/internal/search"
)

func newLoggedInClient(t *testing.T, srv *catalogtest.Server) (*catalog.Client, *auth.Session) {
	t.Helper()
	session, err := auth.NewSession(srv.URL, nil)
	require.NoError(t, err)
	require.NoError(t, session.Login(context.Background(), "Ada", "ada@example.com"))
	client, err := catalog.NewClient(srv.URL, catalog.WithAuthorizer(session))
	require.NoError(t, err)
	return client, session
}

func TestSearch_PagesThroughFakeService(t *testing.T) {
	t.Parallel()

	srv := catalogtest.New(catalogtest.ManyDogs(120))
	t.Cleanup(srv.Close)
	client, session := newLoggedInClient(t, srv)

	o := search.New(client, session, nil)
	f := filter.Empty()

	page, err := o.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 120, page.Total)
	assert.Len(t, page.Dogs, filter.DefaultPageSize)
	assert.True(t, page.HasNext)
	assert.Equal(t, 25, page.NextOffset)

	next := paging.Next(page.Offset, f.PageSize(), page.Total)
	f, res := f.WithOffset(next)
	require.True(t, res.Accepted)

	page, err = o.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 25, page.Offset)
	assert.Equal(t, 50, page.NextOffset)
	first, last := paging.Window(page.Offset, f.PageSize(), page.Total)
	assert.Equal(t, 26, first)
	assert.Equal(t, 50, last)
}

func TestSearch_FiltersReachService(t *testing.T) {
	t.Parallel()

	srv := catalogtest.New(catalogtest.SampleDogs())
	t.Cleanup(srv.Close)
	client, session := newLoggedInClient(t, srv)
	o := search.New(client, session, nil)

	f, _ := filter.Empty().ToggleBreed("Labrador Retriever")
	f, _ = f.SetAgeMax("10")
	f, _ = f.SetSort(filter.SortAge, filter.Desc)

	page, err := o.Search(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, page.Dogs, 1)
	assert.Equal(t, "Biscuit", page.Dogs[0].Name)

	f, _ = f.SetAgeMax("")
	page, err = o.Search(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, page.Dogs, 3)
	assert.Equal(t, []string{"d08", "d05", "d01"}, []string{page.Dogs[0].ID, page.Dogs[1].ID, page.Dogs[2].ID})
}

func TestSearch_ExpiredSessionIsReported(t *testing.T) {
	t.Parallel()

	srv := catalogtest.New(catalogtest.SampleDogs())
	t.Cleanup(srv.Close)
	client, session := newLoggedInClient(t, srv)

	var expired []error
	session.OnExpired(func(err error) { expired = append(expired, err) })
	o := search.New(client, session, nil)

	srv.ExpireSessions()
	_, err := o.Search(context.Background(), filter.Empty())

	var statusErr *catalog.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Len(t, expired, 1)
	assert.False(t, session.LoggedIn())
	assert.Equal(t, 0, srv.Calls("/dogs"))
}
