package match_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/five82/pawmatch/internal/auth"
	"github.com/five82/pawmatch/internal/catalog"
	"github.com/five82/pawmatch/internal/catalog/catalogtest"
	"github.com/five82/pawmatch/internal/catalog/mocks"
	"github.com/five82/pawmatch/internal/favorites"
	"github.com/five82/pawmatch/internal/match"
)

func TestRequester_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ids         []string
		setupMocks  func(*mocks.MockAPI)
		wantID      string
		wantErr     error
		wantExpired int
	}{
		{
			name: "resolves chosen id",
			ids:  []string{"d1", "d2"},
			setupMocks: func(m *mocks.MockAPI) {
				gomock.InOrder(
					m.EXPECT().Match(gomock.Any(), []string{"d1", "d2"}).Return(catalog.MatchResponse{Match: "d2"}, nil),
					m.EXPECT().Dogs(gomock.Any(), []string{"d2"}).Return([]catalog.Dog{{ID: "d2", Name: "Luna"}}, nil),
				)
			},
			wantID: "d2",
		},
		{
			name: "empty ids are passed through",
			ids:  nil,
			setupMocks: func(m *mocks.MockAPI) {
				m.EXPECT().Match(gomock.Any(), gomock.Nil()).Return(catalog.MatchResponse{}, &catalog.StatusError{StatusCode: http.StatusBadRequest})
			},
			wantErr:     catalog.ErrSessionExpired,
			wantExpired: 1,
		},
		{
			name: "lookup rejection",
			ids:  []string{"d1"},
			setupMocks: func(m *mocks.MockAPI) {
				m.EXPECT().Match(gomock.Any(), gomock.Any()).Return(catalog.MatchResponse{Match: "d1"}, nil)
				m.EXPECT().Dogs(gomock.Any(), gomock.Any()).Return(nil, &catalog.StatusError{StatusCode: http.StatusUnauthorized})
			},
			wantErr:     catalog.ErrSessionExpired,
			wantExpired: 1,
		},
		{
			name: "unresolvable id",
			ids:  []string{"d1"},
			setupMocks: func(m *mocks.MockAPI) {
				m.EXPECT().Match(gomock.Any(), gomock.Any()).Return(catalog.MatchResponse{Match: "gone"}, nil)
				m.EXPECT().Dogs(gomock.Any(), []string{"gone"}).Return(nil, nil)
			},
			wantErr: match.ErrNoCandidate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			api := mocks.NewMockAPI(ctrl)
			tt.setupMocks(api)

			var expired int
			r := match.New(api, auth.ExpiryFunc(func(error) { expired++ }), nil)
			dog, err := r.Match(context.Background(), tt.ids)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, dog.ID)
			}
			assert.Equal(t, tt.wantExpired, expired)
		})
	}
}

func TestRequester_MatchReturnsOneOfFavorites(t *testing.T) {
	t.Parallel()

	srv := catalogtest.New(catalogtest.SampleDogs())
	t.Cleanup(srv.Close)
	srv.SetMatchPicker(func(ids []string) string { return ids[len(ids)-1] })

	session, err := auth.NewSession(srv.URL, nil)
	require.NoError(t, err)
	require.NoError(t, session.Login(context.Background(), "Ada", "ada@example.com"))
	client, err := catalog.NewClient(srv.URL, catalog.WithAuthorizer(session))
	require.NoError(t, err)

	favs := favorites.New()
	favs.Toggle(catalog.Dog{ID: "d01", Name: "Biscuit"}, true)
	favs.Toggle(catalog.Dog{ID: "d04", Name: "Luna"}, true)

	dog, err := match.New(client, session, nil).Match(context.Background(), favs.IDs())
	require.NoError(t, err)
	assert.Contains(t, favs.IDs(), dog.ID)
	assert.Equal(t, "d04", dog.ID)
	assert.Equal(t, "Beagle", dog.Breed)
	assert.Equal(t, 2, favs.Len(), "matching must not clear favorites")
}
