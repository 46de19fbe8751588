package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/SixCities/internal/client/state"
	"github.com/atinyakov/SixCities/internal/models"
)

func TestFetchFavorites_Success(t *testing.T) {
	favs := sampleOffers()[1:2]
	f := newFixture(t, route(map[string]any{"GET /favorite": favs}))
	f.store.Dispatch(state.SetFavoritesCount{Count: 5})

	res := f.svc.FetchFavorites(context.Background())
	require.True(t, res.OK())
	assert.Equal(t, favs, res.Value)

	s := f.store.State()
	assert.Equal(t, favs, s.Favorites.Favorites)
	assert.Equal(t, 1, s.Favorites.Count, "drifted count is reconciled")
	assert.False(t, s.Favorites.Loading)
}

func TestFetchFavorites_FailureDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		outcome Outcome
	}{
		{"unauthorized", errUnauthorized, Unauthenticated},
		{"network", errNetwork, TransportError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, route(map[string]any{"GET /favorite": tt.err}))
			f.store.Dispatch(state.ReplaceFavorites{Favorites: sampleOffers()})

			res := f.svc.FetchFavorites(context.Background())
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.ErrorIs(t, res.Err, tt.err)
			assert.NotNil(t, res.Value)
			assert.Empty(t, res.Value)

			s := f.store.State()
			assert.NotNil(t, s.Favorites.Favorites)
			assert.Empty(t, s.Favorites.Favorites)
			assert.Zero(t, s.Favorites.Count)
			assert.False(t, s.Favorites.Loading)
		})
	}
}

func TestFetchFavorites_ToggleDuringFetchIsKept(t *testing.T) {
	tests := []struct {
		name    string
		resp    func() (any, error)
		outcome Outcome
	}{
		{"stale list", func() (any, error) { return []models.Offer{}, nil }, Superseded},
		{"failure", func() (any, error) { return nil, errNetwork }, TransportError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			started := make(chan struct{})
			release := make(chan struct{})
			f := newFixture(t, func(ctx context.Context, method, path string) (any, error) {
				if path == "/favorite" {
					close(started)
					<-release
					return tt.resp()
				}
				return struct{}{}, nil
			})
			f.store.Dispatch(
				state.SetAuthStatus{Status: models.Authorized},
				state.ReplaceOffers{Offers: sampleOffers()},
			)

			results := make(chan Result[[]models.Offer], 1)
			go func() { results <- f.svc.FetchFavorites(context.Background()) }()
			<-started

			fav, err := f.svc.ToggleFavorite(context.Background(), "A")
			require.NoError(t, err)
			require.True(t, fav)
			close(release)

			res := <-results
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Error(t, res.Err)

			s := f.store.State()
			assert.Equal(t, 1, s.Favorites.Count, "toggle made during the fetch survives")
			assert.True(t, s.Offers.Offers[0].IsFavorite)
			assert.False(t, s.Favorites.Loading)
		})
	}
}

func TestUpdateFavorite_DeleteTwice(t *testing.T) {
	f := newFixture(t, route(map[string]any{"POST /favorite/A/0": struct{}{}}))
	f.store.Dispatch(
		state.ReplaceFavorites{Favorites: sampleOffers()[:1]},
		state.SetFavoritesCount{Count: 4},
	)
	before := f.store.State().Favorites

	toggle := models.FavoriteToggle{OfferID: "A", Status: models.FavoriteDelete}
	require.NoError(t, f.svc.UpdateFavorite(context.Background(), toggle))
	require.NoError(t, f.svc.UpdateFavorite(context.Background(), toggle))

	calls := f.api.recorded()
	require.Len(t, calls, 2)
	for _, c := range calls {
		assert.Equal(t, "POST", c.method)
		assert.Equal(t, "/favorite/A/0", c.path)
	}

	after := f.store.State().Favorites
	assert.Equal(t, before.Favorites, after.Favorites)
	assert.Equal(t, before.Count, after.Count)

	for _, a := range f.rec.list()[2:] {
		assert.IsType(t, state.SetFavoritesLoading{}, a)
	}
}

func TestUpdateFavorite_Failure(t *testing.T) {
	f := newFixture(t, route(map[string]any{}))

	err := f.svc.UpdateFavorite(context.Background(), models.FavoriteToggle{OfferID: "A", Status: models.FavoriteAdd})
	require.Error(t, err)
	assert.True(t, f.store.State().Favorites.Loading)

	err = f.svc.UpdateFavorite(context.Background(), models.FavoriteToggle{})
	require.ErrorIs(t, err, models.ErrEmptyOfferID)
}

func TestToggleFavorite_RequiresAuthorization(t *testing.T) {
	f := newFixture(t, route(map[string]any{}))
	f.store.Dispatch(state.ReplaceOffers{Offers: sampleOffers()})

	_, err := f.svc.ToggleFavorite(context.Background(), "A")
	require.ErrorIs(t, err, ErrNotAuthorized)
	assert.Empty(t, f.api.recorded())
	assert.False(t, f.store.State().Offers.Offers[0].IsFavorite)
}

func TestToggleFavorite_Optimistic(t *testing.T) {
	f := newFixture(t, route(map[string]any{
		"POST /favorite/A/1": struct{}{},
		"POST /favorite/A/0": struct{}{},
	}))
	f.store.Dispatch(
		state.SetAuthStatus{Status: models.Authorized},
		state.ReplaceOffers{Offers: sampleOffers()},
		state.SelectOffer{ID: "A"},
		state.ReplaceCurrentOffer{ID: "A", Offer: models.CompleteOffer{ID: "A"}},
		state.SetFavoritesCount{Count: 2},
	)

	fav, err := f.svc.ToggleFavorite(context.Background(), "A")
	require.NoError(t, err)
	assert.True(t, fav)

	s := f.store.State()
	assert.True(t, s.Offers.Offers[0].IsFavorite)
	assert.True(t, s.CurrentOffer.Offer.IsFavorite)
	assert.Equal(t, 3, s.Favorites.Count)

	fav, err = f.svc.ToggleFavorite(context.Background(), "A")
	require.NoError(t, err)
	assert.False(t, fav)
	assert.Equal(t, 2, f.store.State().Favorites.Count)

	calls := f.api.recorded()
	require.Len(t, calls, 2)
	assert.Equal(t, "/favorite/A/1", calls[0].path)
	assert.Equal(t, "/favorite/A/0", calls[1].path)
}

func TestToggleFavorite_NoRollbackAndNoClamp(t *testing.T) {
	f := newFixture(t, route(map[string]any{"POST /favorite/B/0": errNetwork}))
	f.store.Dispatch(
		state.SetAuthStatus{Status: models.Authorized},
		state.ReplaceOffers{Offers: sampleOffers()},
	)

	fav, err := f.svc.ToggleFavorite(context.Background(), "B")
	require.ErrorIs(t, err, errNetwork)
	assert.False(t, fav)

	s := f.store.State()
	assert.False(t, s.Offers.Offers[1].IsFavorite, "optimistic flag is kept")
	assert.Equal(t, -1, s.Favorites.Count, "count is not clamped")
}

func TestStartAutoReconcile(t *testing.T) {
	favs := sampleOffers()[:2]
	f := newFixture(t, route(map[string]any{"GET /favorite": favs}))
	f.store.Dispatch(
		state.SetAuthStatus{Status: models.Authorized},
		state.SetFavoritesCount{Count: 9},
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := StartAutoReconcile(ctx, f.svc, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return f.store.State().Favorites.Count == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reconcile loop did not stop")
	}
}

func TestStartAutoReconcile_SkipsWhenAnonymous(t *testing.T) {
	f := newFixture(t, route(map[string]any{"GET /favorite": sampleOffers()}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	<-StartAutoReconcile(ctx, f.svc, 5*time.Millisecond)

	assert.Empty(t, f.api.recorded())
}

func TestStartAutoReconcile_Disabled(t *testing.T) {
	f := newFixture(t, nil)

	select {
	case <-StartAutoReconcile(context.Background(), f.svc, 0):
	default:
		t.Fatal("disabled reconcile must return a closed channel")
	}
}
