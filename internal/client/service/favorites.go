package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/atinyakov/SixCities/internal/client/api"
	"github.com/atinyakov/SixCities/internal/client/state"
	"github.com/atinyakov/SixCities/internal/models"
)

// FetchFavorites loads the favorites of the current user. A failure
// degrades to an empty list and is reported only through the Outcome.
// If an optimistic toggle changed the count while the request was in
// flight, the response is not applied and the Outcome is Superseded (or
// the failure). Favorites.Loading always ends false.
func (s *Service) FetchFavorites(ctx context.Context) Result[[]models.Offer] {
	var revision int
	s.store.Apply(func(st state.State) []state.Action {
		revision = st.Favorites.Revision
		return []state.Action{state.SetFavoritesLoading{Loading: true}}
	})

	var favorites []models.Offer
	if err := s.api.Get(ctx, "/favorite", &favorites); err != nil {
		outcome := TransportError
		if api.IsUnauthorized(err) {
			outcome = Unauthenticated
		}
		s.log.Warn("fetch favorites failed", zap.Stringer("outcome", outcome), zap.Error(err))
		applied := s.store.DispatchIf(unchangedFavorites(revision),
			state.ReplaceFavorites{Favorites: []models.Offer{}},
			state.SetFavoritesLoading{Loading: false},
		)
		if !applied {
			s.store.Dispatch(state.SetFavoritesLoading{Loading: false})
		}
		return Result[[]models.Offer]{Outcome: outcome, Value: []models.Offer{}, Err: err}
	}
	if favorites == nil {
		favorites = []models.Offer{}
	}

	applied := s.store.DispatchIf(unchangedFavorites(revision),
		state.ReplaceFavorites{Favorites: favorites},
		state.SetFavoritesLoading{Loading: false},
	)
	if !applied {
		s.store.Dispatch(state.SetFavoritesLoading{Loading: false})
		s.log.Debug("stale favorites response dropped")
		return Result[[]models.Offer]{Outcome: Superseded, Value: favorites, Err: ErrSuperseded}
	}
	return Result[[]models.Offer]{Outcome: OK, Value: favorites}
}

func unchangedFavorites(revision int) func(state.State) bool {
	return func(st state.State) bool {
		return st.Favorites.Revision == revision
	}
}

// UpdateFavorite asks the server to add or remove an offer from the
// favorites. It does not touch the favorites list, the count or any
// isFavorite flag; use ToggleFavorite for the paired local update.
func (s *Service) UpdateFavorite(ctx context.Context, toggle models.FavoriteToggle) error {
	if toggle.OfferID == "" {
		return models.ErrEmptyOfferID
	}
	s.store.Dispatch(state.SetFavoritesLoading{Loading: true})

	path := "/favorite/" + pathID(toggle.OfferID) + "/" + toggle.Status.PathSegment()
	if err := s.api.Post(ctx, path, nil, nil); err != nil {
		s.log.Error("update favorite failed",
			zap.String("offer_id", toggle.OfferID.String()),
			zap.Int("status", int(toggle.Status)),
			zap.Error(err),
		)
		return fmt.Errorf("update favorite %s: %w", toggle.OfferID, err)
	}

	s.store.Dispatch(state.SetFavoritesLoading{Loading: false})
	return nil
}

// ToggleFavorite flips the favorite flag of id locally, adjusts the
// favorites count by one and sends the matching UpdateFavorite. The local
// change is not rolled back when the request fails; FetchFavorites
// reconciles it. It returns the new flag.
func (s *Service) ToggleFavorite(ctx context.Context, id models.OfferID) (bool, error) {
	if id == "" {
		return false, models.ErrEmptyOfferID
	}

	var (
		allowed bool
		next    bool
	)
	s.store.Apply(func(st state.State) []state.Action {
		if !state.IsAuthorized(st) {
			return nil
		}
		allowed = true
		next = !isFavorite(st, id)
		count := st.Favorites.Count + 1
		if !next {
			count = st.Favorites.Count - 1
		}
		return []state.Action{
			state.SetOfferFavorite{ID: id, IsFavorite: next},
			state.SetFavoritesCount{Count: count},
		}
	})
	if !allowed {
		return false, ErrNotAuthorized
	}

	status := models.FavoriteDelete
	if next {
		status = models.FavoriteAdd
	}
	if err := s.UpdateFavorite(ctx, models.FavoriteToggle{OfferID: id, Status: status}); err != nil {
		return next, err
	}
	return next, nil
}

// isFavorite returns the locally known flag of id, preferring the offer
// detail over the list.
func isFavorite(st state.State, id models.OfferID) bool {
	if o := st.CurrentOffer.Offer; o != nil && o.ID == id.String() {
		return o.IsFavorite
	}
	for _, o := range st.Offers.Offers {
		if o.ID == id.String() {
			return o.IsFavorite
		}
	}
	for _, o := range st.Favorites.Favorites {
		if o.ID == id.String() {
			return true
		}
	}
	return false
}
