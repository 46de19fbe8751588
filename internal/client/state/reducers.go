package state

import (
	"slices"

	"github.com/atinyakov/SixCities/internal/models"
)

// OffersState is the offer list slice.
type OffersState struct {
	Offers  []models.Offer
	Loading bool
}

// CurrentOfferState is the offer detail slice. Offer is nil until the
// detail of SelectedID arrives.
type CurrentOfferState struct {
	SelectedID models.OfferID
	Offer      *models.CompleteOffer
	Reviews    []models.Review
	Loading    bool
}

// UserState is the authorization slice.
type UserState struct {
	AuthorizationStatus models.AuthorizationStatus
	Email               string
	Loading             bool
}

// FavoritesState is the favorites slice. Count is adjusted optimistically
// and may differ from len(Favorites) until the next ReplaceFavorites.
// Revision grows with every optimistic count change; a refetch started at
// an older revision must not overwrite it.
type FavoritesState struct {
	Favorites []models.Offer
	Count     int
	Revision  int
	Loading   bool
}

// State is the whole client state.
type State struct {
	Offers       OffersState
	CurrentOffer CurrentOfferState
	User         UserState
	Favorites    FavoritesState
}

// Initial returns the state before any operation ran.
func Initial() State {
	return State{
		Offers:       OffersState{Offers: []models.Offer{}},
		CurrentOffer: CurrentOfferState{Reviews: []models.Review{}},
		User:         UserState{AuthorizationStatus: models.Unknown},
		Favorites:    FavoritesState{Favorites: []models.Offer{}},
	}
}

// Reduce feeds a to every slice reducer.
func Reduce(s State, a Action) State {
	return State{
		Offers:       ReduceOffers(s.Offers, a),
		CurrentOffer: ReduceCurrentOffer(s.CurrentOffer, a),
		User:         ReduceUser(s.User, a),
		Favorites:    ReduceFavorites(s.Favorites, a),
	}
}

// ReduceOffers is the offer list reducer.
func ReduceOffers(s OffersState, a Action) OffersState {
	switch a := a.(type) {
	case SetOffersLoading:
		s.Loading = a.Loading
	case ReplaceOffers:
		s.Offers = cloneOrEmpty(a.Offers)
	case SetOfferFavorite:
		i := slices.IndexFunc(s.Offers, func(o models.Offer) bool { return o.ID == a.ID.String() })
		if i < 0 {
			return s
		}
		// copy on write: snapshots handed out earlier share the old array
		offers := slices.Clone(s.Offers)
		offers[i].IsFavorite = a.IsFavorite
		s.Offers = offers
	}
	return s
}

// ReduceCurrentOffer is the offer detail reducer.
func ReduceCurrentOffer(s CurrentOfferState, a Action) CurrentOfferState {
	switch a := a.(type) {
	case SelectOffer:
		if a.ID == s.SelectedID {
			return s
		}
		s.SelectedID = a.ID
		s.Offer = nil
		s.Reviews = []models.Review{}
	case ReplaceCurrentOffer:
		if a.ID != s.SelectedID {
			return s
		}
		offer := a.Offer
		s.Offer = &offer
	case ReplaceReviews:
		if a.ID != s.SelectedID {
			return s
		}
		s.Reviews = cloneOrEmpty(a.Reviews)
	case SetCurrentOfferLoading:
		s.Loading = a.Loading
	case SetOfferFavorite:
		if s.Offer == nil || s.Offer.ID != a.ID.String() {
			return s
		}
		offer := *s.Offer
		offer.IsFavorite = a.IsFavorite
		s.Offer = &offer
	}
	return s
}

// ReduceUser is the authorization reducer.
func ReduceUser(s UserState, a Action) UserState {
	switch a := a.(type) {
	case SetAuthStatus:
		s.AuthorizationStatus = a.Status
	case SetEmail:
		s.Email = a.Email
	case SetUserLoading:
		s.Loading = a.Loading
	}
	return s
}

// ReduceFavorites is the favorites reducer. ReplaceFavorites reconciles
// the optimistic count with the server list.
func ReduceFavorites(s FavoritesState, a Action) FavoritesState {
	switch a := a.(type) {
	case ReplaceFavorites:
		s.Favorites = cloneOrEmpty(a.Favorites)
		s.Count = len(s.Favorites)
	case SetFavoritesCount:
		s.Count = a.Count
		s.Revision++
	case SetFavoritesLoading:
		s.Loading = a.Loading
	}
	return s
}

func cloneOrEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}
