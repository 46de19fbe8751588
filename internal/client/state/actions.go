// Package state holds the client-side application state: four independent
// slices (offers, current offer, user, favorites), the pure reducers that
// transition them and the Store that owns them.
package state

import "github.com/atinyakov/SixCities/internal/models"

// Action is a state transition. The set is closed: only this package
// defines actions.
type Action interface {
	isAction()
}

// Offers slice.
type (
	// SetOffersLoading sets Offers.Loading.
	SetOffersLoading struct{ Loading bool }
	// ReplaceOffers replaces the offer list verbatim.
	ReplaceOffers struct{ Offers []models.Offer }
)

// Current offer slice. Replace actions carry the id they were requested
// for and are discarded when it is no longer the selected one.
type (
	// SelectOffer makes ID the offer whose detail is being viewed.
	SelectOffer struct{ ID models.OfferID }
	// ReplaceCurrentOffer stores the detail fetched for ID.
	ReplaceCurrentOffer struct {
		ID    models.OfferID
		Offer models.CompleteOffer
	}
	// ReplaceReviews stores the reviews fetched for ID.
	ReplaceReviews struct {
		ID      models.OfferID
		Reviews []models.Review
	}
	// SetCurrentOfferLoading sets CurrentOffer.Loading.
	SetCurrentOfferLoading struct{ Loading bool }
)

// User slice.
type (
	// SetAuthStatus sets User.AuthorizationStatus.
	SetAuthStatus struct{ Status models.AuthorizationStatus }
	// SetEmail sets User.Email.
	SetEmail struct{ Email string }
	// SetUserLoading sets User.Loading.
	SetUserLoading struct{ Loading bool }
)

// Favorites slice.
type (
	// ReplaceFavorites replaces the favorites and resets the count to their number.
	ReplaceFavorites struct{ Favorites []models.Offer }
	// SetFavoritesCount sets the optimistic favorites count.
	SetFavoritesCount struct{ Count int }
	// SetFavoritesLoading sets Favorites.Loading.
	SetFavoritesLoading struct{ Loading bool }
)

// SetOfferFavorite flips the optimistic isFavorite flag of an offer
// wherever it is held (offer list and current offer).
type SetOfferFavorite struct {
	ID         models.OfferID
	IsFavorite bool
}

func (SetOffersLoading) isAction()       {}
func (ReplaceOffers) isAction()          {}
func (SelectOffer) isAction()            {}
func (ReplaceCurrentOffer) isAction()    {}
func (ReplaceReviews) isAction()         {}
func (SetCurrentOfferLoading) isAction() {}
func (SetAuthStatus) isAction()          {}
func (SetEmail) isAction()               {}
func (SetUserLoading) isAction()         {}
func (ReplaceFavorites) isAction()       {}
func (SetFavoritesCount) isAction()      {}
func (SetFavoritesLoading) isAction()    {}
func (SetOfferFavorite) isAction()       {}
