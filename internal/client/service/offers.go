package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/atinyakov/SixCities/internal/client/state"
	"github.com/atinyakov/SixCities/internal/models"
)

// FetchOffers loads the offer list. On failure the error is returned and
// Offers.Loading stays true; the caller decides whether to retry.
func (s *Service) FetchOffers(ctx context.Context) ([]models.Offer, error) {
	s.store.Dispatch(state.SetOffersLoading{Loading: true})

	var offers []models.Offer
	if err := s.api.Get(ctx, "/offers", &offers); err != nil {
		s.log.Error("fetch offers failed", zap.Error(err))
		return nil, fmt.Errorf("fetch offers: %w", err)
	}

	s.store.Dispatch(
		state.ReplaceOffers{Offers: offers},
		state.SetOffersLoading{Loading: false},
	)
	return offers, nil
}

// FetchSingleOffer selects id and loads its detail. If another offer has
// been selected by the time the response arrives, nothing is dispatched
// and ErrSuperseded is returned.
func (s *Service) FetchSingleOffer(ctx context.Context, id models.OfferID) (models.CompleteOffer, error) {
	if id == "" {
		return models.CompleteOffer{}, models.ErrEmptyOfferID
	}
	s.store.Dispatch(
		state.SelectOffer{ID: id},
		state.SetCurrentOfferLoading{Loading: true},
	)

	var offer models.CompleteOffer
	if err := s.api.Get(ctx, "/offers/"+pathID(id), &offer); err != nil {
		s.log.Error("fetch offer failed", zap.String("offer_id", id.String()), zap.Error(err))
		return models.CompleteOffer{}, fmt.Errorf("fetch offer %s: %w", id, err)
	}

	applied := s.store.DispatchIf(selected(id),
		state.ReplaceCurrentOffer{ID: id, Offer: offer},
		state.SetCurrentOfferLoading{Loading: false},
	)
	if !applied {
		s.log.Debug("stale offer response dropped", zap.String("offer_id", id.String()))
		return offer, ErrSuperseded
	}
	return offer, nil
}

// FetchReviewComments selects id and loads its reviews, fenced like
// FetchSingleOffer.
func (s *Service) FetchReviewComments(ctx context.Context, id models.OfferID) ([]models.Review, error) {
	if id == "" {
		return nil, models.ErrEmptyOfferID
	}
	s.store.Dispatch(
		state.SelectOffer{ID: id},
		state.SetCurrentOfferLoading{Loading: true},
	)

	var reviews []models.Review
	if err := s.api.Get(ctx, "/comments/"+pathID(id), &reviews); err != nil {
		s.log.Error("fetch reviews failed", zap.String("offer_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("fetch reviews %s: %w", id, err)
	}

	applied := s.store.DispatchIf(selected(id),
		state.ReplaceReviews{ID: id, Reviews: reviews},
		state.SetCurrentOfferLoading{Loading: false},
	)
	if !applied {
		s.log.Debug("stale reviews response dropped", zap.String("offer_id", id.String()))
		return reviews, ErrSuperseded
	}
	return reviews, nil
}

// PostReview submits a review. The data is expected to be validated by
// the caller; the local review list is left as is until the next
// FetchReviewComments.
func (s *Service) PostReview(ctx context.Context, review models.ReviewData) error {
	if review.OfferID == "" {
		return models.ErrEmptyOfferID
	}
	s.store.Dispatch(state.SetUserLoading{Loading: true})

	if err := s.api.Post(ctx, "/comments/"+pathID(review.OfferID), review, nil); err != nil {
		s.log.Error("post review failed", zap.String("offer_id", review.OfferID.String()), zap.Error(err))
		return fmt.Errorf("post review %s: %w", review.OfferID, err)
	}

	s.store.Dispatch(state.SetUserLoading{Loading: false})
	return nil
}

func selected(id models.OfferID) func(state.State) bool {
	return func(st state.State) bool {
		return st.CurrentOffer.SelectedID == id
	}
}
