package models

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// Limits of the review form.
const (
	MinReviewRating  = 1
	MaxReviewRating  = 5
	MinCommentLength = 50
	MaxCommentLength = 300
)

var (
	// ErrInvalidRating is returned for a rating outside [MinReviewRating, MaxReviewRating].
	ErrInvalidRating = errors.New("invalid rating")
	// ErrInvalidComment is returned for a comment of unsupported length.
	ErrInvalidComment = errors.New("invalid comment")
)

// ReviewUser is the author of a review.
type ReviewUser struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	IsPro     bool   `json:"isPro"`
}

// Review is a single comment left on an offer.
type Review struct {
	// ID is the unique identifier of the review.
	ID string `json:"id"`
	// Date is when the review was posted.
	Date time.Time `json:"date"`
	// User is the author.
	User ReviewUser `json:"user"`
	// Comment is the review text.
	Comment string `json:"comment"`
	// Rating given by the author.
	Rating float64 `json:"rating"`
}

// ReviewData is the input of a review submission.
type ReviewData struct {
	OfferID OfferID `json:"-"`
	Comment string  `json:"comment"`
	Rating  int     `json:"rating"`
}

// Validate checks the rating scale and the comment length.
// Submitting a review does not call it: validation belongs to the caller.
func (d ReviewData) Validate() error {
	if d.OfferID == "" {
		return ErrEmptyOfferID
	}
	if d.Rating < MinReviewRating || d.Rating > MaxReviewRating {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidRating, d.Rating, MinReviewRating, MaxReviewRating)
	}
	n := utf8.RuneCountInString(d.Comment)
	if n < MinCommentLength || n > MaxCommentLength {
		return fmt.Errorf("%w: length %d not in [%d, %d]", ErrInvalidComment, n, MinCommentLength, MaxCommentLength)
	}
	return nil
}
