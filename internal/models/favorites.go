package models

import "strconv"

// FavoriteStatus is the requested favorite state of an offer.
type FavoriteStatus int

const (
	// FavoriteDelete removes an offer from favorites.
	FavoriteDelete FavoriteStatus = 0
	// FavoriteAdd adds an offer to favorites.
	FavoriteAdd FavoriteStatus = 1
)

// PathSegment returns the status as encoded in POST /favorite/{id}/{status}.
func (s FavoriteStatus) PathSegment() string {
	return strconv.Itoa(int(s))
}

// FavoriteToggle is the input of a server-side favorite toggle.
type FavoriteToggle struct {
	OfferID OfferID
	Status  FavoriteStatus
}
