// Package models defines the core data structures exchanged with the
// six-cities API: offers, reviews, users and favorites.
package models

import (
	"errors"
	"strings"
)

// ErrEmptyOfferID is returned when an offer identifier is missing.
var ErrEmptyOfferID = errors.New("offer id is empty")

// OfferID identifies an offer. A non-empty value is obtained through NewOfferID.
type OfferID string

// NewOfferID validates s and returns it as an OfferID.
// It rejects empty and whitespace-only identifiers, so an operation is
// never issued for an undefined resource.
func NewOfferID(s string) (OfferID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyOfferID
	}
	return OfferID(s), nil
}

// String returns the raw identifier.
func (id OfferID) String() string {
	return string(id)
}

// Location is a point on the map.
type Location struct {
	// Latitude of the point.
	Latitude float64 `json:"latitude"`
	// Longitude of the point.
	Longitude float64 `json:"longitude"`
	// Zoom is the preferred map zoom level.
	Zoom int `json:"zoom"`
}

// City is the city an offer belongs to.
type City struct {
	// Name of the city ("Paris", "Amsterdam", ...).
	Name string `json:"name"`
	// Location is the city center.
	Location Location `json:"location"`
}

// Offer is the summary of a rental offer as returned by GET /offers.
type Offer struct {
	// ID is the unique identifier of the offer.
	ID string `json:"id"`
	// Title is the headline shown on the card.
	Title string `json:"title"`
	// Type is the kind of place ("apartment", "room", "house", "hotel").
	Type string `json:"type"`
	// Price is the price per night.
	Price int `json:"price"`
	// City is the city of the offer.
	City City `json:"city"`
	// Location is the position of the place.
	Location Location `json:"location"`
	// IsFavorite is optimistic on the client; the server is authoritative.
	IsFavorite bool `json:"isFavorite"`
	// IsPremium marks premium offers.
	IsPremium bool `json:"isPremium"`
	// Rating is between 0 and 5.
	Rating float64 `json:"rating"`
	// PreviewImage is the URL of the card image.
	PreviewImage string `json:"previewImage"`
}

// Host is the owner of a place.
type Host struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	IsPro     bool   `json:"isPro"`
}

// CompleteOffer is the full offer returned by GET /offers/{id}.
type CompleteOffer struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Price       int      `json:"price"`
	City        City     `json:"city"`
	Location    Location `json:"location"`
	IsFavorite  bool     `json:"isFavorite"`
	IsPremium   bool     `json:"isPremium"`
	Rating      float64  `json:"rating"`
	Description string   `json:"description"`
	Bedrooms    int      `json:"bedrooms"`
	Goods       []string `json:"goods"`
	Host        Host     `json:"host"`
	Images      []string `json:"images"`
	MaxAdults   int      `json:"maxAdults"`
}
