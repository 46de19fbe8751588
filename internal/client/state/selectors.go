package state

import (
	"slices"

	"github.com/atinyakov/SixCities/internal/models"
)

// Display limits used by the offer page.
const (
	ReviewsLimit = 10
	NearbyLimit  = 3
)

// IsAuthorized reports whether the user slice says Authorized.
func IsAuthorized(s State) bool {
	return s.User.AuthorizationStatus == models.Authorized
}

// LatestReviews takes the last limit reviews in server order and returns
// them newest first. Reviews with equal dates keep their relative order.
func LatestReviews(reviews []models.Review, limit int) []models.Review {
	if limit >= 0 && len(reviews) > limit {
		reviews = reviews[len(reviews)-limit:]
	}
	out := cloneOrEmpty(reviews)
	slices.SortStableFunc(out, func(a, b models.Review) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// NearbyOffers returns up to limit offers other than id, in list order.
func NearbyOffers(offers []models.Offer, id models.OfferID, limit int) []models.Offer {
	if limit <= 0 {
		return []models.Offer{}
	}
	out := make([]models.Offer, 0, limit)
	for _, o := range offers {
		if len(out) >= limit {
			break
		}
		if o.ID == id.String() {
			continue
		}
		out = append(out, o)
	}
	return out
}

// CityGroup is one city section of the favorites page.
type CityGroup struct {
	City   string
	Offers []models.Offer
}

// OffersByCity groups offers by city name, cities in order of first appearance.
func OffersByCity(offers []models.Offer) []CityGroup {
	var groups []CityGroup
	index := make(map[string]int)
	for _, o := range offers {
		i, ok := index[o.City.Name]
		if !ok {
			i = len(groups)
			index[o.City.Name] = i
			groups = append(groups, CityGroup{City: o.City.Name})
		}
		groups[i].Offers = append(groups[i].Offers, o)
	}
	return groups
}
