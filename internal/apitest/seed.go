package apitest

import (
	"time"

	"github.com/atinyakov/SixCities/internal/models"
)

var (
	paris     = models.City{Name: "Paris", Location: models.Location{Latitude: 48.85661, Longitude: 2.351499, Zoom: 13}}
	amsterdam = models.City{Name: "Amsterdam", Location: models.Location{Latitude: 52.37454, Longitude: 4.897976, Zoom: 13}}
)

// SampleSeed returns a small data set with two cities and reviews on the
// first offer.
func SampleSeed() Seed {
	host := models.Host{Name: "Angelina", AvatarURL: "img/avatar-angelina.jpg", IsPro: true}
	offers := []models.CompleteOffer{
		{
			ID: "1", Title: "Beautiful & luxurious studio at great location", Type: "apartment",
			Price: 120, City: amsterdam, Location: models.Location{Latitude: 52.3909553943508, Longitude: 4.85309666406198, Zoom: 16},
			IsPremium: true, Rating: 4.8, Description: "A quiet cozy and picturesque place near the canal.",
			Bedrooms: 3, Goods: []string{"Heating", "Kitchen", "Wifi"}, Host: host,
			Images: []string{"img/apartment-01.jpg", "img/apartment-02.jpg"}, MaxAdults: 4,
		},
		{
			ID: "2", Title: "Wood and stone place", Type: "room",
			Price: 80, City: amsterdam, Location: models.Location{Latitude: 52.3609553943508, Longitude: 4.85309666406198, Zoom: 16},
			Rating: 4.0, Description: "A small room close to the park.",
			Bedrooms: 1, Goods: []string{"Wifi"}, Host: host,
			Images: []string{"img/room.jpg"}, MaxAdults: 2,
		},
		{
			ID: "3", Title: "Canal View Prinsengracht", Type: "house",
			Price: 180, City: amsterdam, Location: models.Location{Latitude: 52.3909553943508, Longitude: 4.929309666406198, Zoom: 16},
			Rating: 4.2, Description: "Whole house with a view over the canal.",
			Bedrooms: 4, Goods: []string{"Heating", "Washing machine"}, Host: host,
			Images: []string{"img/apartment-03.jpg"}, MaxAdults: 6,
		},
		{
			ID: "4", Title: "Nice, cozy, warm big bed apartment", Type: "apartment",
			Price: 150, City: paris, Location: models.Location{Latitude: 48.8566, Longitude: 2.3522, Zoom: 16},
			IsPremium: true, Rating: 5, Description: "Big bed, warm apartment in the centre.",
			Bedrooms: 2, Goods: []string{"Kitchen", "Coffee machine"}, Host: host,
			Images: []string{"img/apartment-02.jpg"}, MaxAdults: 3,
		},
	}

	base := time.Date(2019, time.May, 8, 14, 13, 56, 0, time.UTC)
	return Seed{
		Offers: offers,
		Reviews: map[string][]models.Review{
			"1": {
				{
					ID: "r1", Date: base, Rating: 4,
					User:    models.ReviewUser{Name: "Max", AvatarURL: "img/avatar-max.jpg"},
					Comment: "A quiet cozy and picturesque that hides behind a river by the unique lightness of Amsterdam.",
				},
				{
					ID: "r2", Date: base.Add(48 * time.Hour), Rating: 5,
					User:    models.ReviewUser{Name: "Oliver", AvatarURL: "img/avatar-oliver.jpg", IsPro: true},
					Comment: "The building is green and from 18th century. Great location, friendly host, would stay again.",
				},
			},
		},
	}
}
