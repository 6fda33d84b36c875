// Package seed loads the default categories and a starter set of places.
package seed

import (
	"context"
	"fmt"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/category"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/place"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreatedBy marks rows written by the seeder.
const CreatedBy = "seed"

var placeNamespace = uuid.MustParse("5b1f3c8e-6f1e-4d7c-9a43-2f6c1d0e8a11")

// Categories are the defaults every install starts with.
var Categories = []category.Category{
	{ID: "food_cafe", Label: "Cafes", Emoji: "☕"},
	{ID: "food_restaurant", Label: "Restaurants", Emoji: "🍽️"},
	{ID: "activity", Label: "Activities", Emoji: "🎯"},
	{ID: "movie", Label: "Movies", Emoji: "🎬"},
}

type samplePlace struct {
	key           string
	title         string
	description   string
	category      string
	subcategory   string
	tags          []string
	lat, lng      float64
	address       string
	neighbourhood string
	rating        float64
	likes, loves  int
	views         int
}

var samplePlaces = []samplePlace{
	{
		key: "cafe-indiranagar-1", title: "Third Wave Coffee Roasters",
		description: "Specialty coffee with single-origin beans and a cozy room for work or meetings.",
		category:    "food_cafe", subcategory: "cafe",
		tags: []string{"coffee", "wifi", "work-friendly", "specialty-coffee", "brunch"},
		lat:  12.9784, lng: 77.6408, address: "100 Feet Road, Indiranagar", neighbourhood: "Indiranagar",
		rating: 4.6, likes: 156, loves: 89, views: 2145,
	},
	{
		key: "restaurant-koramangala-1", title: "Truffles",
		description: "Burgers, steaks and desserts in a buzzing casual dining spot.",
		category:    "food_restaurant", subcategory: "casual_dining",
		tags: []string{"burgers", "american", "desserts", "casual"},
		lat:  12.9352, lng: 77.6245, address: "80 Feet Road, Koramangala", neighbourhood: "Koramangala",
		rating: 4.5, likes: 234, loves: 145, views: 3456,
	},
	{
		key: "restaurant-malleshwaram-1", title: "Brahmin's Coffee Bar",
		description: "Standing-room idli, vada and filter coffee since 1965.",
		category:    "food_restaurant", subcategory: "casual_dining",
		tags: []string{"south-indian", "breakfast", "filter-coffee", "budget"},
		lat:  13.0067, lng: 77.5703, address: "Ranga Rao Road, Shankarapuram", neighbourhood: "Basavanagudi",
		rating: 4.7, likes: 312, loves: 201, views: 4120,
	},
	{
		key: "brewery-indiranagar-1", title: "Toit Brewpub",
		description: "Craft beer brewed on site with wood-fired pizzas and a lively crowd.",
		category:    "food_restaurant", subcategory: "brewery",
		tags: []string{"craft-beer", "pizza", "nightlife", "groups"},
		lat:  12.9716, lng: 77.6412, address: "100 Feet Road, Indiranagar", neighbourhood: "Indiranagar",
		rating: 4.5, likes: 421, loves: 267, views: 5210,
	},
	{
		key: "cafe-whitefield-1", title: "Blue Tokai Coffee Roasters",
		description: "Freshly roasted Indian coffee and quiet corners to read.",
		category:    "food_cafe", subcategory: "cafe",
		tags: []string{"coffee", "wifi", "quiet"},
		lat:  12.9698, lng: 77.7499, address: "ITPL Main Road, Whitefield", neighbourhood: "Whitefield",
		rating: 4.4, likes: 98, loves: 54, views: 1320,
	},
	{
		key: "restaurant-mgroad-1", title: "Koshy's Restaurant",
		description: "Old-school cafe and restaurant on St. Marks Road, famous for its breakfasts.",
		category:    "food_restaurant", subcategory: "fine_dining",
		tags: []string{"heritage", "continental", "breakfast"},
		lat:  12.9716, lng: 77.6033, address: "St. Marks Road", neighbourhood: "MG Road",
		rating: 4.3, likes: 187, loves: 102, views: 2890,
	},
	{
		key: "activity-indiranagar-1", title: "Smaaash",
		description: "Gaming and sports arcade with VR, bowling and cricket simulators.",
		category:    "activity", subcategory: "gaming",
		tags: []string{"arcade", "bowling", "vr", "gaming", "family-friendly", "sports"},
		lat:  12.9698, lng: 77.6387, address: "CMH Road, Indiranagar", neighbourhood: "Indiranagar",
		rating: 4.4, likes: 298, loves: 156, views: 2145,
	},
	{
		key: "activity-koramangala-1", title: "Climb Central",
		description: "Indoor bouldering and rope climbing for every level.",
		category:    "activity", subcategory: "sports",
		tags: []string{"climbing", "fitness", "adventure"},
		lat:  12.9279, lng: 77.6271, address: "Koramangala 1st Block", neighbourhood: "Koramangala",
		rating: 4.6, likes: 143, loves: 88, views: 1780,
	},
	{
		key: "activity-ulsoor-1", title: "Ulsoor Lake",
		description: "Lakeside walks and boating in the middle of the city.",
		category:    "activity", subcategory: "outdoor",
		tags: []string{"lake", "walks", "boating", "outdoors"},
		lat:  12.9813, lng: 77.6196, address: "Ulsoor", neighbourhood: "Ulsoor",
		rating: 4.2, likes: 176, loves: 93, views: 1980,
	},
	{
		key: "activity-cubbon-1", title: "Cubbon Park",
		description: "Shaded green lungs of the city, best on a weekend morning.",
		category:    "activity", subcategory: "outdoor",
		tags: []string{"park", "walks", "running", "outdoors"},
		lat:  12.9762, lng: 77.5929, address: "Kasturba Road", neighbourhood: "Cubbon Park",
		rating: 4.7, likes: 512, loves: 344, views: 6230,
	},
	{
		key: "movie-koramangala-1", title: "PVR Koramangala",
		description: "Multiplex with IMAX and 4DX screens inside the Forum mall.",
		category:    "movie", subcategory: "multiplex",
		tags: []string{"imax", "4dx", "multiplex", "premium", "latest-releases"},
		lat:  12.9352, lng: 77.6245, address: "Forum Mall, Hosur Road", neighbourhood: "Koramangala",
		rating: 4.3, likes: 265, loves: 120, views: 3340,
	},
	{
		key: "movie-rajajinagar-1", title: "Gopalan Cinemas",
		description: "Affordable multiplex popular for regional releases.",
		category:    "movie", subcategory: "multiplex",
		tags: []string{"multiplex", "budget", "regional"},
		lat:  12.9916, lng: 77.5571, address: "Mysore Road", neighbourhood: "Rajajinagar",
		rating: 4.1, likes: 87, loves: 41, views: 1210,
	},
}

// PlaceID is the stable id a sample place is stored under.
func PlaceID(key string) string {
	return uuid.NewSHA1(placeNamespace, []byte(key)).String()
}

func (s samplePlace) toPlace() *place.Place {
	return &place.Place{
		ID:            PlaceID(s.key),
		Title:         s.title,
		Description:   s.description,
		Category:      s.category,
		Subcategory:   s.subcategory,
		Tags:          db.StringList(s.tags),
		Lat:           s.lat,
		Lng:           s.lng,
		Address:       s.address,
		City:          "Bengaluru",
		Neighbourhood: s.neighbourhood,
		Images:        db.StringList{},
		AvgRating:     s.rating,
		LikeCount:     s.likes,
		LoveCount:     s.loves,
		Views:         s.views,
		CreatedBy:     CreatedBy,
		Status:        place.StatusPublished,
	}
}

// Result counts what a run actually wrote.
type Result struct {
	Categories int
	Places     int
}

// Run upserts the default categories and inserts any sample place not
// already present. Running it twice is harmless.
func Run(ctx context.Context, database *db.DB, log *zap.Logger) (Result, error) {
	var res Result
	err := database.Transaction(ctx, func(tx *db.DB) error {
		categories := category.NewCategoryRepository(tx)
		places := place.NewPlaceRepository(tx)

		for i := range Categories {
			c := Categories[i]
			if err := categories.Upsert(ctx, &c); err != nil {
				return fmt.Errorf("seed category %s: %w", c.ID, err)
			}
			res.Categories++
		}

		for _, s := range samplePlaces {
			existing, err := places.GetByID(ctx, PlaceID(s.key))
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			if err := places.Create(ctx, s.toPlace()); err != nil {
				return fmt.Errorf("seed place %s: %w", s.key, err)
			}
			log.Debug("seeded place", zap.String("title", s.title))
			res.Places++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	log.Info("seed complete", zap.Int("categories", res.Categories), zap.Int("places", res.Places))
	return res, nil
}
