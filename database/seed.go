package database

import (
	"context"
	"time"

	"tabletalk/models"

	"go.uber.org/zap"
)

// RestaurantSeeder is the subset of the restaurant repository the seeder needs.
type RestaurantSeeder interface {
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
	InsertMany(ctx context.Context, restaurants []models.Restaurant) error
}

// SeedRestaurants ensures at least five demo restaurants exist. Clears the
// catalog first so re-seeding never duplicates entries.
func SeedRestaurants(ctx context.Context, repo RestaurantSeeder, logger *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count >= 5 {
		return nil
	}

	logger.Info("Seeding restaurants...")
	if err := repo.DeleteAll(ctx); err != nil {
		return err
	}

	now := time.Now()
	seed := []models.Restaurant{
		{
			Name:        "Bella Italia",
			Cuisine:     "Italian",
			Address:     "123 Olive St, Food City",
			Rating:      4.8,
			PriceRange:  "$$$",
			Description: "Authentic wood-fired pizzas and handmade pasta.",
			ImageURL:    "https://images.unsplash.com/photo-1555396273-367ea4eb4db5?auto=format&fit=crop&w=800&q=80",
			CreatedAt:   now,
		},
		{
			Name:        "Spice Route",
			Cuisine:     "Indian",
			Address:     "45 Curry Lane, Flavor Town",
			Rating:      4.6,
			PriceRange:  "$$",
			Description: "Rich curries and tandoori specials.",
			ImageURL:    "https://images.unsplash.com/photo-1585937421612-70a008356f36?auto=format&fit=crop&w=800&q=80",
			CreatedAt:   now,
		},
		{
			Name:        "Sushi Zen",
			Cuisine:     "Japanese",
			Address:     "88 Blossom Ave, Zen District",
			Rating:      4.9,
			PriceRange:  "$$$$",
			Description: "Premium sushi and sashimi experiences.",
			ImageURL:    "https://images.unsplash.com/photo-1579871494447-9811cf80d66c?auto=format&fit=crop&w=800&q=80",
			CreatedAt:   now,
		},
		{
			Name:        "The Burger Joint",
			Cuisine:     "American",
			Address:     "101 Grill Rd, Meatpacking Dist",
			Rating:      4.4,
			PriceRange:  "$",
			Description: "Juicy handcrafted burgers and milkshakes.",
			ImageURL:    "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?auto=format&fit=crop&w=800&q=80",
			CreatedAt:   now,
		},
		{
			Name:        "El Camino",
			Cuisine:     "Mexican",
			Address:     "55 Fiesta Way, Southside",
			Rating:      4.7,
			PriceRange:  "$$",
			Description: "Authentic street tacos and margaritas.",
			ImageURL:    "https://images.unsplash.com/photo-1565299585323-38d6b0865b47?auto=format&fit=crop&w=800&q=80",
			CreatedAt:   now,
		},
	}

	if err := repo.InsertMany(ctx, seed); err != nil {
		return err
	}
	logger.Info("Restaurants seeded!")
	return nil
}
