package models

import "time"

// Restaurant is a venue in the read-only catalog.
type Restaurant struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Cuisine     string    `bson:"cuisine" json:"cuisine"` // e.g., "Italian", "Indian"
	Address     string    `bson:"address" json:"address"`
	Rating      float64   `bson:"rating" json:"rating"`
	PriceRange  string    `bson:"priceRange" json:"priceRange"` // e.g., "$$", "$$$"
	Description string    `bson:"description" json:"description"`
	ImageURL    string    `bson:"imageUrl" json:"imageUrl"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
