package restaurantRepo

import (
	"context"

	"tabletalk/database"
	"tabletalk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// RestaurantRepository provides read access to the venue catalog. The catalog
// is reference data from the dialogue engine's perspective; writes exist only
// for seeding.
type RestaurantRepository interface {
	GetAll(ctx context.Context) ([]models.Restaurant, error)
	GetByID(ctx context.Context, id string) (*models.Restaurant, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
	InsertMany(ctx context.Context, restaurants []models.Restaurant) error
}

type mongoRestaurantRepo struct {
	coll *mongo.Collection
}

// NewMongoRestaurantRepo returns a new RestaurantRepository instance using MongoDB.
func NewMongoRestaurantRepo() RestaurantRepository {
	db := database.MongoClient.Database("tabletalk")
	return &mongoRestaurantRepo{
		coll: db.Collection("restaurants"),
	}
}
