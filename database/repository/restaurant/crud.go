package restaurantRepo

import (
	"context"

	"tabletalk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetAll returns every restaurant in the catalog.
func (r *mongoRestaurantRepo) GetAll(ctx context.Context) ([]models.Restaurant, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var restaurants []models.Restaurant
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// GetByID returns a restaurant by its ID, or nil if it does not exist.
func (r *mongoRestaurantRepo) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&restaurant)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// Count returns the number of restaurants in the catalog.
func (r *mongoRestaurantRepo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

// DeleteAll clears the catalog. Used only by the seeder.
func (r *mongoRestaurantRepo) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}

// InsertMany inserts catalog entries, assigning IDs where missing.
func (r *mongoRestaurantRepo) InsertMany(ctx context.Context, restaurants []models.Restaurant) error {
	docs := make([]interface{}, 0, len(restaurants))
	for i := range restaurants {
		if restaurants[i].ID == "" {
			restaurants[i].ID = uuid.New().String()
		}
		docs = append(docs, restaurants[i])
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}
