package bookingRepo

import (
	"context"

	"tabletalk/database"
	"tabletalk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository stores confirmed reservations.
type BookingRepository interface {
	Create(ctx context.Context, booking models.Booking) (string, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetAll(ctx context.Context) ([]models.Booking, error)
	DeleteByID(ctx context.Context, id string) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a new BookingRepository instance using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("tabletalk")
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
