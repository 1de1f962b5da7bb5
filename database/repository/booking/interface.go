package bookingRepo

import (
	"context"

	"carebook/config"
	"carebook/database"
	"carebook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository stores confirmed booking records. Records are immutable
// once written; cancellation flips the status field only.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByProviderID(ctx context.Context, providerID string) ([]models.Booking, error)
	Cancel(ctx context.Context, id string) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
