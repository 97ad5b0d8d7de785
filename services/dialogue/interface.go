package dialogue

import (
	"context"

	bookingRepo "tabletalk/database/repository/booking"
	restaurantRepo "tabletalk/database/repository/restaurant"
	"tabletalk/models"
	"tabletalk/services/weather"
)

// DialogueService routes a free-form conversation into a completed
// reservation.
type DialogueService interface {
	// ProcessTurn runs one user utterance through the full pipeline:
	// prompt assembly, extraction, the completeness gate, and (on a
	// confirmed, complete snapshot) weather augmentation and the commit.
	ProcessTurn(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
	// CreateBooking persists a reservation from an explicit payload,
	// resolving the venue by ID or fuzzy name.
	CreateBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error)
	// Greeting returns the conversation opener, venue-specific when a
	// restaurant is pinned.
	Greeting(ctx context.Context, restaurantID string) (string, error)
}

// ReminderScheduler enqueues a table reminder for a confirmed booking.
// Scheduling failures never fail a commit.
type ReminderScheduler interface {
	ScheduleTableReminder(ctx context.Context, booking models.Booking, restaurantName string) error
}

// DefaultDialogueService is the production wiring of the engine. All
// collaborators are interfaces so tests can stub the oracle, the weather
// lookup, the state store, and the repositories.
type DefaultDialogueService struct {
	Oracle      Oracle
	Weather     weather.WeatherService
	States      StateStore
	Restaurants restaurantRepo.RestaurantRepository
	Bookings    bookingRepo.BookingRepository
	Reminders   ReminderScheduler // optional
}
