package dialogue

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tabletalk/models"
	"tabletalk/utils"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"
)

// maxNameDistance is the edit-distance ceiling for fuzzy venue matching.
// "Bell Italia" resolves to "Bella Italia" at distance 1; distance 3 does not
// resolve.
const maxNameDistance = 2

// Commit-time defaults for optional slots. Required slots are validated by
// the gate before commit; defaulting them here is defense-in-depth against a
// gate/oracle disagreement and is logged as a fallback event.
const (
	defaultCuisine         = "Any"
	defaultSpecialRequests = "None"
	defaultGuests          = 2
	defaultTime            = "19:00"
)

// ResolveVenueByName matches a spoken venue name against the catalog:
// case-insensitive substring first, then Levenshtein distance up to
// maxNameDistance. Ties break on highest rating, then lexicographically
// smallest name, so resolution is deterministic. Returns nil when nothing
// matches.
func ResolveVenueByName(name string, catalog []models.Restaurant) *models.Restaurant {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}

	var candidates []models.Restaurant
	for _, r := range catalog {
		haystack := strings.ToLower(r.Name)
		if strings.Contains(haystack, needle) || strings.Contains(needle, haystack) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		for _, r := range catalog {
			if levenshtein.ComputeDistance(needle, strings.ToLower(r.Name)) <= maxNameDistance {
				candidates = append(candidates, r)
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Rating != candidates[j].Rating {
			return candidates[i].Rating > candidates[j].Rating
		}
		return candidates[i].Name < candidates[j].Name
	})
	return &candidates[0]
}

// resolveVenue picks the booking target: a pinned venue ID wins outright,
// otherwise the name is fuzzy-matched against the catalog.
func (s *DefaultDialogueService) resolveVenue(ctx context.Context, pinnedID, name string) (*models.Restaurant, error) {
	if pinnedID != "" {
		venue, err := s.Restaurants.GetByID(ctx, pinnedID)
		if err != nil {
			return nil, err
		}
		if venue != nil {
			return venue, nil
		}
	}

	if strings.TrimSpace(name) == "" {
		return nil, NewVenueNotResolvedError("no restaurant identified")
	}

	catalog, err := s.Restaurants.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	venue := ResolveVenueByName(name, catalog)
	if venue == nil {
		return nil, NewVenueNotResolvedError(fmt.Sprintf("no restaurant matches %q", name))
	}
	return venue, nil
}

// bookingFromSnapshot maps a gated snapshot onto a persistable booking,
// applying the documented defaults for optional slots.
func bookingFromSnapshot(snapshot models.BookingSnapshot, venueID string, weatherInfo *models.WeatherInfo) models.Booking {
	logger := utils.GetLogger()

	booking := models.Booking{
		RestaurantID:      venueID,
		CustomerName:      snapshot.CustomerName,
		NumberOfGuests:    snapshot.Guests,
		BookingDate:       snapshot.Date,
		BookingTime:       snapshot.Time,
		CuisinePreference: snapshot.Cuisine,
		SpecialRequests:   snapshot.SpecialRequests,
		SeatingPreference: snapshot.Seating,
		Status:            models.BookingStatusConfirmed,
		WeatherInfo:       weatherInfo,
	}
	if booking.CuisinePreference == "" {
		booking.CuisinePreference = defaultCuisine
	}
	if booking.SpecialRequests == "" {
		booking.SpecialRequests = defaultSpecialRequests
	}
	if booking.NumberOfGuests <= 0 {
		logger.Warn("Commit fallback: guest count absent past the gate", zap.Int("default", defaultGuests))
		booking.NumberOfGuests = defaultGuests
	}
	if booking.BookingTime == "" {
		logger.Warn("Commit fallback: booking time absent past the gate", zap.String("default", defaultTime))
		booking.BookingTime = defaultTime
	}
	if booking.SeatingPreference == "" {
		booking.SeatingPreference = "Any"
	}
	return booking
}

// commitSnapshot persists the booking for a confirmed, complete snapshot and
// schedules the table reminder. Exactly one write; the caller guards against
// re-entry through the session state.
func (s *DefaultDialogueService) commitSnapshot(ctx context.Context, snapshot models.BookingSnapshot, pinnedID string, weatherInfo *models.WeatherInfo) (*models.Booking, error) {
	logger := utils.GetLogger()

	venue, err := s.resolveVenue(ctx, pinnedID, snapshot.RestaurantName)
	if err != nil {
		return nil, err
	}

	booking := bookingFromSnapshot(snapshot, venue.ID, weatherInfo)
	id, err := s.Bookings.Create(ctx, booking)
	if err != nil {
		return nil, NewPersistenceError("failed to save booking: " + err.Error())
	}
	booking.ID = id

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleTableReminder(ctx, booking, venue.Name); err != nil {
			logger.Warn("Failed to schedule table reminder", zap.String("bookingId", id), zap.Error(err))
		}
	}

	logger.Info("Booking committed",
		zap.String("bookingId", id),
		zap.String("restaurant", venue.Name),
		zap.String("date", booking.BookingDate),
		zap.String("time", booking.BookingTime),
		zap.Int("guests", booking.NumberOfGuests),
	)
	return &booking, nil
}

// CreateBooking persists a reservation from an explicit payload. Used by the
// direct booking endpoint; clients that keep the venue pin on their side call
// this with a restaurantId, voice clients with only a name.
func (s *DefaultDialogueService) CreateBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error) {
	venue, err := s.resolveVenue(ctx, input.RestaurantID, input.RestaurantName)
	if err != nil {
		return nil, err
	}

	booking := models.Booking{
		RestaurantID:      venue.ID,
		CustomerName:      input.CustomerName,
		NumberOfGuests:    input.NumberOfGuests,
		BookingDate:       input.BookingDate,
		BookingTime:       input.BookingTime,
		CuisinePreference: input.CuisinePreference,
		SpecialRequests:   input.SpecialRequests,
		SeatingPreference: input.SeatingPreference,
		Status:            input.Status,
		WeatherInfo:       input.WeatherInfo,
	}
	if booking.CuisinePreference == "" {
		booking.CuisinePreference = defaultCuisine
	}
	if booking.SpecialRequests == "" {
		booking.SpecialRequests = defaultSpecialRequests
	}
	if booking.NumberOfGuests <= 0 {
		booking.NumberOfGuests = defaultGuests
	}
	if booking.BookingTime == "" {
		booking.BookingTime = defaultTime
	}
	if booking.SeatingPreference == "" {
		booking.SeatingPreference = "Any"
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}

	id, err := s.Bookings.Create(ctx, booking)
	if err != nil {
		return nil, NewPersistenceError("failed to save booking: " + err.Error())
	}
	booking.ID = id

	if s.Reminders != nil && booking.Status == models.BookingStatusConfirmed {
		if err := s.Reminders.ScheduleTableReminder(ctx, booking, venue.Name); err != nil {
			utils.GetLogger().Warn("Failed to schedule table reminder", zap.String("bookingId", id), zap.Error(err))
		}
	}
	return &booking, nil
}
