package dialogue

import (
	"tabletalk/models"
)

// ApplyVenuePin fills the restaurant name from the pinned venue when the
// oracle came back without one. The pin is ground truth from prior
// navigation; the oracle does not need to re-derive it.
func ApplyVenuePin(snapshot *models.BookingSnapshot, pinned *models.Restaurant) {
	if pinned != nil && snapshot.RestaurantName == "" {
		snapshot.RestaurantName = pinned.Name
	}
}

// IsComplete reports whether every required slot is present. The required
// set is fixed: restaurant, customer name, date, time, guests, seating.
func IsComplete(snapshot models.BookingSnapshot) bool {
	return len(MissingSlots(snapshot)) == 0
}

// MissingSlots lists the required slots absent from the snapshot.
func MissingSlots(snapshot models.BookingSnapshot) []string {
	var missing []string
	if snapshot.RestaurantName == "" {
		missing = append(missing, "restaurantName")
	}
	if snapshot.CustomerName == "" {
		missing = append(missing, "customerName")
	}
	if snapshot.Date == "" {
		missing = append(missing, "date")
	}
	if snapshot.Time == "" {
		missing = append(missing, "time")
	}
	if snapshot.Guests <= 0 {
		missing = append(missing, "guests")
	}
	if snapshot.Seating == "" {
		missing = append(missing, "seating")
	}
	return missing
}

// ShouldCommit is the transition rule: commit if and only if the oracle says
// confirmed AND the snapshot is structurally complete at this exact turn.
// The oracle's stated intent never overrides structural validation.
func ShouldCommit(snapshot models.BookingSnapshot, intent models.DialogueIntent) bool {
	return intent == models.IntentConfirmed && IsComplete(snapshot)
}
