package models

// ReminderPayload is the asynq task payload for a table reminder.
type ReminderPayload struct {
	BookingID      string `json:"bookingId"`
	RestaurantName string `json:"restaurantName"`
	CustomerName   string `json:"customerName"`
	FireDate       string `json:"fireDate"`
	Title          string `json:"title"`
	Body           string `json:"body"`
}
