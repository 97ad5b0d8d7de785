package models

// Conversation turn senders, as the client labels them.
const (
	SenderUser  = "user"
	SenderAgent = "bot"
)

// ConversationTurn is a single utterance. Turns are append-only; order is
// the only meaning they carry.
type ConversationTurn struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// DialogueIntent is the oracle's reading of where the conversation stands.
type DialogueIntent string

const (
	IntentDiscovery           DialogueIntent = "discovery"
	IntentVenueSelection      DialogueIntent = "venue_selection"
	IntentBookingRequest      DialogueIntent = "booking_request"
	IntentConfirmationRequest DialogueIntent = "confirmation_request"
	IntentConfirmed           DialogueIntent = "confirmed"
)

// BookingSnapshot is the structured booking intent extracted from the
// conversation at one turn. It is a value, not an accumulator: each turn's
// snapshot fully supersedes the previous one. Empty string / zero means the
// slot is absent.
type BookingSnapshot struct {
	RestaurantName  string `json:"restaurantName"`
	CustomerName    string `json:"name"`
	Date            string `json:"date"` // ISO "YYYY-MM-DD" once normalized
	Time            string `json:"time"`
	Guests          int    `json:"guests"`
	Seating         string `json:"seating"`
	Cuisine         string `json:"cuisine,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// Dialogue session states. COMMITTED and ABORTED are terminal.
const (
	StateCollecting = "collecting"
	StateCommitted  = "committed"
	StateAborted    = "aborted"
)

// DialogueState is the per-session context persisted between turns. It exists
// to make the commit and the weather augmentation happen at most once even if
// the client replays history.
type DialogueState struct {
	State            string `json:"state"`
	WeatherDiscussed bool   `json:"weatherDiscussed"`
	BookingID        string `json:"bookingId,omitempty"`

	// Set when the booking insert failed after the snapshot passed the gate:
	// the next turn retries the commit step alone, reusing the forecast
	// fetched on the failed turn.
	PendingSnapshot *BookingSnapshot `json:"pendingSnapshot,omitempty"`
	PendingVenueID  string           `json:"pendingVenueId,omitempty"`
	WeatherInfo     *WeatherInfo     `json:"weatherInfo,omitempty"`
}

// GeoPoint is the user's coordinates for the weather lookup.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ChatRequest is the per-turn payload from the presentation layer.
type ChatRequest struct {
	SessionID           string             `json:"sessionId"`
	Message             string             `json:"message"`
	History             []ConversationTurn `json:"history"`
	UserLocation        *GeoPoint          `json:"userLocation,omitempty"`
	ContextRestaurantID string             `json:"contextRestaurantId,omitempty"`
}

// ChatResponse is the per-turn reply.
type ChatResponse struct {
	Reply          string          `json:"reply"`
	BookingDetails BookingSnapshot `json:"bookingDetails"`
	Intent         DialogueIntent  `json:"intent"`
	State          string          `json:"state"`
	BookingID      string          `json:"bookingId,omitempty"`
}
