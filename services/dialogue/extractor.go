package dialogue

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"tabletalk/models"
)

// oracleEnvelope is the loose wire shape the oracle is expected to return.
// Everything is optional at this layer; validation happens after decoding.
type oracleEnvelope struct {
	Reply          *string           `json:"reply"`
	BookingDetails oracleBookingWire `json:"bookingDetails"`
	Intent         *string           `json:"intent"`
}

type oracleBookingWire struct {
	RestaurantName  *string     `json:"restaurantName"`
	Name            *string     `json:"name"`
	Date            *string     `json:"date"`
	Time            *string     `json:"time"`
	Guests          interface{} `json:"guests"`
	Seating         *string     `json:"seating"`
	Cuisine         *string     `json:"cuisine"`
	SpecialRequests *string     `json:"specialRequests"`
}

// ParseOracleResponse sanitizes and validates the oracle's raw text into a
// typed turn result. The oracle is untrusted: any structural defect fails the
// turn with an extraction error rather than guessing.
func ParseOracleResponse(raw string) (string, models.BookingSnapshot, models.DialogueIntent, error) {
	var snapshot models.BookingSnapshot

	payload := extractJSON(raw)
	if payload == "" {
		return "", snapshot, "", NewExtractionError("oracle response contains no JSON object")
	}

	var env oracleEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return "", snapshot, "", NewExtractionError("oracle response is not valid JSON: " + err.Error())
	}

	if env.Reply == nil || strings.TrimSpace(*env.Reply) == "" {
		return "", snapshot, "", NewExtractionError("oracle response is missing reply")
	}
	if env.Intent == nil || strings.TrimSpace(*env.Intent) == "" {
		return "", snapshot, "", NewExtractionError("oracle response is missing intent")
	}

	snapshot = models.BookingSnapshot{
		RestaurantName:  deref(env.BookingDetails.RestaurantName),
		CustomerName:    deref(env.BookingDetails.Name),
		Date:            normalizeDate(deref(env.BookingDetails.Date)),
		Time:            deref(env.BookingDetails.Time),
		Guests:          coerceGuests(env.BookingDetails.Guests),
		Seating:         normalizeSeating(deref(env.BookingDetails.Seating)),
		Cuisine:         deref(env.BookingDetails.Cuisine),
		SpecialRequests: deref(env.BookingDetails.SpecialRequests),
	}

	return *env.Reply, snapshot, normalizeIntent(*env.Intent), nil
}

// extractJSON strips code fences and any prose around the first JSON object.
func extractJSON(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return cleaned[start : end+1]
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	v := strings.TrimSpace(*s)
	if strings.EqualFold(v, "null") {
		return ""
	}
	return v
}

// coerceGuests accepts the number, string, or null the oracle may emit for
// the guest count. Anything unusable is absent (0).
func coerceGuests(v interface{}) int {
	switch g := v.(type) {
	case float64:
		return int(g)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(g))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// dateLayouts are the recognizable non-ISO forms the oracle has been seen to
// emit. Anything else is treated as absent rather than guessed at.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	time.RFC3339,
}

// normalizeDate converts a recognizable date string to ISO "YYYY-MM-DD";
// unrecognizable input becomes absent.
func normalizeDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// normalizeSeating maps the oracle's seating value onto the known set.
// Anything else is treated as absent so the gate asks again.
func normalizeSeating(s string) string {
	switch strings.ToLower(s) {
	case "indoor":
		return "Indoor"
	case "outdoor":
		return "Outdoor"
	case "any":
		return "Any"
	default:
		return ""
	}
}

// normalizeIntent maps the oracle's intent tag onto the known set. Unknown
// tags degrade to discovery so a misbehaving oracle can never force a commit.
func normalizeIntent(s string) models.DialogueIntent {
	switch models.DialogueIntent(strings.ToLower(strings.TrimSpace(s))) {
	case models.IntentDiscovery:
		return models.IntentDiscovery
	case models.IntentVenueSelection:
		return models.IntentVenueSelection
	case models.IntentBookingRequest:
		return models.IntentBookingRequest
	case models.IntentConfirmationRequest:
		return models.IntentConfirmationRequest
	case models.IntentConfirmed:
		return models.IntentConfirmed
	default:
		return models.IntentDiscovery
	}
}
