package dialogue

import (
	"fmt"
	"math"
	"strings"

	"tabletalk/models"
	"tabletalk/services/weather"
)

// precipitationIndicators flag forecast conditions that make outdoor seating
// a bad idea.
var precipitationIndicators = []string{"rain", "drizzle", "shower", "storm", "snow"}

// WeatherAlreadyDiscussed reports whether any prior agent turn mentioned the
// forecast. The augmenter runs at most once per conversation.
func WeatherAlreadyDiscussed(history []models.ConversationTurn) bool {
	for _, turn := range history {
		if turn.Sender != models.SenderAgent {
			continue
		}
		text := strings.ToLower(turn.Text)
		if strings.Contains(text, "forecast") || strings.Contains(text, "weather") {
			return true
		}
	}
	return false
}

// ApplyForecast appends the forecast summary to the reply, plus an indoor
// seating recommendation when precipitation is expected and the user has not
// stated a preference. It only advises in text; the seating slot is never
// forced.
func ApplyForecast(reply string, snapshot models.BookingSnapshot, forecast *weather.Forecast) string {
	if forecast == nil {
		return reply
	}
	if strings.Contains(strings.ToLower(reply), "weather") {
		return reply
	}

	reply += fmt.Sprintf(" Forecast: %s, %d°C.", forecast.Condition, int(math.Round(forecast.TempC)))

	if snapshot.Seating == "" && indicatesPrecipitation(forecast.Condition) {
		reply += " Outdoor seating might be wet, I recommend Indoor."
	}
	return reply
}

func indicatesPrecipitation(condition string) bool {
	lower := strings.ToLower(condition)
	for _, indicator := range precipitationIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
