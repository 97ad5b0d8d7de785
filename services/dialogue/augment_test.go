package dialogue

import (
	"testing"

	"tabletalk/models"
	"tabletalk/services/weather"

	"github.com/stretchr/testify/assert"
)

func TestWeatherAlreadyDiscussed(t *testing.T) {
	assert.False(t, WeatherAlreadyDiscussed(nil))

	history := []models.ConversationTurn{
		{Sender: models.SenderUser, Text: "What's the weather like?"},
	}
	// Only agent turns count: the user asking about weather does not mean
	// the engine has answered.
	assert.False(t, WeatherAlreadyDiscussed(history))

	history = append(history, models.ConversationTurn{
		Sender: models.SenderAgent,
		Text:   "Forecast: clear sky, 22°C.",
	})
	assert.True(t, WeatherAlreadyDiscussed(history))
}

func TestApplyForecastAppendsSummary(t *testing.T) {
	snapshot := completeSnapshot()
	forecast := &weather.Forecast{Condition: "clear sky", TempC: 21.6}

	reply := ApplyForecast("Table confirmed.", snapshot, forecast)
	assert.Equal(t, "Table confirmed. Forecast: clear sky, 22°C.", reply)
}

func TestApplyForecastSkipsWhenReplyMentionsWeather(t *testing.T) {
	reply := ApplyForecast("The weather looks great for Friday.", completeSnapshot(), &weather.Forecast{Condition: "clear sky", TempC: 20})
	assert.Equal(t, "The weather looks great for Friday.", reply)
}

func TestApplyForecastNilForecastIsNoop(t *testing.T) {
	assert.Equal(t, "Hello.", ApplyForecast("Hello.", completeSnapshot(), nil))
}

func TestApplyForecastRecommendsIndoorOnRainWithoutSeating(t *testing.T) {
	snapshot := completeSnapshot()
	snapshot.Seating = ""
	forecast := &weather.Forecast{Condition: "light rain", TempC: 17.2}

	reply := ApplyForecast("Almost done.", snapshot, forecast)
	assert.Contains(t, reply, "Forecast: light rain, 17°C.")
	assert.Contains(t, reply, "I recommend Indoor")
}

func TestApplyForecastNeverOverridesStatedSeating(t *testing.T) {
	snapshot := completeSnapshot()
	snapshot.Seating = "Outdoor"
	forecast := &weather.Forecast{Condition: "heavy rain", TempC: 15}

	reply := ApplyForecast("Almost done.", snapshot, forecast)
	assert.Contains(t, reply, "Forecast: heavy rain, 15°C.")
	assert.NotContains(t, reply, "recommend Indoor")
}

func TestIndicatesPrecipitation(t *testing.T) {
	for _, cond := range []string{"light rain", "Drizzle", "scattered showers", "thunderstorm", "snow"} {
		assert.True(t, indicatesPrecipitation(cond), cond)
	}
	for _, cond := range []string{"clear sky", "few clouds", "haze"} {
		assert.False(t, indicatesPrecipitation(cond), cond)
	}
}
