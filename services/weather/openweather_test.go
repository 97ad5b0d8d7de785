package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tabletalk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
	"list": [
		{"dt_txt": "2026-09-04 21:00:00", "main": {"temp": 19.1}, "weather": [{"description": "few clouds"}]},
		{"dt_txt": "2026-09-05 18:00:00", "main": {"temp": 21.6}, "weather": [{"description": "light rain"}]},
		{"dt_txt": "2026-09-05 21:00:00", "main": {"temp": 20.2}, "weather": [{"description": "clear sky"}]}
	]
}`

func newTestWeatherService(t *testing.T, handler http.HandlerFunc) *OpenWeatherService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewOpenWeatherService("test-key", "New York")
	svc.baseURL = server.URL
	return svc
}

func TestForecastForMatchesDateSlot(t *testing.T) {
	svc := newTestWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(samplePayload))
	})

	forecast, err := svc.ForecastFor(context.Background(), "2026-09-05", nil)
	require.NoError(t, err)
	require.NotNil(t, forecast)
	assert.Equal(t, "light rain", forecast.Condition)
	assert.Equal(t, 21.6, forecast.TempC)
}

func TestForecastForUsesCoordinatesWhenProvided(t *testing.T) {
	svc := newTestWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.URL.Query().Get("lon"))
		assert.Empty(t, r.URL.Query().Get("q"))
		w.Write([]byte(samplePayload))
	})

	_, err := svc.ForecastFor(context.Background(), "2026-09-05", &models.GeoPoint{Lat: 40.7, Lon: -74.0})
	require.NoError(t, err)
}

func TestForecastForFallsBackToCity(t *testing.T) {
	svc := newTestWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "New York", r.URL.Query().Get("q"))
		w.Write([]byte(samplePayload))
	})

	_, err := svc.ForecastFor(context.Background(), "2026-09-05", nil)
	require.NoError(t, err)
}

func TestForecastForNoMatchingDateReturnsNoData(t *testing.T) {
	svc := newTestWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePayload))
	})

	forecast, err := svc.ForecastFor(context.Background(), "2026-09-09", nil)
	require.NoError(t, err)
	assert.Nil(t, forecast)
}

func TestForecastForMissingAPIKeyReturnsNoData(t *testing.T) {
	svc := NewOpenWeatherService("", "New York")

	forecast, err := svc.ForecastFor(context.Background(), "2026-09-05", nil)
	require.NoError(t, err)
	assert.Nil(t, forecast)
}

func TestForecastForUpstreamErrorSurfaces(t *testing.T) {
	svc := newTestWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := svc.ForecastFor(context.Background(), "2026-09-05", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
