package weather

import (
	"context"

	"tabletalk/models"
)

// Forecast is the condition for a single forecast slot.
type Forecast struct {
	Condition string  `json:"condition"`
	TempC     float64 `json:"temp"`
}

// WeatherService looks up the forecast for a calendar date. It is strictly
// best-effort: callers treat any error the same as "no forecast available".
type WeatherService interface {
	ForecastFor(ctx context.Context, date string, loc *models.GeoPoint) (*Forecast, error)
}
