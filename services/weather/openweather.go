package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tabletalk/models"
)

const forecastEndpoint = "https://api.openweathermap.org/data/2.5/forecast"

// OpenWeatherService queries the OpenWeather 5-day/3-hour forecast API.
type OpenWeatherService struct {
	apiKey       string
	fallbackCity string
	baseURL      string
	client       *http.Client
}

// NewOpenWeatherService returns a forecast client. An empty API key is valid;
// every lookup then reports no data.
func NewOpenWeatherService(apiKey, fallbackCity string) *OpenWeatherService {
	return &OpenWeatherService{
		apiKey:       apiKey,
		fallbackCity: fallbackCity,
		baseURL:      forecastEndpoint,
		// The weather lookup must never stall a booking confirmation.
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// forecastResponse mirrors the slice of the OpenWeather payload we read.
type forecastResponse struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// ForecastFor returns the first forecast slot matching the given date, or
// (nil, nil) when the provider has no data for it.
func (s *OpenWeatherService) ForecastFor(ctx context.Context, date string, loc *models.GeoPoint) (*Forecast, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	q := url.Values{}
	if loc != nil && (loc.Lat != 0 || loc.Lon != 0) {
		q.Set("lat", fmt.Sprintf("%f", loc.Lat))
		q.Set("lon", fmt.Sprintf("%f", loc.Lon))
	} else {
		q.Set("q", s.fallbackCity)
	}
	q.Set("appid", s.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openweather returned status %d", resp.StatusCode)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	for _, item := range payload.List {
		if strings.Contains(item.DtTxt, date) {
			condition := ""
			if len(item.Weather) > 0 {
				condition = item.Weather[0].Description
			}
			return &Forecast{Condition: condition, TempC: item.Main.Temp}, nil
		}
	}
	return nil, nil
}
