package dialogue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tabletalk/models"
	"tabletalk/services/weather"
)

// --- oracle stub ---

type oracleResult struct {
	raw string
	err error
}

type stubOracle struct {
	results []oracleResult
	calls   int
}

func (o *stubOracle) GenerateContent(ctx context.Context, prompt string) (string, error) {
	idx := o.calls
	if idx >= len(o.results) {
		idx = len(o.results) - 1
	}
	o.calls++
	r := o.results[idx]
	return r.raw, r.err
}

// oracleJSON builds a well-formed oracle payload.
func oracleJSON(reply, intent string, details map[string]interface{}) string {
	payload := map[string]interface{}{
		"reply":          reply,
		"bookingDetails": details,
		"intent":         intent,
	}
	b, _ := json.Marshal(payload)
	return string(b)
}

// --- weather stub ---

type stubWeather struct {
	forecast *weather.Forecast
	err      error
	calls    int
}

func (w *stubWeather) ForecastFor(ctx context.Context, date string, loc *models.GeoPoint) (*weather.Forecast, error) {
	w.calls++
	return w.forecast, w.err
}

// --- state store stub ---

type memStateStore struct {
	states map[string]models.DialogueState
}

func newMemStateStore() *memStateStore {
	return &memStateStore{states: make(map[string]models.DialogueState)}
}

func (s *memStateStore) Get(ctx context.Context, sessionID string) (*models.DialogueState, error) {
	if state, ok := s.states[sessionID]; ok {
		copied := state
		return &copied, nil
	}
	return &models.DialogueState{State: models.StateCollecting}, nil
}

func (s *memStateStore) Set(ctx context.Context, sessionID string, state *models.DialogueState) error {
	s.states[sessionID] = *state
	return nil
}

func (s *memStateStore) Clear(ctx context.Context, sessionID string) error {
	delete(s.states, sessionID)
	return nil
}

// --- repository stubs ---

type stubRestaurantRepo struct {
	restaurants []models.Restaurant
}

func (r *stubRestaurantRepo) GetAll(ctx context.Context) ([]models.Restaurant, error) {
	return r.restaurants, nil
}

func (r *stubRestaurantRepo) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	for _, rest := range r.restaurants {
		if rest.ID == id {
			copied := rest
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *stubRestaurantRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.restaurants)), nil
}

func (r *stubRestaurantRepo) DeleteAll(ctx context.Context) error {
	r.restaurants = nil
	return nil
}

func (r *stubRestaurantRepo) InsertMany(ctx context.Context, restaurants []models.Restaurant) error {
	r.restaurants = append(r.restaurants, restaurants...)
	return nil
}

type stubBookingRepo struct {
	bookings    []models.Booking
	createCalls int
	failCreate  bool
}

func (r *stubBookingRepo) Create(ctx context.Context, booking models.Booking) (string, error) {
	r.createCalls++
	if r.failCreate {
		return "", errors.New("insert failed")
	}
	booking.ID = fmt.Sprintf("bk-%d", r.createCalls)
	r.bookings = append(r.bookings, booking)
	return booking.ID, nil
}

func (r *stubBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			copied := b
			return &copied, nil
		}
	}
	return nil, errors.New("booking not found")
}

func (r *stubBookingRepo) GetAll(ctx context.Context) ([]models.Booking, error) {
	return r.bookings, nil
}

func (r *stubBookingRepo) DeleteByID(ctx context.Context, id string) error {
	for i, b := range r.bookings {
		if b.ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return errors.New("booking not found")
}

// --- fixtures ---

func testCatalog() []models.Restaurant {
	return []models.Restaurant{
		{ID: "r1", Name: "Bella Italia", Cuisine: "Italian", Rating: 4.8, PriceRange: "$$$"},
		{ID: "r2", Name: "Spice Route", Cuisine: "Indian", Rating: 4.6, PriceRange: "$$"},
		{ID: "r3", Name: "Sushi Zen", Cuisine: "Japanese", Rating: 4.9, PriceRange: "$$$$"},
		{ID: "r4", Name: "The Burger Joint", Cuisine: "American", Rating: 4.4, PriceRange: "$"},
		{ID: "r5", Name: "El Camino", Cuisine: "Mexican", Rating: 4.7, PriceRange: "$$"},
	}
}

func newTestService(oracle *stubOracle, weatherSvc *stubWeather) (*DefaultDialogueService, *stubBookingRepo, *memStateStore) {
	bookings := &stubBookingRepo{}
	states := newMemStateStore()
	svc := &DefaultDialogueService{
		Oracle:      oracle,
		States:      states,
		Restaurants: &stubRestaurantRepo{restaurants: testCatalog()},
		Bookings:    bookings,
	}
	if weatherSvc != nil {
		svc.Weather = weatherSvc
	}
	return svc, bookings, states
}

func fullDetails() map[string]interface{} {
	return map[string]interface{}{
		"restaurantName": "Bella Italia",
		"name":           "Alex",
		"date":           "2026-09-05",
		"time":           "19:00",
		"guests":         2,
		"seating":        "Outdoor",
	}
}
