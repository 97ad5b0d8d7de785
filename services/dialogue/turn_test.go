package dialogue

import (
	"context"
	"errors"
	"testing"

	"tabletalk/models"
	"tabletalk/services/weather"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmedTurnRequest(sessionID string) models.ChatRequest {
	return models.ChatRequest{
		SessionID: sessionID,
		Message:   "I want Italian tonight for 2 at 7pm, I'm Alex, outdoor, confirm",
	}
}

func TestProcessTurnCommitsConfirmedCompleteSnapshot(t *testing.T) {
	oracle := &stubOracle{results: []oracleResult{
		{raw: oracleJSON("You're all set.", "confirmed", fullDetails())},
	}}
	weatherSvc := &stubWeather{forecast: &weather.Forecast{Condition: "light rain", TempC: 18.4}}
	svc, bookings, _ := newTestService(oracle, weatherSvc)

	resp, err := svc.ProcessTurn(context.Background(), confirmedTurnRequest("sess-a"))
	require.NoError(t, err)

	assert.Equal(t, models.StateCommitted, resp.State)
	assert.Equal(t, models.IntentConfirmed, resp.Intent)
	assert.Contains(t, resp.Reply, "Forecast: light rain, 18°C.")
	assert.Contains(t, resp.Reply, "Booking confirmed!")
	// Seating was stated, so no indoor recommendation despite the rain.
	assert.NotContains(t, resp.Reply, "recommend Indoor")

	require.Equal(t, 1, bookings.createCalls)
	booking := bookings.bookings[0]
	assert.Equal(t, "r1", booking.RestaurantID)
	assert.Equal(t, "Alex", booking.CustomerName)
	assert.Equal(t, 2, booking.NumberOfGuests)
	assert.Equal(t, "19:00", booking.BookingTime)
	assert.Equal(t, "Outdoor", booking.SeatingPreference)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	require.NotNil(t, booking.WeatherInfo)
	assert.Equal(t, "light rain", booking.WeatherInfo.Condition)
}

func TestProcessTurnRefusesConfirmedIncompleteSnapshot(t *testing.T) {
	details := fullDetails()
	delete(details, "guests")
	oracle := &stubOracle{results: []oracleResult{
		{raw: oracleJSON("Booked!", "confirmed", details)},
	}}
	weatherSvc := &stubWeather{forecast: &weather.Forecast{Condition: "clear sky", TempC: 20}}
	svc, bookings, states := newTestService(oracle, weatherSvc)

	resp, err := svc.ProcessTurn(context.Background(), confirmedTurnRequest("sess-b"))
	require.NoError(t, err)

	assert.Equal(t, models.StateCollecting, resp.State)
	assert.Zero(t, bookings.createCalls)
	// Weather runs only on a committable turn.
	assert.Zero(t, weatherSvc.calls)

	state, _ := states.Get(context.Background(), "sess-b")
	assert.Equal(t, models.StateCollecting, state.State)
}

func TestProcessTurnAppliesVenuePin(t *testing.T) {
	details := fullDetails()
	details["restaurantName"] = nil
	oracle := &stubOracle{results: []oracleResult{
		{raw: oracleJSON("Confirming now.", "confirmed", details)},
	}}
	svc, bookings, _ := newTestService(oracle, nil)

	req := confirmedTurnRequest("sess-pin")
	req.ContextRestaurantID = "r1"

	resp, err := svc.ProcessTurn(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Bella Italia", resp.BookingDetails.RestaurantName)
	assert.Equal(t, models.StateCommitted, resp.State)
	require.Equal(t, 1, bookings.createCalls)
	assert.Equal(t, "r1", bookings.bookings[0].RestaurantID)
}

func TestProcessTurnAugmentsWeatherAtMostOnce(t *testing.T) {
	oracle := &stubOracle{results: []oracleResult{
		{raw: oracleJSON("You're all set.", "confirmed", fullDetails())},
	}}
	weatherSvc := &stubWeather{forecast: &weather.Forecast{Condition: "clear sky", TempC: 22}}
	svc, bookings, _ := newTestService(oracle, weatherSvc)
	bookings.failCreate = true

	// First committable turn: forecast applied, but the insert fails so the
	// session returns to collecting.
	resp, err := svc.ProcessTurn(context.Background(), confirmedTurnRequest("sess-w"))
	require.NoError(t, err)
	assert.Contains(t, resp.Reply, "Forecast: clear sky, 22°C.")
	assert.Contains(t, resp.Reply, "retry")
	assert.Equal(t, models.StateCollecting, resp.State)
	assert.Equal(t, 1, weatherSvc.calls)

	// Retry turn: only the commit step re-runs. The oracle and the weather
	// lookup are skipped, and the forecast fetched on the failed turn is
	// persisted on the booking.
	oracleCalls := oracle.calls
	bookings.failCreate = false
	resp, err = svc.ProcessTurn(context.Background(), confirmedTurnRequest("sess-w"))
	require.NoError(t, err)
	assert.Equal(t, models.StateCommitted, resp.State)
	assert.Contains(t, resp.Reply, "Booking confirmed!")
	assert.NotContains(t, resp.Reply, "Forecast:")
	assert.Equal(t, oracleCalls, oracle.calls)
	assert.Equal(t, 1, weatherSvc.calls)
	require.Equal(t, 1, len(bookings.bookings))
	require.NotNil(t, bookings.bookings[0].WeatherInfo)
	assert.Equal(t, "clear sky", bookings.bookings[0].WeatherInfo.Condition)
}

func TestProcessTurnRetryKeepsPendingCommitOnRepeatedFailure(t *testing.T) {
	oracle := &stubOracle{results: []oracleResult{
		{raw: oracleJSON("You're all set.", "confirmed", fullDetails())},
	}}
	svc, bookings, states := newTestService(oracle, nil)
	bookings.failCreate = true

	_, err := svc.ProcessTurn(context.Background(), confirmedTurnRequest("sess-w2"))
	require.NoError(t, err)

	// A second failure keeps the parked snapshot so a third turn can still
	// retry the commit step alone.
	resp, err := svc.ProcessTurn(context.Background(), confirmedTurnRequest("sess-w2"))
	require.NoError(t, err)
	assert.Equal(t, models.StateCollecting, resp.State)
	assert.Contains(t, resp.Reply, "couldn't save your booking")

	state, _ := states.Get(context.Background(), "sess-w2")
	require.NotNil(t, state.PendingSnapshot)
	assert.Equal(t, "Bella Italia", state.PendingSnapshot.RestaurantName)

	bookings.failCreate = false
	resp, err = svc.ProcessTurn(context.Background(), confirmedTurnRequest("sess-w2"))
	require.NoError(t, err)
	assert.Equal(t, models.StateCommitted, resp.State)

	state, _ = states.Get(context.Background(), "sess-w2")
	assert.Nil(t, state.PendingSnapshot)
	assert.Equal(t, resp.BookingID, state.BookingID)
}

func TestProcessTurnSkipsWeatherWhenHistoryMentionsIt(t *testing.T) {
	oracle := &stubOracle{results: []oracleResult{
		{raw: oracleJSON("You're all set.", "confirmed", fullDetails())},
	}}
	weatherSvc := &stubWeather{forecast: &weather.Forecast{Condition: "clear sky", TempC: 22}}
	svc, _, _ := newTestService(oracle, weatherSvc)

	req := confirmedTurnRequest("")
	req.History = []models.ConversationTurn{
		{Sender: models.SenderAgent, Text: "Forecast: clear sky, 22°C."},
	}

	resp, err := svc.ProcessTurn(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.StateCommitted, resp.State)
	assert.Zero(t, weatherSvc.calls)
}

func TestProcessTurnNeverCommitsTwice(t *testing.T) {
	oracle := &stubOracle{results: []oracleResult{
		{raw: oracleJSON("You're all set.", "confirmed", fullDetails())},
	}}
	svc, bookings, _ := newTestService(oracle, nil)

	resp, err := svc.ProcessTurn(context.Background(), confirmedTurnRequest("sess-once"))
	require.NoError(t, err)
	assert.Equal(t, models.StateCommitted, resp.State)
	firstBookingID := resp.BookingID

	// Replaying the confirmed turn short-circuits without touching the
	// oracle or the repository again.
	oracleCalls := oracle.calls
	resp, err = svc.ProcessTurn(context.Background(), confirmedTurnRequest("sess-once"))
	require.NoError(t, err)
	assert.Equal(t, models.StateCommitted, resp.State)
	assert.Equal(t, firstBookingID, resp.BookingID)
	assert.Contains(t, resp.Reply, "already booked")
	assert.Equal(t, oracleCalls, oracle.calls)
	assert.Equal(t, 1, bookings.createCalls)
}

func TestProcessTurnVenueNotResolvedAsksForClarification(t *testing.T) {
	details := fullDetails()
	details["restaurantName"] = "Thai Palace"
	oracle := &stubOracle{results: []oracleResult{
		{raw: oracleJSON("Confirming now.", "confirmed", details)},
	}}
	svc, bookings, states := newTestService(oracle, nil)

	resp, err := svc.ProcessTurn(context.Background(), confirmedTurnRequest("sess-v"))
	require.NoError(t, err)

	assert.Equal(t, models.StateCollecting, resp.State)
	assert.Contains(t, resp.Reply, "couldn't find that restaurant")
	assert.Zero(t, bookings.createCalls)

	state, _ := states.Get(context.Background(), "sess-v")
	assert.Equal(t, models.StateCollecting, state.State)
}

func TestProcessTurnRetriesOracleOnce(t *testing.T) {
	oracle := &stubOracle{results: []oracleResult{
		{err: errors.New("connection reset")},
		{raw: oracleJSON("Hello!", "discovery", map[string]interface{}{})},
	}}
	svc, _, _ := newTestService(oracle, nil)

	resp, err := svc.ProcessTurn(context.Background(), models.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "Hello!", resp.Reply)
	assert.Equal(t, 2, oracle.calls)
}

func TestProcessTurnFailsAfterBoundedRetries(t *testing.T) {
	oracle := &stubOracle{results: []oracleResult{
		{raw: "not json at all"},
	}}
	svc, _, states := newTestService(oracle, nil)

	_, err := svc.ProcessTurn(context.Background(), confirmedTurnRequest("sess-x"))
	require.Error(t, err)
	assert.True(t, IsExtractionFailure(err))
	assert.Equal(t, 2, oracle.calls)

	// The session state is untouched so the user can retry the utterance.
	_, ok := states.states["sess-x"]
	assert.False(t, ok)
}
