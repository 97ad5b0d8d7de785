package dialogue

import (
	"context"
	"fmt"
	"time"

	"tabletalk/models"
	"tabletalk/services/weather"
	"tabletalk/utils"

	"go.uber.org/zap"
)

// ProcessTurn runs one user utterance through the pipeline. Turns within a
// conversation are strictly sequential; the caller does not submit the next
// utterance until this one returns.
func (s *DefaultDialogueService) ProcessTurn(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	logger := utils.GetLogger()

	state := s.loadState(ctx, req.SessionID)

	// A committed conversation is terminal; never run the pipeline again.
	if state.State == models.StateCommitted {
		return &models.ChatResponse{
			Reply:     "Your table is already booked! Is there anything else I can help you with?",
			Intent:    models.IntentConfirmed,
			State:     models.StateCommitted,
			BookingID: state.BookingID,
		}, nil
	}

	// A prior turn passed the gate and fetched the forecast but the insert
	// failed; retry the commit step alone instead of re-running the pipeline.
	if state.PendingSnapshot != nil {
		return s.retryPendingCommit(ctx, req.SessionID, state)
	}

	var pinned *models.Restaurant
	if req.ContextRestaurantID != "" {
		venue, err := s.Restaurants.GetByID(ctx, req.ContextRestaurantID)
		if err != nil {
			logger.Warn("Failed to load pinned restaurant", zap.String("restaurantId", req.ContextRestaurantID), zap.Error(err))
		} else {
			pinned = venue
		}
	}

	catalog, err := s.Restaurants.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load restaurant catalog: %w", err)
	}

	prompt := BuildPrompt(catalog, pinned, req.History, req.Message, time.Now())

	reply, snapshot, intent, err := s.extractWithRetry(ctx, prompt)
	if err != nil {
		// Turn aborted; session state untouched so the user can retry
		// the same utterance.
		return nil, err
	}

	ApplyVenuePin(&snapshot, pinned)

	resp := &models.ChatResponse{
		Reply:          reply,
		BookingDetails: snapshot,
		Intent:         intent,
		State:          models.StateCollecting,
	}

	if intent == models.IntentConfirmed && !IsComplete(snapshot) {
		logger.Warn("Oracle reported confirmed intent on an incomplete snapshot; not committing",
			zap.Strings("missing", MissingSlots(snapshot)))
	}

	if !ShouldCommit(snapshot, intent) {
		s.saveState(ctx, req.SessionID, state)
		return resp, nil
	}

	// Weather augmentation runs only on the committable turn, at most once
	// per conversation, and never blocks the booking on failure.
	var weatherInfo *models.WeatherInfo
	if snapshot.Date != "" && !state.WeatherDiscussed && !WeatherAlreadyDiscussed(req.History) {
		if forecast := s.lookupForecast(ctx, snapshot.Date, req.UserLocation); forecast != nil {
			resp.Reply = ApplyForecast(resp.Reply, snapshot, forecast)
			weatherInfo = &models.WeatherInfo{Condition: forecast.Condition, TempC: forecast.TempC}
			state.WeatherDiscussed = true
		}
	}

	// Flip to COMMITTED before the write so a replayed confirmed turn can
	// never produce a second booking.
	state.State = models.StateCommitted
	s.saveState(ctx, req.SessionID, state)

	booking, err := s.commitSnapshot(ctx, snapshot, req.ContextRestaurantID, weatherInfo)
	if err != nil {
		state.State = models.StateCollecting

		if IsVenueNotResolved(err) {
			s.saveState(ctx, req.SessionID, state)
			logger.Warn("Venue resolution failed at commit", zap.String("restaurantName", snapshot.RestaurantName), zap.Error(err))
			resp.Reply += " I couldn't find that restaurant in our directory. Could you give me its exact name?"
			return resp, nil
		}

		// Park the gated snapshot and forecast so the retry skips the
		// oracle and the weather lookup.
		state.PendingSnapshot = &snapshot
		state.PendingVenueID = req.ContextRestaurantID
		state.WeatherInfo = weatherInfo
		s.saveState(ctx, req.SessionID, state)
		logger.Error("Booking persistence failed", zap.Error(err))
		resp.Reply += " However, I couldn't save your booking just now. Please say \"confirm\" again in a moment to retry."
		return resp, nil
	}

	state.BookingID = booking.ID
	s.saveState(ctx, req.SessionID, state)

	resp.Reply += " Booking confirmed!"
	resp.State = models.StateCommitted
	resp.BookingID = booking.ID
	return resp, nil
}

// retryPendingCommit re-runs only the commit step for a session whose booking
// insert failed, reusing the snapshot and forecast saved on the failed turn.
func (s *DefaultDialogueService) retryPendingCommit(ctx context.Context, sessionID string, state *models.DialogueState) (*models.ChatResponse, error) {
	logger := utils.GetLogger()

	snapshot := *state.PendingSnapshot
	resp := &models.ChatResponse{
		BookingDetails: snapshot,
		Intent:         models.IntentConfirmed,
		State:          models.StateCollecting,
	}

	state.State = models.StateCommitted
	s.saveState(ctx, sessionID, state)

	booking, err := s.commitSnapshot(ctx, snapshot, state.PendingVenueID, state.WeatherInfo)
	if err != nil {
		state.State = models.StateCollecting

		if IsVenueNotResolved(err) {
			// The parked snapshot no longer resolves; drop it so the next
			// turn runs the full pipeline again.
			state.PendingSnapshot = nil
			state.PendingVenueID = ""
			s.saveState(ctx, sessionID, state)
			logger.Warn("Venue resolution failed at commit retry", zap.String("restaurantName", snapshot.RestaurantName), zap.Error(err))
			resp.Reply = "I couldn't find that restaurant in our directory. Could you give me its exact name?"
			return resp, nil
		}

		s.saveState(ctx, sessionID, state)
		logger.Error("Booking persistence failed on retry", zap.Error(err))
		resp.Reply = "I still couldn't save your booking. Please try again in a moment."
		return resp, nil
	}

	state.PendingSnapshot = nil
	state.PendingVenueID = ""
	state.BookingID = booking.ID
	s.saveState(ctx, sessionID, state)

	resp.Reply = "Good news, your table is saved. Booking confirmed!"
	resp.State = models.StateCommitted
	resp.BookingID = booking.ID
	return resp, nil
}

// extractWithRetry calls the oracle and parses its output, retrying once on
// either an unreachable oracle or unparsable output before failing the turn.
func (s *DefaultDialogueService) extractWithRetry(ctx context.Context, prompt string) (string, models.BookingSnapshot, models.DialogueIntent, error) {
	logger := utils.GetLogger()

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		raw, err := s.Oracle.GenerateContent(ctx, prompt)
		if err != nil {
			lastErr = NewExtractionError("oracle unreachable: " + err.Error())
			logger.Warn("Oracle call failed", zap.Int("attempt", attempt+1), zap.Error(err))
			continue
		}
		reply, snapshot, intent, perr := ParseOracleResponse(raw)
		if perr != nil {
			lastErr = perr
			logger.Warn("Oracle response failed extraction", zap.Int("attempt", attempt+1), zap.Error(perr))
			continue
		}
		return reply, snapshot, intent, nil
	}
	return "", models.BookingSnapshot{}, "", lastErr
}

// lookupForecast wraps the weather collaborator; any failure is "no data".
func (s *DefaultDialogueService) lookupForecast(ctx context.Context, date string, loc *models.GeoPoint) *weather.Forecast {
	if s.Weather == nil {
		return nil
	}
	forecast, err := s.Weather.ForecastFor(ctx, date, loc)
	if err != nil {
		utils.GetLogger().Warn("Weather lookup failed; proceeding without forecast", zap.String("date", date), zap.Error(err))
		return nil
	}
	return forecast
}

// Greeting returns the conversation opener.
func (s *DefaultDialogueService) Greeting(ctx context.Context, restaurantID string) (string, error) {
	if restaurantID != "" {
		venue, err := s.Restaurants.GetByID(ctx, restaurantID)
		if err != nil {
			return "", err
		}
		if venue != nil {
			return fmt.Sprintf("Welcome to %s! I can help you book a table here. What time works for you?", venue.Name), nil
		}
	}
	return "Hello! I can help you find a restaurant or book a table. What are you in the mood for?", nil
}

// loadState fetches the session state, degrading to a fresh COLLECTING state
// for anonymous sessions or a briefly unavailable store. The history-based
// guards still hold in the degraded case.
func (s *DefaultDialogueService) loadState(ctx context.Context, sessionID string) *models.DialogueState {
	fresh := &models.DialogueState{State: models.StateCollecting}
	if sessionID == "" || s.States == nil {
		return fresh
	}
	state, err := s.States.Get(ctx, sessionID)
	if err != nil {
		utils.GetLogger().Warn("Failed to load dialogue state; continuing stateless", zap.String("sessionId", sessionID), zap.Error(err))
		return fresh
	}
	return state
}

func (s *DefaultDialogueService) saveState(ctx context.Context, sessionID string, state *models.DialogueState) {
	if sessionID == "" || s.States == nil {
		return
	}
	if err := s.States.Set(ctx, sessionID, state); err != nil {
		utils.GetLogger().Warn("Failed to save dialogue state", zap.String("sessionId", sessionID), zap.Error(err))
	}
}
