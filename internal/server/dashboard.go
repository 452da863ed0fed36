package server

import (
	"net/http"
	"time"

	"github.com/trackgoals/trackgoals/internal/logger"
	"github.com/trackgoals/trackgoals/pkg/tracker"
)

// getDashboard computes the summary for the caller over an optional date
// window. Calendar-day boundaries use the server's local time zone, which may
// differ from the client's.
func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	id := identityFromContext(r)
	loc := time.Local
	now := time.Now()

	// Either bound may be omitted; the default window is the last 7 days
	// inclusive. Malformed dates are rejected rather than walked.
	start := truncateToDay(now.AddDate(0, 0, -6), loc)
	end := truncateToDay(now, loc)
	if v := r.URL.Query().Get("startDate"); v != "" {
		parsed, err := time.ParseInLocation(dayFormat, v, loc)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid startDate, expected YYYY-MM-DD.")
			return
		}
		start = parsed
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		parsed, err := time.ParseInLocation(dayFormat, v, loc)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid endDate, expected YYYY-MM-DD.")
			return
		}
		end = parsed
	}

	// The two reads are independent; issue them concurrently.
	type goalsResult struct {
		goals []tracker.Goal
		err   error
	}
	goalsCh := make(chan goalsResult, 1)
	go func() {
		goals, err := s.store.ListGoals(id.UserID)
		goalsCh <- goalsResult{goals, err}
	}()

	habits, habitsErr := s.store.ListHabits(id.UserID)
	goals := <-goalsCh

	if habitsErr != nil {
		logger.Error("Failed to list habits for dashboard", "user_id", id.UserID, "error", habitsErr)
		writeMessage(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if goals.err != nil {
		logger.Error("Failed to list goals for dashboard", "user_id", id.UserID, "error", goals.err)
		writeMessage(w, http.StatusInternalServerError, "Server error.")
		return
	}

	summary := buildDashboard(habits, goals.goals, start, end, now, loc)
	writeJSON(w, http.StatusOK, summary)
}
