package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/trackgoals/trackgoals/internal/logger"
	"github.com/trackgoals/trackgoals/internal/storage"
	"github.com/trackgoals/trackgoals/pkg/tracker"
)

type goalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Progress    int    `json:"progress"`
}

// parseGoalDates accepts full RFC 3339 timestamps or bare calendar dates.
func parseGoalDates(req goalRequest) (start, end time.Time, err error) {
	start, err = parseDateOrTime(req.StartDate)
	if err != nil {
		return
	}
	end, err = parseDateOrTime(req.EndDate)
	return
}

func parseDateOrTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func (s *Server) createGoal(w http.ResponseWriter, r *http.Request) {
	id := identityFromContext(r)

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Title == "" || req.StartDate == "" || req.EndDate == "" {
		writeMessage(w, http.StatusBadRequest, "Title, start date, and end date are required.")
		return
	}
	start, end, err := parseGoalDates(req)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid start or end date.")
		return
	}

	g := tracker.Goal{
		ID:          uuid.NewString(),
		UserID:      id.UserID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		StartDate:   start,
		EndDate:     end,
		Completed:   false,
		Progress:    0,
		CreatedAt:   time.Now(),
	}
	if err := s.store.CreateGoal(id.UserID, g); err != nil {
		logger.Error("Failed to store goal", "user_id", id.UserID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error.")
		return
	}
	logger.Info("Goal created", "user_id", id.UserID, "goal_id", g.ID)
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) listGoals(w http.ResponseWriter, r *http.Request) {
	id := identityFromContext(r)

	goals, err := s.store.ListGoals(id.UserID)
	if err != nil {
		logger.Error("Failed to list goals", "user_id", id.UserID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if goals == nil {
		goals = []tracker.Goal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

func (s *Server) updateGoal(w http.ResponseWriter, r *http.Request) {
	id := identityFromContext(r)
	goalID := chi.URLParam(r, "goal_id")

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Title == "" || req.StartDate == "" || req.EndDate == "" {
		writeMessage(w, http.StatusBadRequest, "Title, start date, and end date are required.")
		return
	}
	start, end, err := parseGoalDates(req)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid start or end date.")
		return
	}

	g, err := s.store.GetGoal(id.UserID, goalID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Goal not found or not yours.")
			return
		}
		logger.Error("Failed to get goal", "user_id", id.UserID, "goal_id", goalID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error.")
		return
	}

	g.Title = strings.TrimSpace(req.Title)
	g.Description = strings.TrimSpace(req.Description)
	g.StartDate = start
	g.EndDate = end
	g.Progress = req.Progress
	g.UpdatedAt = time.Now()

	if err := s.store.UpdateGoal(id.UserID, g); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Goal not found or not yours.")
			return
		}
		logger.Error("Failed to update goal", "user_id", id.UserID, "goal_id", goalID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error.")
		return
	}
	logger.Info("Goal updated", "user_id", id.UserID, "goal_id", goalID)
	writeMessage(w, http.StatusOK, "Goal updated successfully.")
}

func (s *Server) completeGoal(w http.ResponseWriter, r *http.Request) {
	id := identityFromContext(r)
	goalID := chi.URLParam(r, "goal_id")

	err := s.store.SetGoalCompleted(id.UserID, goalID, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Goal not found or not yours.")
			return
		}
		logger.Error("Failed to complete goal", "user_id", id.UserID, "goal_id", goalID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error.")
		return
	}
	logger.Info("Goal completed", "user_id", id.UserID, "goal_id", goalID)
	writeMessage(w, http.StatusOK, "Goal marked as completed.")
}

func (s *Server) deleteGoal(w http.ResponseWriter, r *http.Request) {
	id := identityFromContext(r)
	goalID := chi.URLParam(r, "goal_id")

	err := s.store.DeleteGoal(id.UserID, goalID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Goal not found or not yours.")
			return
		}
		logger.Error("Failed to delete goal", "user_id", id.UserID, "goal_id", goalID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error.")
		return
	}
	logger.Info("Goal deleted", "user_id", id.UserID, "goal_id", goalID)
	writeMessage(w, http.StatusOK, "Goal deleted successfully.")
}
