package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/trackgoals/trackgoals/internal/logger"
	"github.com/trackgoals/trackgoals/internal/storage"
	"github.com/trackgoals/trackgoals/pkg/tracker"
)

type createHabitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	id := identityFromContext(r)

	var req createHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Name == "" || req.Frequency == "" {
		writeMessage(w, http.StatusBadRequest, "Missing fields.")
		return
	}

	h := tracker.Habit{
		ID:             uuid.NewString(),
		UserID:         id.UserID,
		Name:           req.Name,
		Description:    req.Description,
		Frequency:      req.Frequency,
		CreatedAt:      time.Now(),
		CompletedDates: []time.Time{},
	}
	if err := s.store.CreateHabit(id.UserID, h); err != nil {
		logger.Error("Failed to store habit", "user_id", id.UserID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error.")
		return
	}
	logger.Info("Habit created", "user_id", id.UserID, "habit_id", h.ID)

	s.updateHabitGauge(id.UserID)
	writeJSON(w, http.StatusCreated, h)
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	id := identityFromContext(r)

	habits, err := s.store.ListHabits(id.UserID)
	if err != nil {
		logger.Error("Failed to list habits", "user_id", id.UserID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if habits == nil {
		habits = []tracker.Habit{}
	}
	writeJSON(w, http.StatusOK, habits)
}

func (s *Server) getHabit(w http.ResponseWriter, r *http.Request) {
	id := identityFromContext(r)
	habitID := chi.URLParam(r, "habit_id")

	h, err := s.store.GetHabit(id.UserID, habitID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Habit not found or not yours.")
			return
		}
		logger.Error("Failed to get habit", "user_id", id.UserID, "habit_id", habitID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error.")
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) completeHabit(w http.ResponseWriter, r *http.Request) {
	id := identityFromContext(r)
	habitID := chi.URLParam(r, "habit_id")

	err := s.store.AddHabitCompletion(id.UserID, habitID, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Habit not found or not yours.")
			return
		}
		logger.Error("Failed to add completion", "user_id", id.UserID, "habit_id", habitID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error.")
		return
	}
	logger.Info("Habit completion recorded", "user_id", id.UserID, "habit_id", habitID)
	writeMessage(w, http.StatusOK, "Habit marked as completed.")
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	id := identityFromContext(r)
	habitID := chi.URLParam(r, "habit_id")

	err := s.store.DeleteHabit(id.UserID, habitID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Habit not found or not yours.")
			return
		}
		logger.Error("Failed to delete habit", "user_id", id.UserID, "habit_id", habitID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error.")
		return
	}
	logger.Info("Habit deleted", "user_id", id.UserID, "habit_id", habitID)

	s.updateHabitGauge(id.UserID)
	writeMessage(w, http.StatusOK, "Habit deleted.")
}

func (s *Server) updateHabitGauge(userID string) {
	habits, err := s.store.ListHabits(userID)
	if err != nil {
		logger.Warn("Failed to update active habits metric", "user_id", userID, "error", err)
		return
	}
	UpdateActiveHabitsForUser(userID, len(habits))
}
