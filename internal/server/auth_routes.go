package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/trackgoals/trackgoals/internal/auth"
	"github.com/trackgoals/trackgoals/internal/logger"
	"github.com/trackgoals/trackgoals/internal/storage"
	"github.com/trackgoals/trackgoals/pkg/tracker"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error.")
		return
	}

	u := tracker.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreateUser(u); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			writeMessage(w, http.StatusConflict, "Email already in use.")
			return
		}
		logger.Error("Failed to create user", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error.")
		return
	}

	logger.Info("User created", "user_id", u.ID)
	writeMessage(w, http.StatusCreated, "User created successfully.")
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	u, err := s.store.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			RecordAuthEvent("login", "unknown_email")
			writeMessage(w, http.StatusNotFound, "User not found.")
			return
		}
		logger.Error("Failed to look up user", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error.")
		return
	}

	if err := auth.CheckPassword(req.Password, u.PasswordHash); err != nil {
		RecordAuthEvent("login", "bad_password")
		writeMessage(w, http.StatusUnauthorized, "Invalid password.")
		return
	}

	token, err := s.tokens.Sign(u.ID, u.Email)
	if err != nil {
		logger.Error("Failed to sign token", "user_id", u.ID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error.")
		return
	}

	RecordAuthEvent("login", "success")
	writeJSON(w, http.StatusOK, tokenResponse{Message: "Login successful.", Token: token})
}

// whoAmI echoes the verified token identity.
func (s *Server) whoAmI(w http.ResponseWriter, r *http.Request) {
	id := identityFromContext(r)
	writeJSON(w, http.StatusOK, map[string]string{
		"userId": id.UserID,
		"email":  id.Email,
	})
}
