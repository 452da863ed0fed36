package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/trackgoals/trackgoals/internal/auth"
	"github.com/trackgoals/trackgoals/internal/logger"
)

type identityCtxKey struct{}

// authMiddleware verifies the bearer token and injects the caller identity
// into the request context. It rejects before any handler (and any storage
// access) runs.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			RecordAuthEvent("verification", "missing_token")
			writeMessage(w, http.StatusUnauthorized, "No token provided.")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			logger.Debug("Authorization header without Bearer prefix", "path", r.URL.Path)
			RecordAuthEvent("verification", "malformed_header")
			writeMessage(w, http.StatusUnauthorized, "Invalid token.")
			return
		}

		id, err := s.tokens.Verify(token)
		if err != nil {
			logger.Debug("Token verification failed", "path", r.URL.Path, "error", err)
			RecordAuthEvent("verification", "failed")
			writeMessage(w, http.StatusUnauthorized, "Invalid token.")
			return
		}
		RecordAuthEvent("verification", "success")

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityCtxKey{}, id)))
	})
}

// identityFromContext extracts the verified caller from the request context.
// Handlers behind authMiddleware can rely on a non-empty UserID.
func identityFromContext(r *http.Request) auth.Identity {
	id, ok := r.Context().Value(identityCtxKey{}).(auth.Identity)
	if !ok {
		logger.Error("No identity in context")
		return auth.Identity{}
	}
	return id
}
