package server

import (
	"net/http"

	"github.com/trackgoals/trackgoals/internal/auth"
	"github.com/trackgoals/trackgoals/internal/config"
	"github.com/trackgoals/trackgoals/internal/storage"
	"github.com/trackgoals/trackgoals/pkg/versioninfo"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	cfg    *config.Config
	store  storage.Store
	tokens *auth.TokenService
}

func New(cfg *config.Config, store storage.Store) *Server {
	return &Server{
		cfg:    cfg,
		store:  store,
		tokens: auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL()),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(metricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Get("/version", s.getVersionInfo)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", s.signup)
		r.Post("/login", s.login)

		// Everything below requires a verified bearer token.
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/me", s.whoAmI)
			r.Get("/dashboard", s.getDashboard)

			r.Route("/habits", func(r chi.Router) {
				r.Post("/", s.createHabit)
				r.Get("/", s.listHabits)
				r.Get("/{habit_id}", s.getHabit)
				r.Patch("/{habit_id}/complete", s.completeHabit)
				r.Delete("/{habit_id}", s.deleteHabit)
			})

			r.Route("/goals", func(r chi.Router) {
				r.Post("/", s.createGoal)
				r.Get("/", s.listGoals)
				r.Put("/{goal_id}", s.updateGoal)
				r.Patch("/{goal_id}/complete", s.completeGoal)
				r.Delete("/{goal_id}", s.deleteGoal)
			})
		})
	})

	return r
}

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	info := versioninfo.VersionInfo{
		Version:   versioninfo.Version,
		BuildDate: versioninfo.BuildDate,
	}
	writeJSON(w, http.StatusOK, info)
}
