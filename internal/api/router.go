// Package api exposes the journal, streak and footprint services over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/auth"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/metrics"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/middleware"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/services"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/tts"
)

// Deps is everything the router wires. Metrics, Limiter, MetricsHandler,
// Speech and Live are optional.
type Deps struct {
	Users      *services.UserService
	Journal    *services.JournalService
	Streaks    *services.StreakService
	Footprints *services.FootprintService
	Sessions   *auth.Manager

	Speech         tts.Synthesizer
	Live           http.Handler
	Metrics        *metrics.Metrics
	Limiter        *middleware.RateLimiter
	MetricsHandler http.Handler
}

func NewRouter(d Deps) *mux.Router {
	r := mux.NewRouter()
	if d.Metrics != nil {
		r.Use(middleware.Monitor(d.Metrics))
	}

	r.HandleFunc("/health", health).Methods(http.MethodGet)
	if d.MetricsHandler != nil {
		r.Handle("/metrics", d.MetricsHandler).Methods(http.MethodGet)
	}

	authHandler := NewAuthHandler(d.Users, d.Sessions)

	limited := func(h http.HandlerFunc) http.Handler {
		if d.Limiter == nil {
			return h
		}
		return d.Limiter.Middleware(h)
	}
	r.Handle("/register", limited(authHandler.Register)).Methods(http.MethodPost)
	r.Handle("/login", limited(authHandler.Login)).Methods(http.MethodPost)
	r.Handle("/logout", limited(authHandler.Logout)).Methods(http.MethodPost)

	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(d.Sessions.Middleware)
	if d.Limiter != nil {
		apiRouter.Use(d.Limiter.Middleware)
	}

	jh := NewJournalHandler(d.Journal, d.Speech)
	apiRouter.HandleFunc("/journal/entries", jh.CreateEntry).Methods(http.MethodPost)
	apiRouter.HandleFunc("/journal/entries", jh.ListEntries).Methods(http.MethodGet)
	apiRouter.HandleFunc("/journal/entries/{id}", jh.GetEntry).Methods(http.MethodGet)
	apiRouter.HandleFunc("/journal/entries/{id}/inspiration/audio", jh.InspirationAudio).Methods(http.MethodGet)
	apiRouter.HandleFunc("/journal/dashboard", jh.Dashboard).Methods(http.MethodGet)
	apiRouter.HandleFunc("/journal/inspiration/{mood}", jh.MoodInspiration).Methods(http.MethodGet)

	sh := NewStreakHandler(d.Streaks)
	apiRouter.HandleFunc("/streak", sh.Status).Methods(http.MethodGet)
	apiRouter.HandleFunc("/streak/freeze", sh.Freeze).Methods(http.MethodPost)
	apiRouter.HandleFunc("/streak/analytics", sh.Analytics).Methods(http.MethodGet)
	apiRouter.HandleFunc("/achievements", sh.Achievements).Methods(http.MethodGet)

	fh := NewFootprintHandler(d.Footprints)
	apiRouter.HandleFunc("/footprint/calculate", fh.Calculate).Methods(http.MethodPost)
	apiRouter.HandleFunc("/footprint/latest", fh.Latest).Methods(http.MethodGet)
	apiRouter.HandleFunc("/footprint/history", fh.History).Methods(http.MethodGet)
	apiRouter.HandleFunc("/footprint/factors", fh.Factors).Methods(http.MethodGet)

	apiRouter.HandleFunc("/profile", authHandler.Profile).Methods(http.MethodGet)
	apiRouter.HandleFunc("/profile", authHandler.UpdateProfile).Methods(http.MethodPut)
	apiRouter.HandleFunc("/profile/password", authHandler.ChangePassword).Methods(http.MethodPost)

	if d.Live != nil {
		apiRouter.Handle("/ws", d.Live).Methods(http.MethodGet)
	}

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}
