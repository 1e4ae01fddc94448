package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"github.com/mcoot/doubles-roundrobin/internal/api/handler"
	"github.com/mcoot/doubles-roundrobin/internal/api/middleware"
	"github.com/mcoot/doubles-roundrobin/internal/events"
	"github.com/mcoot/doubles-roundrobin/internal/services/tournament"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger               *slog.Logger
	TournamentController *tournament.Controller
	// Events serves live change streams. Nil disables the events route.
	Events *events.HubManager
	// CORSOrigins lists origins allowed to call the API from a browser.
	// Empty disables CORS headers.
	CORSOrigins []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	tournamentHandler := handler.NewTournamentHandler(cfg.TournamentController)
	rosterHandler := handler.NewRosterHandler(cfg.TournamentController)
	divisionHandler := handler.NewDivisionHandler(cfg.TournamentController)
	scheduleHandler := handler.NewScheduleHandler(cfg.TournamentController)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(loggingMiddleware)
	api.Use(recoveryMiddleware)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Tournament routes
	api.HandleFunc("/tournaments", tournamentHandler.Create).Methods(http.MethodPost)
	t := api.PathPrefix("/tournaments/{code}").Subrouter()
	t.HandleFunc("", tournamentHandler.Get).Methods(http.MethodGet)
	t.HandleFunc("", tournamentHandler.Update).Methods(http.MethodPatch)
	t.HandleFunc("", tournamentHandler.Delete).Methods(http.MethodDelete)

	// Roster and waitlist routes
	t.HandleFunc("/players", rosterHandler.List).Methods(http.MethodGet)
	t.HandleFunc("/players", rosterHandler.Add).Methods(http.MethodPost)
	t.HandleFunc("/players/assign", rosterHandler.Assign).Methods(http.MethodPost)
	t.HandleFunc("/players/{id}", rosterHandler.Update).Methods(http.MethodPatch)
	t.HandleFunc("/players/{id}", rosterHandler.Remove).Methods(http.MethodDelete)
	t.HandleFunc("/waitlist", rosterHandler.Approve).Methods(http.MethodPost)

	// Division and team routes
	t.HandleFunc("/divisions", divisionHandler.Add).Methods(http.MethodPost)
	t.HandleFunc("/divisions/{id}", divisionHandler.Update).Methods(http.MethodPatch)
	t.HandleFunc("/divisions/{id}", divisionHandler.Delete).Methods(http.MethodDelete)
	t.HandleFunc("/teams", divisionHandler.AddTeam).Methods(http.MethodPost)
	t.HandleFunc("/teams/{id}", divisionHandler.RemoveTeam).Methods(http.MethodDelete)

	// Schedule routes
	t.HandleFunc("/schedule", scheduleHandler.Get).Methods(http.MethodGet)
	t.HandleFunc("/schedule", scheduleHandler.Generate).Methods(http.MethodPost)
	t.HandleFunc("/schedule/estimate", scheduleHandler.Estimate).Methods(http.MethodGet)
	t.HandleFunc("/matches/{id}", scheduleHandler.Score).Methods(http.MethodPatch)
	t.HandleFunc("/rankings", scheduleHandler.Rankings).Methods(http.MethodGet)

	// Live change stream
	if cfg.Events != nil {
		eventsHandler := handler.NewEventsHandler(cfg.TournamentController, cfg.Events)
		t.HandleFunc("/events", eventsHandler.Stream).Methods(http.MethodGet)
	}

	if len(cfg.CORSOrigins) == 0 {
		return r
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})(r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
