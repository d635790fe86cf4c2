package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dgallion1/tripgest/internal/config"
	"github.com/dgallion1/tripgest/internal/generate"
	"github.com/dgallion1/tripgest/internal/pipeline"
	"github.com/dgallion1/tripgest/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for tripgest.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	planner      *generate.Planner
	store        store.Store
	log          *slog.Logger
	cfg          config.Config
}

func NewServer(orch *pipeline.Orchestrator, planner *generate.Planner, st store.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		planner:      planner,
		store:        st,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.TripgestAPIKey, s.log))

		r.Post("/api/itinerary/parse", s.handleParse)
		r.Post("/api/itinerary/import", s.handleImport)

		r.Post("/api/plans", s.handleCreatePlan)
		r.Get("/api/plans/{jobID}/status", s.handlePlanStatus)

		r.Post("/api/recommendations", s.handleRecommendations)
		r.Post("/api/tips", s.handleTips)

		r.Get("/api/trips", s.handleListTrips)
		r.Route("/api/trips/{tripID}", func(r chi.Router) {
			r.Get("/", s.handleGetTrip)
			r.Put("/", s.handleUpdateTrip)
			r.Delete("/", s.handleDeleteTrip)
			r.Post("/items", s.handleAddItem)
			r.Get("/export", s.handleExportTrip)
		})

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// decodeJSON reads a size-limited JSON body into v, writing a 400 on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// clampDays applies the default of 3 and the MAX_TRIP_DAYS ceiling.
func (s *Server) clampDays(days int) int {
	if days <= 0 {
		return defaultDays
	}
	if s.cfg.MaxTripDays > 0 && days > s.cfg.MaxTripDays {
		return s.cfg.MaxTripDays
	}
	return days
}

const defaultDays = 3
