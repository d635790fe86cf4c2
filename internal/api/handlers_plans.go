package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgallion1/tripgest/internal/pipeline"
	"github.com/dgallion1/tripgest/internal/trip"
	"github.com/go-chi/chi/v5"
)

type planRequest struct {
	Title       string           `json:"title"`
	Destination string           `json:"destination"`
	Country     string           `json:"country"`
	Days        int              `json:"days"`
	StartDate   string           `json:"start_date"` // YYYY-MM-DD
	Travelers   int              `json:"travelers"`
	Budget      float64          `json:"budget"`
	Profile     trip.Profile     `json:"profile"`
	Preferences trip.Preferences `json:"preferences"`
}

// handleCreatePlan queues generate, parse and save for a new trip.
func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var body planRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}
	body.Destination = strings.TrimSpace(body.Destination)
	if body.Destination == "" {
		jsonError(w, "destination is required", http.StatusBadRequest)
		return
	}
	if err := body.Profile.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.Budget < 0 {
		jsonError(w, "budget must not be negative", http.StatusBadRequest)
		return
	}

	req := pipeline.PlanRequest{
		Title:       strings.TrimSpace(body.Title),
		Destination: body.Destination,
		Country:     strings.TrimSpace(body.Country),
		Days:        s.clampDays(body.Days),
		Travelers:   body.Travelers,
		Budget:      body.Budget,
		Profile:     body.Profile,
		Preferences: body.Preferences,
	}
	if body.StartDate != "" {
		start, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			jsonError(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		req.StartDate = start
	}

	job := pipeline.NewJob(req)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"trip_id":  job.TripID,
		"status":   pipeline.StatusQueued,
		"poll_url": fmt.Sprintf("/api/plans/%s/status", job.ID),
	})
}

func (s *Server) handlePlanStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"job_id":   snap.ID,
		"trip_id":  snap.TripID,
		"status":   snap.Status,
		"phase":    snap.Phase,
		"progress": snap.Progress,
	})
}
