package api

import (
	"net/http"
	"strings"

	"github.com/dgallion1/tripgest/internal/generate"
)

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req generate.RecommendationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Profile.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	recs, err := s.planner.Recommendations(r.Context(), req)
	if err != nil {
		jsonError(w, "recommendations cancelled: "+err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}

func (s *Server) handleTips(w http.ResponseWriter, r *http.Request) {
	var req generate.TipsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Destination == "" {
		jsonError(w, "destination is required", http.StatusBadRequest)
		return
	}
	tips, err := s.planner.TravelTips(r.Context(), req)
	if err != nil {
		jsonError(w, "tips cancelled: "+err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"destination": req.Destination, "tips": tips})
}
