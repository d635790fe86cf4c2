package api

import (
	"net/http"
)

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.planner == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"model":       s.planner.Model(),
		"stats":       s.planner.Stats(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
