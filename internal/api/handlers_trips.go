package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dgallion1/tripgest/internal/export"
	"github.com/dgallion1/tripgest/internal/pipeline"
	"github.com/dgallion1/tripgest/internal/store"
	"github.com/dgallion1/tripgest/internal/trip"
	"github.com/go-chi/chi/v5"
)

const maxListLimit = 200

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > maxListLimit {
		limit = maxListLimit
	}
	trips, err := s.store.ListTrips(r.Context(), limit)
	if err != nil {
		s.log.Error("list trips failed", "error", err)
		jsonError(w, "failed to list trips", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"trips": trips})
}

// loadTrip fetches the trip named in the URL, writing 404/500 itself.
func (s *Server) loadTrip(w http.ResponseWriter, r *http.Request) (*trip.Trip, bool) {
	id := chi.URLParam(r, "tripID")
	t, err := s.store.GetTrip(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "trip not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		s.log.Error("get trip failed", "trip_id", id, "error", err)
		jsonError(w, "failed to load trip", http.StatusInternalServerError)
		return nil, false
	}
	return t, true
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	t, ok := s.loadTrip(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleUpdateTrip replaces a trip with the edited version in the body.
// The ID and creation time always come from the stored trip.
func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.loadTrip(w, r)
	if !ok {
		return
	}
	var t trip.Trip
	if !s.decodeJSON(w, r, &t) {
		return
	}
	t.ID = existing.ID
	t.CreatedAt = existing.CreatedAt
	for i := range t.Items {
		if t.Items[i].ID == "" {
			t.Items[i].ID = pipeline.NewULID()
		}
	}
	if t.Items == nil {
		t.Items = []trip.Item{}
	}
	if err := t.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.store.SaveTrip(r.Context(), &t); err != nil {
		s.log.Error("save trip failed", "trip_id", t.ID, "error", err)
		jsonError(w, "failed to save trip", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, &t)
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tripID")
	err := s.store.DeleteTrip(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "trip not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("delete trip failed", "trip_id", id, "error", err)
		jsonError(w, "failed to delete trip", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addItemRequest struct {
	Activity    string `json:"activity"`
	Description string `json:"description"`
}

// handleAddItem appends a manual item in the next free slot after the last
// scheduled one.
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	t, ok := s.loadTrip(w, r)
	if !ok {
		return
	}
	var req addItemRequest
	if r.ContentLength != 0 && !s.decodeJSON(w, r, &req) {
		return
	}

	it := trip.NextSlot(t.Items, t.Destination)
	it.ID = pipeline.NewULID()
	it.Activity.Activity = strings.TrimSpace(req.Activity)
	if it.Activity.Activity == "" {
		it.Activity.Activity = "New activity"
	}
	it.Description = strings.TrimSpace(req.Description)
	t.Items = append(t.Items, it)

	if err := s.store.SaveTrip(r.Context(), t); err != nil {
		s.log.Error("save trip failed", "trip_id", t.ID, "error", err)
		jsonError(w, "failed to save trip", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (s *Server) handleExportTrip(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	t, ok := s.loadTrip(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, t, format); err != nil {
		s.log.Error("export failed", "trip_id", t.ID, "format", format, "error", err)
		jsonError(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(t)))
	w.Write(buf.Bytes())
}
