package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/source"
)

type parseRequest struct {
	Text        string `json:"text"`
	Destination string `json:"destination"`
	Days        int    `json:"days"`
}

// handleParse runs the itinerary parser over raw model text. It never fails
// on content; unreadable text yields the degraded placeholder result.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	res := itinerary.Parse(req.Text, itinerary.Options{
		Destination:  strings.TrimSpace(req.Destination),
		DurationDays: s.clampDays(req.Days),
	})
	writeJSON(w, http.StatusOK, res)
}

// handleImport extracts itinerary text from an uploaded document and parses it.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	// Extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	opts := source.Options{PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext}
	ext, err := source.ForFile(filename, opts)
	if err != nil {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	text, err := ext.Extract(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Warn("import extraction failed", "filename", filename, "error", err)
		jsonError(w, "could not read document: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	days, _ := strconv.Atoi(r.FormValue("days"))
	res := itinerary.Parse(text, itinerary.Options{
		Destination:  strings.TrimSpace(r.FormValue("destination")),
		DurationDays: s.clampDays(days),
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"filename":   filename,
		"activities": res.Activities,
		"degraded":   res.Degraded,
		"stats":      res.Stats,
	})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
