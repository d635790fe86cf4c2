package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/tripgest/internal/generate"
	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/store"
	"github.com/dgallion1/tripgest/internal/trip"
)

// Worker processes a single plan job.
type Worker struct {
	planner *generate.Planner
	store   store.Store
	log     *slog.Logger
	backoff func(err error, attempt int) time.Duration
}

func NewWorker(planner *generate.Planner, st store.Store, log *slog.Logger) *Worker {
	return &Worker{
		planner: planner,
		store:   st,
		log:     log,
		backoff: Backoff,
	}
}

// Process runs generate, parse and store for a job. Generation failures
// fall back to the static itinerary; only a cancelled context or a store
// failure fails the job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	req := job.Request
	if req.Days < 1 {
		req.Days = 1
	}
	log := w.log.With("job_id", job.ID, "trip_id", job.TripID, "destination", req.Destination)

	// Phase 1: Generate
	job.SetStatus(StatusGenerating, "generating")
	text, err := w.generate(ctx, job, req, log)
	if err != nil {
		if ctx.Err() != nil {
			log.Error("generation cancelled", "error", err)
			job.AddError(fmt.Sprintf("generate: %s", err))
			job.SetStatus(StatusFailed, "generating")
			return
		}
		log.Warn("generation failed, using static itinerary", "error", err, "attempts", job.Snapshot().Progress.Attempts)
		job.AddError(fmt.Sprintf("generate: %s", err))
		job.MarkStaticTemplate()
		text = generate.StaticItinerary(req.Destination, req.Days)
	}

	// Phase 2: Parse
	job.SetStatus(StatusParsing, "parsing")
	res := itinerary.Parse(text, itinerary.Options{Destination: req.Destination, DurationDays: req.Days})
	job.SetParsed(res)
	log.Info("parsed itinerary",
		"activities", len(res.Activities),
		"degraded", res.Degraded,
		"day_markers", res.Stats.DayMarkers,
		"noise", res.Stats.Noise,
		"truncated", res.Stats.Truncated,
	)
	if res.Stats.Unmatched > 0 || res.Stats.TooShort > 0 {
		log.Debug("lines dropped", "unmatched", res.Stats.Unmatched, "too_short", res.Stats.TooShort)
	}

	// Phase 3: Store
	job.SetStatus(StatusStoring, "storing")
	t := buildTrip(job.TripID, req, res)
	if err := t.Validate(); err != nil {
		log.Error("built trip is invalid", "error", err)
		job.AddError(fmt.Sprintf("validate: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}
	if err := w.store.SaveTrip(ctx, t); err != nil {
		log.Error("save trip failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	snap := job.Snapshot()
	if snap.Progress.StaticTemplate || res.Degraded {
		job.SetStatus(StatusDegraded, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("plan complete", "items", len(t.Items), "status", job.Snapshot().Status)
}

// generate calls the model with up to MaxRetries attempts for retryable
// errors.
func (w *Worker) generate(ctx context.Context, job *Job, req PlanRequest, log *slog.Logger) (string, error) {
	ireq := generate.ItineraryRequest{
		Destination: req.Destination,
		Country:     req.Country,
		Days:        req.Days,
		Profile:     req.Profile,
		Preferences: req.Preferences,
	}
	var lastErr error
	for attempt := range MaxRetries {
		job.IncrAttempts()
		text, err := w.planner.ItineraryText(ctx, ireq)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !IsRetryable(err) || attempt == MaxRetries-1 {
			break
		}
		log.Warn("retryable generation error", "attempt", attempt, "error", err)
		select {
		case <-time.After(w.backoff(err, attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

// buildTrip turns a parse result into a trip in planning status.
func buildTrip(id string, req PlanRequest, res itinerary.Result) *trip.Trip {
	title := req.Title
	if title == "" {
		title = fmt.Sprintf("%d-day trip to %s", req.Days, req.Destination)
	}
	travelers := req.Travelers
	if travelers < 1 {
		travelers = 1
	}
	t := &trip.Trip{
		ID:          id,
		Title:       title,
		Destination: req.Destination,
		Budget:      req.Budget,
		Travelers:   travelers,
		Status:      trip.StatusPlanning,
		Items:       trip.ItemsFromActivities(res.Activities, NewULID),
	}
	if !req.StartDate.IsZero() {
		t.StartDate = req.StartDate
		t.EndDate = req.StartDate.AddDate(0, 0, req.Days-1)
	}
	return t
}
