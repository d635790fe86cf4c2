package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/tripgest/internal/generate"
	"github.com/dgallion1/tripgest/internal/pipeline"
	"github.com/dgallion1/tripgest/internal/store"
	"github.com/dgallion1/tripgest/internal/trip"
)

func generateCmd(g *globals) *cobra.Command {
	var (
		title, country, startDate, provider string
		travelers                           int
		budget                              float64
		profile                             trip.Profile
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Ask the model for an itinerary, parse it and save the trip",
		Long: `Runs the same generate, parse and store steps as the server's plan jobs.
The model provider and trip store come from the usual configuration
(.env, TRIPGEST_CONFIG and environment variables).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.destination == "" {
				return errors.New("--destination is required")
			}
			if err := profile.Validate(); err != nil {
				return err
			}
			cfg, log, err := g.loadConfig()
			if err != nil {
				return err
			}
			if provider != "" {
				cfg.LLMProvider = provider
			}

			llm, err := generate.NewClient(cfg)
			if err != nil {
				return err
			}
			defer llm.Close()
			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			req := pipeline.PlanRequest{
				Title:       title,
				Destination: g.destination,
				Country:     country,
				Days:        g.clampDays(cfg.MaxTripDays),
				Travelers:   travelers,
				Budget:      budget,
				Profile:     profile,
			}
			if startDate != "" {
				req.StartDate, err = time.Parse("2006-01-02", startDate)
				if err != nil {
					return fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, cfg.LLMTimeout*pipeline.MaxRetries)
			defer cancel()

			job := pipeline.NewJob(req)
			w := pipeline.NewWorker(generate.NewPlanner(llm, nil, log), st, log)
			w.Process(ctx, job)

			snap := job.Snapshot()
			if snap.Status == pipeline.StatusFailed {
				return fmt.Errorf("plan failed: %v", snap.Progress.Errors)
			}
			t, err := st.GetTrip(ctx, snap.TripID)
			if err != nil {
				return err
			}
			if snap.Status == pipeline.StatusDegraded {
				log.Warn("trip saved in degraded form",
					"static_template", snap.Progress.StaticTemplate,
					"parser_fallback", snap.Progress.ParserFallback)
			}
			return printTrip(cmd.OutOrStdout(), t, g.json)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Trip title (default \"N-day trip to <destination>\")")
	cmd.Flags().StringVar(&country, "country", "", "Destination country")
	cmd.Flags().StringVar(&startDate, "start", "", "First day of the trip (YYYY-MM-DD)")
	cmd.Flags().IntVar(&travelers, "travelers", 1, "Number of travelers")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Total budget")
	cmd.Flags().StringVar(&provider, "provider", "", "Override LLM_PROVIDER (anthropic, openai, mock)")
	cmd.Flags().StringVar(&profile.TravelStyle, "style", "", "Travel style (adventure, relaxation, cultural, luxury, budget, family)")
	cmd.Flags().StringVar(&profile.ActivityLevel, "activity-level", "", "Activity level (low, moderate, high)")
	cmd.Flags().StringSliceVar(&profile.Interests, "interest", nil, "Interest, repeatable")
	return cmd
}
