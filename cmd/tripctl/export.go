package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/tripgest/internal/export"
	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/pipeline"
	"github.com/dgallion1/tripgest/internal/source"
	"github.com/dgallion1/tripgest/internal/store"
	"github.com/dgallion1/tripgest/internal/trip"
)

func exportCmd(g *globals) *cobra.Command {
	var formatName, out, tripID, title string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Render a trip as Markdown, HTML or DOCX",
		Long: `Exports either a saved trip (--trip) or an itinerary document, which is
imported and parsed first. Output goes to --out, or stdout for md and html.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}

			var t *trip.Trip
			switch {
			case tripID != "":
				cfg, _, err := g.loadConfig()
				if err != nil {
					return err
				}
				st, err := store.Open(cfg)
				if err != nil {
					return err
				}
				defer st.Close()
				if t, err = st.GetTrip(cmd.Context(), tripID); err != nil {
					return fmt.Errorf("trip %s: %w", tripID, err)
				}
			case len(args) == 1:
				if t, err = g.tripFromFile(args[0], title); err != nil {
					return err
				}
			default:
				return fmt.Errorf("give a file to export or --trip <id>")
			}

			if out == "" && format == export.FormatDOCX {
				out = format.Filename(t)
			}
			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := export.Write(w, t, format); err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "md", "Output format: md, html or docx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	cmd.Flags().StringVar(&tripID, "trip", "", "Export a saved trip by ID")
	cmd.Flags().StringVar(&title, "title", "", "Title for a trip built from a file")
	return cmd
}

// tripFromFile imports and parses an itinerary document into an unsaved trip.
func (g *globals) tripFromFile(path, title string) (*trip.Trip, error) {
	text, err := source.ExtractFile(path, source.Options{PDFFallbackPdftotext: true})
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	days := g.clampDays(0)
	res := itinerary.Parse(text, itinerary.Options{Destination: g.destination, DurationDays: days})

	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	destination := g.destination
	if destination == "" {
		destination = "Unknown"
	}
	return &trip.Trip{
		ID:          pipeline.NewULID(),
		Title:       title,
		Destination: destination,
		Travelers:   1,
		Status:      trip.StatusPlanning,
		Items:       trip.ItemsFromActivities(res.Activities, pipeline.NewULID),
	}, nil
}
