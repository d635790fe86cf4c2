package export

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/tripgest/internal/trip"
)

type frontmatter struct {
	Title       string  `yaml:"title"`
	Destination string  `yaml:"destination"`
	StartDate   string  `yaml:"start_date,omitempty"`
	EndDate     string  `yaml:"end_date,omitempty"`
	Days        int     `yaml:"days"`
	Travelers   int     `yaml:"travelers"`
	Budget      float64 `yaml:"budget,omitempty"`
	Status      string  `yaml:"status"`
	TotalCost   float64 `yaml:"estimated_total_cost"`
}

// Markdown renders t with YAML frontmatter followed by the schedule body.
//
// Activity lines use the "* Period (HH:MM): text ($cost, duration)" form so
// an exported file parses back into the same day, time and cost.
func Markdown(t *trip.Trip) ([]byte, error) {
	fm := frontmatter{
		Title:       t.Title,
		Destination: t.Destination,
		Days:        t.DurationDays(),
		Travelers:   t.Travelers,
		Budget:      t.Budget,
		Status:      string(t.Status),
		TotalCost:   t.TotalCost(),
	}
	if !t.StartDate.IsZero() {
		fm.StartDate = t.StartDate.Format("2006-01-02")
	}
	if !t.EndDate.IsZero() {
		fm.EndDate = t.EndDate.Format("2006-01-02")
	}
	head, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(head)
	buf.WriteString("---\n\n")
	buf.Write(markdownBody(t))
	return buf.Bytes(), nil
}

// markdownBody is the document without frontmatter.
func markdownBody(t *trip.Trip) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", t.Title)
	fmt.Fprintf(&buf, "%s, %d traveler(s), estimated total %s.\n", t.Destination, t.Travelers, formatCost(t.TotalCost()))

	for _, day := range GroupByDay(t.Items) {
		fmt.Fprintf(&buf, "\n## %s\n\n", dayTitle(t, day.Number))
		for _, it := range day.Items {
			fmt.Fprintf(&buf, "* %s (%s): %s (%s, %s, %s)\n",
				periodLabel(it.Time), it.Time, it.Activity.Activity,
				it.Location, formatCost(it.EstimatedCost), formatDuration(it.Duration))
			if note := itemNote(it); note != "" {
				fmt.Fprintf(&buf, "  > %s\n", note)
			}
		}
	}
	return buf.Bytes()
}

// itemNote combines the free-text description and booking details.
func itemNote(it trip.Item) string {
	note := ""
	if it.Description != "" && it.Description != it.Activity.Activity {
		note = it.Description
	}
	if b := it.Booking; b != nil && b.IsBooked {
		booked := "Booked"
		if b.ConfirmationNumber != "" {
			booked += ", confirmation " + b.ConfirmationNumber
		}
		if note != "" {
			note += ". "
		}
		note += booked
	}
	return note
}
