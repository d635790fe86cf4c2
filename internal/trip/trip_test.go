package trip

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/tripgest/internal/itinerary"
)

func validTrip() *Trip {
	return &Trip{
		ID:          "t1",
		Title:       "Kyoto Adventure",
		Destination: "Kyoto, Japan",
		StartDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
		Budget:      1500,
		Travelers:   2,
		Status:      StatusPlanning,
		Items: []Item{
			{ID: "i1", Activity: itinerary.Activity{Day: 1, Time: "09:00", Activity: "Visit Fushimi Inari", Type: itinerary.CategorySightseeing}},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(tr *Trip)
		wantErr string
	}{
		{"valid", func(tr *Trip) {}, ""},
		{"no title", func(tr *Trip) { tr.Title = "  " }, "title is required"},
		{"no destination", func(tr *Trip) { tr.Destination = "" }, "destination is required"},
		{"dates reversed", func(tr *Trip) { tr.EndDate = tr.StartDate.AddDate(0, 0, -1) }, "end date"},
		{"no travelers", func(tr *Trip) { tr.Travelers = 0 }, "travelers"},
		{"bad status", func(tr *Trip) { tr.Status = "dreaming" }, "unknown status"},
		{"bad time", func(tr *Trip) { tr.Items[0].Time = "9am" }, "not HH:MM"},
		{"day zero", func(tr *Trip) { tr.Items[0].Day = 0 }, "day must be at least 1"},
		{"negative cost", func(tr *Trip) { tr.Items[0].EstimatedCost = -1 }, "estimated cost"},
		{"bad type", func(tr *Trip) { tr.Items[0].Type = "spa" }, "unknown type"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := validTrip()
			tc.mutate(tr)
			err := tr.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("expected valid trip, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestDurationDays(t *testing.T) {
	tr := validTrip()
	if got := tr.DurationDays(); got != 3 {
		t.Errorf("expected 3 days, got %d", got)
	}
	tr.EndDate = tr.StartDate.Add(5 * time.Hour)
	if got := tr.DurationDays(); got != 1 {
		t.Errorf("expected same-day trip to be 1 day, got %d", got)
	}
	tr.StartDate = time.Time{}
	if got := tr.DurationDays(); got != 1 {
		t.Errorf("expected undated trip to be 1 day, got %d", got)
	}
}

func TestItemsFromActivities(t *testing.T) {
	acts := []itinerary.Activity{
		{Day: 1, Time: "09:00", Activity: "Temple walk through Higashiyama"},
		{Day: 1, Time: "12:00", Activity: "Lunch at Nishiki market"},
	}
	n := 0
	items := ItemsFromActivities(acts, func() string { n++; return fmt.Sprintf("id-%d", n) })
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[1].ID != "id-2" || items[1].Description != acts[1].Activity {
		t.Errorf("unexpected item %+v", items[1])
	}
}

func TestNextSlot(t *testing.T) {
	tests := []struct {
		name     string
		items    []Item
		wantDay  int
		wantTime string
	}{
		{"empty", nil, 1, "09:00"},
		{"two hours later", []Item{{Activity: itinerary.Activity{Day: 2, Time: "10:30"}}}, 2, "12:30"},
		{"late evening rolls over", []Item{{Activity: itinerary.Activity{Day: 2, Time: "20:00"}}}, 3, "09:00"},
		{"past midnight rolls over", []Item{{Activity: itinerary.Activity{Day: 1, Time: "23:15"}}}, 2, "09:00"},
		{"early morning clamps", []Item{{Activity: itinerary.Activity{Day: 1, Time: "05:00"}}}, 1, "09:00"},
		{"unparseable time", []Item{{Activity: itinerary.Activity{Day: 4, Time: "noon"}}}, 4, "09:00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NextSlot(tc.items, "Kyoto")
			if got.Day != tc.wantDay || got.Time != tc.wantTime {
				t.Errorf("expected day %d %s, got day %d %s", tc.wantDay, tc.wantTime, got.Day, got.Time)
			}
			if got.EstimatedCost != 25 || got.Duration != 120 || got.Location != "Kyoto" {
				t.Errorf("unexpected defaults %+v", got)
			}
		})
	}
}

func TestProfileValidate(t *testing.T) {
	p := Profile{TravelStyle: "cultural", ActivityLevel: "moderate", Mood: "curious"}
	if err := p.Validate(); err != nil {
		t.Errorf("expected valid profile, got %v", err)
	}
	p.Mood = "grumpy"
	if err := p.Validate(); err == nil || !strings.Contains(err.Error(), "mood") {
		t.Errorf("expected mood error, got %v", err)
	}
}
