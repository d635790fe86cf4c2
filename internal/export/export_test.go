package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fumiama/go-docx"
	"gopkg.in/yaml.v3"

	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/trip"
)

func item(day int, clock, text string, cost float64, dur int, cat itinerary.Category) trip.Item {
	return trip.Item{Activity: itinerary.Activity{
		Day: day, Time: clock, Activity: text, Location: "Kyoto",
		EstimatedCost: cost, Duration: dur, Type: cat,
	}}
}

func sampleTrip() *trip.Trip {
	dinner := item(1, "19:00", "Kaiseki dinner in Pontocho", 120.5, 90, itinerary.CategoryMeal)
	dinner.Booking = &trip.Booking{IsBooked: true, ConfirmationNumber: "PX-42"}
	return &trip.Trip{
		ID:          "T1",
		Title:       "Kyoto in Autumn!",
		Destination: "Kyoto",
		StartDate:   time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC),
		Travelers:   2,
		Status:      trip.StatusPlanning,
		Items: []trip.Item{
			item(2, "10:00", "Train to Nara to see the deer park", 12, 60, itinerary.CategoryTransport),
			dinner,
			item(1, "09:00", "Visit Fushimi Inari before the crowds", 0, 120, itinerary.CategorySightseeing),
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{"HTML", FormatHTML},
		{"docx", FormatDOCX},
	}
	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseFormat(%q): expected %q, got %q (%v)", tc.in, tc.want, got, err)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("expected error for pdf")
	}
	if got := FormatDOCX.Filename(sampleTrip()); got != "kyoto-in-autumn.docx" {
		t.Errorf("expected filename %q, got %q", "kyoto-in-autumn.docx", got)
	}
}

func TestGroupByDay(t *testing.T) {
	days := GroupByDay(sampleTrip().Items)
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if days[0].Number != 1 || len(days[0].Items) != 2 || days[0].Items[0].Time != "09:00" {
		t.Errorf("unexpected day 1: %+v", days[0])
	}
	if days[1].Number != 2 || len(days[1].Items) != 1 {
		t.Errorf("unexpected day 2: %+v", days[1])
	}
	if GroupByDay(nil) != nil {
		t.Error("expected no days for no items")
	}
}

func TestTotalCost(t *testing.T) {
	if got := TotalCost(sampleTrip()); got != 132.5 {
		t.Errorf("expected 132.5, got %v", got)
	}
}

func TestMarkdown(t *testing.T) {
	out, err := Markdown(sampleTrip())
	if err != nil {
		t.Fatalf("markdown: %v", err)
	}
	text := string(out)

	parts := strings.SplitN(text, "---\n", 3)
	if len(parts) != 3 || parts[0] != "" {
		t.Fatalf("expected frontmatter block, got %q", text)
	}
	var fm frontmatter
	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		t.Fatalf("frontmatter is not yaml: %v", err)
	}
	if fm.Destination != "Kyoto" || fm.Days != 2 || fm.StartDate != "2026-11-02" || fm.TotalCost != 132.5 {
		t.Errorf("unexpected frontmatter: %+v", fm)
	}

	for _, want := range []string{
		"## Day 1: Monday, November 2",
		"* Morning (09:00): Visit Fushimi Inari before the crowds (Kyoto, $0, 2h)",
		"* Evening (19:00): Kaiseki dinner in Pontocho (Kyoto, $120.50, 1h30m)",
		"  > Booked, confirmation PX-42",
		"## Day 2: Tuesday, November 3",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected markdown to contain %q\n%s", want, text)
		}
	}
}

func TestMarkdown_ParsesBack(t *testing.T) {
	orig := sampleTrip()
	out, err := Markdown(orig)
	if err != nil {
		t.Fatalf("markdown: %v", err)
	}
	acts := itinerary.ParseItinerary(string(out), "Kyoto", 2)
	want := GroupByDay(orig.Items)
	var flat []trip.Item
	for _, d := range want {
		flat = append(flat, d.Items...)
	}
	if len(acts) != len(flat) {
		t.Fatalf("expected %d activities, got %d: %v", len(flat), len(acts), acts)
	}
	for i, a := range acts {
		w := flat[i]
		if a.Day != w.Day || a.Time != w.Time || a.Activity != w.Activity.Activity || a.EstimatedCost != w.EstimatedCost {
			t.Errorf("activity %d: expected %v, got %v", i, w.Activity, a)
		}
	}
}

func TestHTML(t *testing.T) {
	tr := sampleTrip()
	tr.Title = "Kyoto <b>&</b> Nara"
	out, err := HTML(tr)
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	text := string(out)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Kyoto &lt;b&gt;&amp;&lt;/b&gt; Nara</title>",
		"<h2>Day 1: Monday, November 2</h2>",
		"<li>Morning (09:00): Visit Fushimi Inari before the crowds",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected html to contain %q\n%s", want, text)
		}
	}
}

func TestDOCX(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleTrip(), FormatDOCX); err != nil {
		t.Fatalf("docx: %v", err)
	}

	doc, err := docx.Parse(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("parse written docx: %v", err)
	}
	var tables, paras int
	var text strings.Builder
	for _, it := range doc.Document.Body.Items {
		switch v := it.(type) {
		case *docx.Paragraph:
			paras++
			text.WriteString(v.String())
		case *docx.Table:
			tables++
		}
	}
	if tables != 2 {
		t.Errorf("expected 2 day tables, got %d", tables)
	}
	if paras < 4 {
		t.Errorf("expected title, summary and 2 headings, got %d paragraphs", paras)
	}
	if !strings.Contains(text.String(), "Kyoto in Autumn!") {
		t.Errorf("expected title in document text, got %q", text.String())
	}
}
