// Package export renders saved trips as Markdown, HTML and Word documents.
package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dgallion1/tripgest/internal/trip"
)

// Format is an export file format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatDOCX     Format = "docx"
)

// ParseFormat accepts the format names and common aliases. An empty string
// means Markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "docx", "word":
		return FormatDOCX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// Filename is a download name for t in this format.
func (f Format) Filename(t *trip.Trip) string {
	return slug(t.Title) + "." + string(f)
}

// Write renders t to w in format f.
func Write(w io.Writer, t *trip.Trip, f Format) error {
	switch f {
	case FormatMarkdown:
		b, err := Markdown(t)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case FormatHTML:
		b, err := HTML(t)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case FormatDOCX:
		return DOCX(w, t)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// Day is one day of a trip with its items in schedule order.
type Day struct {
	Number int
	Items  []trip.Item
}

// GroupByDay buckets items by day, ordered by day then time. Items with the
// same day and time keep their original order.
func GroupByDay(items []trip.Item) []Day {
	sorted := make([]trip.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Day != sorted[j].Day {
			return sorted[i].Day < sorted[j].Day
		}
		return sorted[i].Time < sorted[j].Time
	})

	var days []Day
	for _, it := range sorted {
		if n := len(days); n == 0 || days[n-1].Number != it.Day {
			days = append(days, Day{Number: it.Day})
		}
		days[len(days)-1].Items = append(days[len(days)-1].Items, it)
	}
	return days
}

// TotalCost sums the estimated cost of every item.
func TotalCost(t *trip.Trip) float64 {
	return t.TotalCost()
}

// dayTitle is "Day N" plus the calendar date when the trip is dated.
func dayTitle(t *trip.Trip, day int) string {
	if t.StartDate.IsZero() {
		return fmt.Sprintf("Day %d", day)
	}
	date := t.StartDate.AddDate(0, 0, day-1)
	return fmt.Sprintf("Day %d: %s", day, date.Format("Monday, January 2"))
}

// periodLabel names the part of day an "HH:MM" clock falls in.
func periodLabel(clock string) string {
	switch {
	case clock < "12:00":
		return "Morning"
	case clock < "17:00":
		return "Afternoon"
	default:
		return "Evening"
	}
}

func formatCost(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("$%d", int64(v))
	}
	return fmt.Sprintf("$%.2f", v)
}

func formatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}

func slug(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		case !dash && sb.Len() > 0:
			sb.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(sb.String(), "-")
	if out == "" {
		return "trip"
	}
	return out
}
