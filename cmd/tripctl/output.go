package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/trip"
)

var (
	colorPrimary = lipgloss.Color("12")  // bright blue
	colorDim     = lipgloss.Color("240") // gray
	colorWarn    = lipgloss.Color("11")  // bright yellow

	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	styleDay    = lipgloss.NewStyle().Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleWarn   = lipgloss.NewStyle().Foreground(colorWarn)
)

const activityMax = 48

type column struct {
	title string
	width int
}

var columns = []column{
	{"DAY", 3},
	{"TIME", 5},
	{"ACTIVITY", activityMax},
	{"LOCATION", 20},
	{"COST", 7},
	{"MIN", 4},
	{"TYPE", 13},
}

// isTTY reports whether w is an interactive terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// fit truncates s to width display columns and pads it to exactly width.
func fit(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

func fitRow(cells []string) []string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fit(c, columns[i].width)
	}
	return parts
}

// writeTable renders activities as an aligned table. Styling is applied only
// for terminals.
func writeTable(w io.Writer, acts []itinerary.Activity) {
	tty := isTTY(w)

	titles := make([]string, len(columns))
	for i, c := range columns {
		titles[i] = c.title
	}
	header := strings.Join(fitRow(titles), "  ")
	if tty {
		header = styleHeader.Render(header)
	}
	fmt.Fprintln(w, header)

	lastDay := 0
	for _, a := range acts {
		dayCell := ""
		if a.Day != lastDay {
			dayCell = fmt.Sprint(a.Day)
			lastDay = a.Day
		}
		parts := fitRow([]string{dayCell, a.Time, a.Activity, a.Location,
			fmt.Sprintf("$%.0f", a.EstimatedCost), fmt.Sprint(a.Duration), string(a.Type)})
		if tty && dayCell != "" {
			parts[0] = styleDay.Render(parts[0])
		}
		fmt.Fprintln(w, strings.Join(parts, "  "))
	}
}

func printResult(w io.Writer, res itinerary.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	writeTable(w, res.Activities)
	summary := fmt.Sprintf("%d activities from %d lines (%d noise, %d unmatched, %d too short, %d truncated)",
		len(res.Activities), res.Stats.Lines, res.Stats.Noise, res.Stats.Unmatched, res.Stats.TooShort, res.Stats.Truncated)
	if isTTY(w) {
		summary = styleDim.Render(summary)
	}
	fmt.Fprintln(w, summary)
	if res.Degraded {
		msg := "no activities recognized; showing the placeholder entry"
		if isTTY(w) {
			msg = styleWarn.Render(msg)
		}
		fmt.Fprintln(w, msg)
	}
	return nil
}

func printTrip(w io.Writer, t *trip.Trip, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	}
	head := fmt.Sprintf("%s  [%s]  %s", t.Title, t.ID, t.Destination)
	if isTTY(w) {
		head = styleHeader.Render(head)
	}
	fmt.Fprintln(w, head)

	acts := make([]itinerary.Activity, len(t.Items))
	for i, it := range t.Items {
		acts[i] = it.Activity
	}
	writeTable(w, acts)
	fmt.Fprintf(w, "estimated total $%.2f for %d day(s)\n", t.TotalCost(), t.DurationDays())
	return nil
}
