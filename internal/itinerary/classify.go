package itinerary

import (
	"regexp"
	"strconv"
	"strings"
)

// Period is a coarse time-of-day label used by model output.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
	PeriodNight     Period = "night"
)

// DefaultTime is the clock time assumed for a period with no explicit time.
func (p Period) DefaultTime() string {
	switch p {
	case PeriodAfternoon:
		return "14:00"
	case PeriodEvening, PeriodNight:
		return "18:00"
	default:
		return "09:00"
	}
}

func parsePeriod(s string) Period {
	return Period(strings.ToLower(strings.TrimSpace(s)))
}

// Cursor carries the current day and time forward across lines.
type Cursor struct {
	Day  int
	Time string
}

// StartCursor is the cursor state before the first line.
func StartCursor() Cursor {
	return Cursor{Day: 1, Time: "09:00"}
}

// LineKind is the classification of a single normalized line.
type LineKind int

const (
	LineUnmatched LineKind = iota
	LineNoise
	LineDay
	LinePeriod
	LineActivity
)

func (k LineKind) String() string {
	switch k {
	case LineNoise:
		return "noise"
	case LineDay:
		return "day"
	case LinePeriod:
		return "period"
	case LineActivity:
		return "activity"
	default:
		return "unmatched"
	}
}

// Line is the outcome of classifying one line.
type Line struct {
	Kind LineKind
	// Set for LineActivity.
	Match   *ActivityMatch
	Day     int
	Time    string
	Matcher string
}

// noisePrefixes open or close the letter-style framing models wrap around an
// itinerary. Matched against normalized lines, so bold markers are already gone.
var noisePrefixes = []string{
	"Hey ",
	"Hi ",
	"Hello ",
	"Stoked ",
	"Important Notes:",
	"Note:",
	"Notes:",
	"This is just",
	"Best,",
	"Cheers,",
	"[Your Name",
	"Have an amazing",
	"Enjoy your",
	"Happy travels",
	"* Transportation:",
	"* Festivals:",
	"* Budget:",
	"* Accommodation:",
}

func isNoise(line string) bool {
	for _, p := range noisePrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

var dayMarkerRe = regexp.MustCompile(`Day\s+(\d+)`)

func dayMarker(line string) (int, bool) {
	m := dayMarkerRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		// Still a day heading; keep the day but reset the time.
		return 0, true
	}
	return n, true
}

// periodKeywords is checked in order; the first keyword found wins.
var periodKeywords = []struct {
	word   string
	period Period
}{
	{"morning", PeriodMorning},
	{"afternoon", PeriodAfternoon},
	{"evening", PeriodEvening},
	{"night", PeriodNight},
}

func periodMarker(line string) (Period, bool) {
	lower := strings.ToLower(line)
	for _, pk := range periodKeywords {
		if strings.Contains(lower, pk.word) {
			return pk.period, true
		}
	}
	return "", false
}

// Classify decides what one normalized line is and returns the cursor as it
// stands after the line. Evaluation order: noise, day marker, activity,
// period marker, unmatched.
func Classify(line string, cur Cursor) (Line, Cursor) {
	if isNoise(line) {
		return Line{Kind: LineNoise}, cur
	}

	if day, ok := dayMarker(line); ok {
		if day > 0 {
			cur.Day = day
		}
		cur.Time = "09:00"
		return Line{Kind: LineDay, Day: cur.Day}, cur
	}

	if name, m, ok := matchActivity(line); ok {
		if clock, ok := clockFromLine(m.ClockExpr, line); ok {
			cur.Time = clock
		} else {
			cur.Time = m.Period.DefaultTime()
		}
		return Line{
			Kind:    LineActivity,
			Match:   &m,
			Day:     cur.Day,
			Time:    cur.Time,
			Matcher: name,
		}, cur
	}

	if p, ok := periodMarker(line); ok {
		cur.Time = p.DefaultTime()
		return Line{Kind: LinePeriod, Time: cur.Time}, cur
	}

	return Line{Kind: LineUnmatched}, cur
}

var parenRe = regexp.MustCompile(`\(([^)]*)\)`)

// clockFromLine prefers the matcher's captured time expression, then any
// other parenthesized segment on the line.
func clockFromLine(captured, line string) (string, bool) {
	if captured != "" {
		if t, ok := ParseClock(captured); ok {
			return t, true
		}
	}
	for _, m := range parenRe.FindAllStringSubmatch(line, -1) {
		if m[1] == captured {
			continue
		}
		if t, ok := ParseClock(m[1]); ok {
			return t, true
		}
	}
	return "", false
}
