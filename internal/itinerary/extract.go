package itinerary

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultCost is assumed when a line names no price.
const DefaultCost = 30

// minDescriptionLen is the length a cleaned description must exceed.
const minDescriptionLen = 10

var costRe = regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})+|\d+)(?:\.(\d{1,2}))?`)

// ExtractCost returns the first dollar amount on the line. A leading "~" or
// an enclosing parenthesis does not change the value.
func ExtractCost(line string) (float64, bool) {
	m := costRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	num := strings.ReplaceAll(m[1], ",", "")
	if m[2] != "" {
		num += "." + m[2]
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

var (
	// A full stop is only swallowed when the cost ends the text.
	parenCostRe = regexp.MustCompile(`\([^)]*\$[^)]*\)(?:\.\s*$)?`)
	// A bare amount takes the rest of its clause with it.
	standaloneCostRe = regexp.MustCompile(`~?\$(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?[^.,;()]*(?:\.\s*$)?`)
	emptyParenRe     = regexp.MustCompile(`\(\s*\)`)
	spaceRe          = regexp.MustCompile(`\s+`)
	spacePunctRe     = regexp.MustCompile(`\s+([,.;:!?])`)
)

// CleanDescription removes cost mentions and stray markup from activity text.
func CleanDescription(text string) string {
	s := parenCostRe.ReplaceAllString(text, "")
	s = standaloneCostRe.ReplaceAllString(s, "")
	s = emptyParenRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "*", "")
	s = spaceRe.ReplaceAllString(s, " ")
	s = spacePunctRe.ReplaceAllString(s, "$1")
	s = strings.TrimSpace(s)
	return strings.TrimRight(s, " ,;:-–—")
}

var (
	locationAfterVerbRe = regexp.MustCompile(`(?i:\b(?:at|in|visit|to)\s+)([A-Z][^,.;:!?()\n]*)`)
	properNounRe        = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2})\b`)
)

// InferLocation guesses a place name from the description. It is best
// effort: anything outside 4..49 characters falls back to destination.
func InferLocation(text, destination string) string {
	for _, re := range []*regexp.Regexp{locationAfterVerbRe, properNounRe} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		loc := strings.TrimSpace(m[1])
		if n := utf8.RuneCountInString(loc); n > 3 && n < 50 {
			return loc
		}
	}
	return destination
}

// Extract folds Classify over lines and finishes each accepted activity.
func Extract(lines []string, opts Options) ([]Activity, Stats) {
	var (
		out   []Activity
		stats Stats
	)
	cur := StartCursor()
	for _, raw := range lines {
		stats.Lines++
		var line Line
		line, cur = Classify(raw, cur)
		switch line.Kind {
		case LineNoise:
			stats.Noise++
		case LineDay:
			stats.DayMarkers++
		case LinePeriod:
			stats.PeriodMarks++
		case LineUnmatched:
			stats.Unmatched++
		case LineActivity:
			a, ok := buildActivity(raw, line, opts)
			if !ok {
				stats.TooShort++
				continue
			}
			stats.Activities++
			out = append(out, a)
		}
	}
	return out, stats
}

func buildActivity(raw string, line Line, opts Options) (Activity, bool) {
	desc := CleanDescription(line.Match.Text)
	if utf8.RuneCountInString(desc) <= minDescriptionLen {
		return Activity{}, false
	}

	cost, ok := ExtractCost(raw)
	if !ok {
		cost = DefaultCost
	}
	cat := Categorize(desc)
	return Activity{
		Day:           line.Day,
		Time:          line.Time,
		Activity:      desc,
		Location:      InferLocation(desc, opts.Destination),
		EstimatedCost: cost,
		Duration:      DefaultDuration(cat),
		Type:          cat,
	}, true
}
