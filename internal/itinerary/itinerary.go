package itinerary

import "fmt"

// Category classifies an activity for display and duration defaults.
type Category string

const (
	CategoryTransport     Category = "transport"
	CategoryAccommodation Category = "accommodation"
	CategoryActivity      Category = "activity"
	CategoryMeal          Category = "meal"
	CategorySightseeing   Category = "sightseeing"
)

// Activity is one structured itinerary entry recovered from model output.
type Activity struct {
	Day           int      `json:"day"`
	Time          string   `json:"time"`
	Activity      string   `json:"activity"`
	Location      string   `json:"location"`
	EstimatedCost float64  `json:"estimated_cost"`
	Duration      int      `json:"duration"` // minutes
	Type          Category `json:"type"`
}

// Options carries the caller-supplied trip context for one parse.
type Options struct {
	Destination  string
	DurationDays int
}

// Stats counts how lines were classified during one parse.
type Stats struct {
	Lines       int `json:"lines"`
	Noise       int `json:"noise"`
	DayMarkers  int `json:"day_markers"`
	PeriodMarks int `json:"period_markers"`
	Activities  int `json:"activities"`
	TooShort    int `json:"too_short"`
	Unmatched   int `json:"unmatched"`
	Truncated   int `json:"truncated"`
}

// Result is the assembled output of a parse.
type Result struct {
	Activities []Activity `json:"activities"`
	// Degraded is set when nothing could be extracted and Activities holds
	// only the placeholder record.
	Degraded bool  `json:"degraded"`
	Stats    Stats `json:"stats"`
}

const (
	fallbackActivity = "Explore the main attractions"
	fallbackCost     = 50
	fallbackDuration = 180
)

// Fallback returns the placeholder record used when extraction finds nothing.
func Fallback(destination string) Activity {
	return Activity{
		Day:           1,
		Time:          "09:00",
		Activity:      fallbackActivity,
		Location:      destination,
		EstimatedCost: fallbackCost,
		Duration:      fallbackDuration,
		Type:          CategoryActivity,
	}
}

// IsFallback reports whether activities is exactly the placeholder result.
func IsFallback(activities []Activity) bool {
	return len(activities) == 1 &&
		activities[0].Activity == fallbackActivity &&
		activities[0].Duration == fallbackDuration &&
		activities[0].EstimatedCost == fallbackCost
}

// Parse runs the full pipeline: Normalize, Extract, Assemble. It never fails;
// an internal fault degrades to the placeholder result like an empty parse.
func Parse(raw string, opts Options) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{
				Activities: []Activity{Fallback(opts.Destination)},
				Degraded:   true,
			}
		}
	}()

	lines := Normalize(raw)
	records, stats := Extract(lines, opts)
	res = Assemble(records, opts)
	stats.Truncated = res.Stats.Truncated
	res.Stats = stats
	return res
}

// ParseItinerary parses rawText and returns a non-empty, ordered activity list.
// Callers detect the placeholder with IsFallback.
func ParseItinerary(rawText, destination string, durationDays int) []Activity {
	return Parse(rawText, Options{Destination: destination, DurationDays: durationDays}).Activities
}

func (a Activity) String() string {
	return fmt.Sprintf("day %d %s %s (%s)", a.Day, a.Time, a.Activity, a.Type)
}
