package itinerary

import "sort"

// ActivitiesPerDay bounds the assembled result at DurationDays*ActivitiesPerDay.
const ActivitiesPerDay = 4

// Assemble orders records by day then time, caps the count and substitutes
// the placeholder record when nothing was extracted. records is not modified.
func Assemble(records []Activity, opts Options) Result {
	if len(records) == 0 {
		return Result{
			Activities: []Activity{Fallback(opts.Destination)},
			Degraded:   true,
		}
	}

	out := make([]Activity, len(records))
	copy(out, records)
	// HH:MM is zero padded, so string order is clock order.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Time < out[j].Time
	})

	days := opts.DurationDays
	if days < 1 {
		days = 1
	}
	var res Result
	if limit := days * ActivitiesPerDay; len(out) > limit {
		res.Stats.Truncated = len(out) - limit
		out = out[:limit]
	}
	res.Activities = out
	return res
}
