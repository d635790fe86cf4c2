package itinerary

import "regexp"

// ActivityMatch is what a structural matcher recovers from an activity line.
type ActivityMatch struct {
	Period    Period
	ClockExpr string // contents of the parenthesized time, if the matcher captured one
	Text      string
}

type matcher struct {
	name    string
	re      *regexp.Regexp
	extract func(m []string) ActivityMatch
}

const (
	periodGroup = `(morning|afternoon|evening|night)`
	bullet      = `[*•-]`
)

// matchers are ordered most specific first; the first hit wins so a line
// carrying an explicit time is never read by a looser pattern.
var matchers = []matcher{
	{
		name: "bullet-period-clock",
		re:   regexp.MustCompile(`(?i)^` + bullet + `\s*` + periodGroup + `\s*\(([^)]*)\)\s*:\s*(.+)$`),
		extract: func(m []string) ActivityMatch {
			return ActivityMatch{Period: parsePeriod(m[1]), ClockExpr: m[2], Text: m[3]}
		},
	},
	{
		name: "bullet-period-pair",
		re:   regexp.MustCompile(`(?i)^` + bullet + `\s*` + periodGroup + `\s*&\s*` + periodGroup + `\s*:\s*(.+)$`),
		extract: func(m []string) ActivityMatch {
			return ActivityMatch{Period: parsePeriod(m[1]), Text: m[3]}
		},
	},
	{
		name: "bullet-period",
		re:   regexp.MustCompile(`(?i)^` + bullet + `\s*` + periodGroup + `\s*:\s*(.+)$`),
		extract: func(m []string) ActivityMatch {
			return ActivityMatch{Period: parsePeriod(m[1]), Text: m[2]}
		},
	},
	{
		name: "period-clock",
		re:   regexp.MustCompile(`(?i)^` + periodGroup + `\s*\(([^)]*)\)\s*:\s*(.+)$`),
		extract: func(m []string) ActivityMatch {
			return ActivityMatch{Period: parsePeriod(m[1]), ClockExpr: m[2], Text: m[3]}
		},
	},
	{
		name: "period",
		re:   regexp.MustCompile(`(?i)^` + periodGroup + `\s*:\s*(.+)$`),
		extract: func(m []string) ActivityMatch {
			return ActivityMatch{Period: parsePeriod(m[1]), Text: m[2]}
		},
	},
}

// matchActivity returns the name and result of the first matcher that
// recognizes line.
func matchActivity(line string) (string, ActivityMatch, bool) {
	for _, mt := range matchers {
		if m := mt.re.FindStringSubmatch(line); m != nil {
			return mt.name, mt.extract(m), true
		}
	}
	return "", ActivityMatch{}, false
}
