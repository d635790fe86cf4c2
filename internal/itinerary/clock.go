package itinerary

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type clockPattern struct {
	re       *regexp.Regexp
	hasMin   bool
	twelveHr bool
}

// clockPatterns lists the 12-hour clock forms in rank order.
var clockPatterns = []clockPattern{
	// 9:00 AM, 9:00pm, 9:00 a.m.
	{re: regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*([ap])\.?m\b`), hasMin: true, twelveHr: true},
	// 9:00 AM - (start of a range)
	{re: regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*([ap])\.?m\.?\s*[-–—]`), hasMin: true, twelveHr: true},
	// 9 AM, 9am
	{re: regexp.MustCompile(`(?i)\b(\d{1,2})\s*([ap])\.?m\b`), twelveHr: true},
}

var (
	// 14:30, only consulted when the expression has no am/pm marker.
	twentyFourHr = clockPattern{re: regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`), hasMin: true}
	meridiemRe   = regexp.MustCompile(`(?i)\d\s*[ap]\.?m\b`)
)

// ParseClock finds a clock time in expr and returns it as zero-padded 24-hour
// "HH:MM". Patterns are tried in rank order and the first valid match of the
// first pattern that yields one wins, so "2:00 - 5:00 PM" reads as 17:00.
func ParseClock(expr string) (string, bool) {
	for _, p := range clockPatterns {
		if t, ok := p.first(expr); ok {
			return t, true
		}
	}
	if meridiemRe.MatchString(expr) {
		return "", false
	}
	return twentyFourHr.first(expr)
}

func (p clockPattern) first(expr string) (string, bool) {
	for _, idx := range p.re.FindAllStringSubmatchIndex(expr, -1) {
		if t, ok := p.convert(expr, idx); ok {
			return t, true
		}
	}
	return "", false
}

func (p clockPattern) convert(s string, idx []int) (string, bool) {
	group := func(n int) string {
		if idx[2*n] < 0 {
			return ""
		}
		return s[idx[2*n]:idx[2*n+1]]
	}

	hours, err := strconv.Atoi(group(1))
	if err != nil {
		return "", false
	}
	minutes := 0
	next := 2
	if p.hasMin {
		minutes, err = strconv.Atoi(group(2))
		if err != nil || minutes > 59 {
			return "", false
		}
		next = 3
	}

	if !p.twelveHr {
		if hours > 23 {
			return "", false
		}
		return formatClock(hours, minutes), true
	}

	if hours < 1 || hours > 12 {
		return "", false
	}
	switch strings.ToLower(group(next)) {
	case "p":
		if hours != 12 {
			hours += 12
		}
	case "a":
		if hours == 12 {
			hours = 0
		}
	}
	return formatClock(hours, minutes), true
}

func formatClock(hours, minutes int) string {
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
