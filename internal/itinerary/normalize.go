package itinerary

import "strings"

var markupReplacer = strings.NewReplacer(
	"**", "",
	"#", "",
	"\r\n", "\n",
	"\r", "\n",
)

// Normalize strips bold and heading markers, unifies line endings and returns
// the trimmed, non-empty lines in document order.
func Normalize(raw string) []string {
	if raw == "" {
		return nil
	}
	// Replacing "**" can expose a new pair ("***" -> "*"), so repeat until stable.
	clean := raw
	for {
		next := markupReplacer.Replace(clean)
		if next == clean {
			break
		}
		clean = next
	}

	var lines []string
	for _, line := range strings.Split(clean, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
