package generate

import (
	"fmt"
	"strings"
)

type staticSlot struct {
	label string
	text  string // %s is replaced with the destination
}

type staticDay struct {
	theme string
	slots [3]staticSlot
}

var staticDays = []staticDay{
	{"Arrival & First Impressions", [3]staticSlot{
		{"Morning (9:00 AM - 12:00 PM)", "Arrive and check into your hotel in %s"},
		{"Afternoon (1:00 PM - 4:00 PM)", "Orientation walk to see the main landmarks of %s ($20)"},
		{"Evening (7:00 PM - 9:00 PM)", "Traditional dinner at a well-reviewed local restaurant ($35)"},
	}},
	{"Cultural Immersion", [3]staticSlot{
		{"Morning (9:00 AM - 12:00 PM)", "Visit the city museum and the historic district ($15)"},
		{"Afternoon (1:00 PM - 4:00 PM)", "Hands-on cultural workshop with a local guide ($40)"},
		{"Evening (7:00 PM - 9:00 PM)", "Dinner and an evening stroll through a lively neighbourhood ($30)"},
	}},
	{"Adventure & Discovery", [3]staticSlot{
		{"Morning (8:00 AM - 12:00 PM)", "Day trip to the countryside outside %s ($45)"},
		{"Afternoon (1:00 PM - 5:00 PM)", "Explore a park or garden off the usual tourist trail"},
		{"Evening (6:00 PM - 8:00 PM)", "Sunset viewing from a scenic lookout point"},
	}},
	{"Local Flavours", [3]staticSlot{
		{"Morning (9:00 AM - 11:00 AM)", "Breakfast at a neighbourhood café favoured by locals ($12)"},
		{"Afternoon (12:00 PM - 3:00 PM)", "Food market tour tasting regional specialities ($25)"},
		{"Evening (7:00 PM - 10:00 PM)", "Live music or a local show after dinner ($30)"},
	}},
	{"Slow Day & Hidden Corners", [3]staticSlot{
		{"Morning (10:00 AM - 12:00 PM)", "Leisurely walk through a quiet residential quarter"},
		{"Afternoon (1:00 PM - 4:00 PM)", "Browse independent shops and pick up souvenirs ($30)"},
		{"Evening (7:00 PM - 9:00 PM)", "Farewell dinner somewhere with a view of %s ($40)"},
	}},
}

// StaticItinerary renders a canned plan for destination in the same bullet
// layout the model is asked for. It stands in for model output when
// generation is unavailable.
func StaticItinerary(destination string, days int) string {
	if days < 1 {
		days = 1
	}
	if destination == "" {
		destination = "your destination"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %d-Day Itinerary for %s\n\n", days, destination)
	for d := 0; d < days; d++ {
		day := staticDays[d%len(staticDays)]
		fmt.Fprintf(&sb, "## Day %d: %s\n", d+1, day.theme)
		for _, s := range day.slots {
			text := s.text
			if strings.Contains(text, "%s") {
				text = fmt.Sprintf(text, destination)
			}
			fmt.Fprintf(&sb, "* %s: %s\n", s.label, text)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("This itinerary is a starting point and can be adjusted to your mood and energy levels.\n")
	return sb.String()
}
