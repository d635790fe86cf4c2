package trip

import (
	"errors"
	"fmt"
	"slices"
)

// Profile is the traveler personality questionnaire used to steer generation.
type Profile struct {
	TravelStyle      string   `json:"travel_style"`
	ActivityLevel    string   `json:"activity_level"`
	SocialPreference string   `json:"social_preference"`
	PlanningStyle    string   `json:"planning_style"`
	Interests        []string `json:"interests"`
	Mood             string   `json:"mood"`
}

var (
	travelStyles      = []string{"adventure", "relaxation", "cultural", "luxury", "budget", "family"}
	activityLevels    = []string{"low", "moderate", "high"}
	socialPreferences = []string{"solo", "couple", "small-group", "large-group"}
	planningStyles    = []string{"spontaneous", "flexible", "structured"}
	moods             = []string{"excited", "stressed", "curious", "adventurous", "peaceful"}
)

// Validate rejects values outside the questionnaire options. Empty fields
// are allowed.
func (p Profile) Validate() error {
	var errs []error
	check := func(field, v string, allowed []string) {
		if v != "" && !slices.Contains(allowed, v) {
			errs = append(errs, fmt.Errorf("%s: unknown value %q", field, v))
		}
	}
	check("travel_style", p.TravelStyle, travelStyles)
	check("activity_level", p.ActivityLevel, activityLevels)
	check("social_preference", p.SocialPreference, socialPreferences)
	check("planning_style", p.PlanningStyle, planningStyles)
	check("mood", p.Mood, moods)
	return errors.Join(errs...)
}

// Budget is a per-day spending range.
type Budget struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// Preferences are the practical constraints of a traveler.
type Preferences struct {
	Budget              Budget   `json:"budget"`
	MinDays             int      `json:"min_days"`
	MaxDays             int      `json:"max_days"`
	Accommodation       []string `json:"accommodation,omitempty"`
	Transportation      []string `json:"transportation,omitempty"`
	Climate             []string `json:"climate,omitempty"`
	Activities          []string `json:"activities,omitempty"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
}
