package generate

import (
	"fmt"
	"strings"

	"github.com/dgallion1/tripgest/internal/trip"
)

const systemPrompt = "You are an experienced travel planner who writes practical, personal trip plans."

// ItineraryRequest describes the trip an itinerary is written for.
type ItineraryRequest struct {
	Destination string           `json:"destination"`
	Country     string           `json:"country,omitempty"`
	Days        int              `json:"days"`
	Profile     trip.Profile     `json:"profile"`
	Preferences trip.Preferences `json:"preferences"`
}

// RecommendationRequest asks for destinations matching a traveler.
type RecommendationRequest struct {
	Profile     trip.Profile     `json:"profile"`
	Preferences trip.Preferences `json:"preferences"`
	Context     string           `json:"context,omitempty"`
}

// TipsRequest asks for advice about one destination.
type TipsRequest struct {
	Destination string       `json:"destination"`
	Country     string       `json:"country,omitempty"`
	Profile     trip.Profile `json:"profile"`
}

func place(destination, country string) string {
	if country == "" {
		return destination
	}
	return destination + ", " + country
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func joinOr(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}

// BuildItineraryPrompt asks for a day-by-day plan. The requested layout is
// the bullet form the itinerary parser reads most reliably, but the parser
// does not depend on the model following it.
func BuildItineraryPrompt(req ItineraryRequest) Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a detailed %d-day itinerary for %s.\n\n", req.Days, place(req.Destination, req.Country))
	sb.WriteString("Traveler Profile:\n")
	fmt.Fprintf(&sb, "- Travel Style: %s\n", orDefault(req.Profile.TravelStyle, "balanced"))
	fmt.Fprintf(&sb, "- Activity Level: %s\n", orDefault(req.Profile.ActivityLevel, "moderate"))
	fmt.Fprintf(&sb, "- Interests: %s\n", joinOr(req.Profile.Interests, "a bit of everything"))
	if b := req.Preferences.Budget; b.Max > 0 {
		fmt.Fprintf(&sb, "- Budget: $%.0f - $%.0f per day\n", b.Min, b.Max)
	}
	if len(req.Preferences.Activities) > 0 {
		fmt.Fprintf(&sb, "- Preferred Activities: %s\n", strings.Join(req.Preferences.Activities, ", "))
	}
	if len(req.Preferences.DietaryRestrictions) > 0 {
		fmt.Fprintf(&sb, "- Dietary Restrictions: %s\n", strings.Join(req.Preferences.DietaryRestrictions, ", "))
	}
	sb.WriteString(`
Create a day-by-day schedule with:
- Morning, afternoon, and evening activities
- Specific locations and attractions
- Estimated costs and duration
- Transportation between locations
- Restaurant recommendations
- Cultural experiences that match their interests

Start each day with a line like "Day 1: <theme>". Write each activity as a bullet such as
"* Morning (9:00 AM - 12:00 PM): <activity> ($cost)".

Make it feel personalized and exciting, like a friend who knows them well created it.`)

	return Prompt{Kind: KindItinerary, System: systemPrompt, User: sb.String(), MaxTokens: 4096}
}

// BuildRecommendationPrompt asks for exactly four destinations as JSON.
func BuildRecommendationPrompt(req RecommendationRequest) Prompt {
	p := req.Profile
	var sb strings.Builder
	sb.WriteString("You are a travel expert. Based on the traveler profile below, recommend exactly 4 destinations.\n\n")
	sb.WriteString("TRAVELER PROFILE:\n")
	b := req.Preferences.Budget
	fmt.Fprintf(&sb, "- Budget: $%.0f-%.0f %s per day\n", b.Min, b.Max, orDefault(b.Currency, "USD"))
	fmt.Fprintf(&sb, "- Trip Duration: %d-%d days\n", req.Preferences.MinDays, req.Preferences.MaxDays)
	fmt.Fprintf(&sb, "- Travel Style: %s\n", orDefault(p.TravelStyle, "balanced"))
	fmt.Fprintf(&sb, "- Activity Level: %s\n", orDefault(p.ActivityLevel, "moderate"))
	fmt.Fprintf(&sb, "- Social Preference: %s\n", orDefault(p.SocialPreference, "any"))
	fmt.Fprintf(&sb, "- Planning Style: %s\n", orDefault(p.PlanningStyle, "flexible"))
	fmt.Fprintf(&sb, "- Current Mood: %s\n", orDefault(p.Mood, "curious"))
	fmt.Fprintf(&sb, "- Interests: %s\n", joinOr(p.Interests, "a bit of everything"))
	if req.Context != "" {
		fmt.Fprintf(&sb, "- Additional: %s\n", req.Context)
	}
	sb.WriteString(`
REQUIRED: Return ONLY a valid JSON array with 4 destinations. No additional text, explanations, or markdown formatting.

JSON FORMAT:
[
  {
    "name": "City, Country",
    "description": "Brief description of why this destination is perfect",
    "reasoning": "Specific explanation of why this matches their profile",
    "country": "Country Name",
    "dailyBudget": 120,
    "bestMonths": ["Month1", "Month2"],
    "confidence": 0.9
  }
]

Return the JSON array now:`)

	return Prompt{Kind: KindRecommendations, User: sb.String(), MaxTokens: 2048}
}

// BuildTipsPrompt asks for five to seven tips, one per line.
func BuildTipsPrompt(req TipsRequest) Prompt {
	p := req.Profile
	user := fmt.Sprintf(`Generate 5-7 personalized travel tips for someone visiting %s.
Consider their travel style: %s, activity level: %s, and interests: %s.
Make the tips practical, specific, and tailored to their personality. Put each tip on its own line.`,
		place(req.Destination, req.Country),
		orDefault(p.TravelStyle, "balanced"),
		orDefault(p.ActivityLevel, "moderate"),
		joinOr(p.Interests, "a bit of everything"))
	return Prompt{Kind: KindTips, System: systemPrompt, User: user, MaxTokens: 1024}
}
