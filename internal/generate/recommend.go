package generate

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/tripgest/internal/trip"
)

// Recommendation is a suggested destination.
type Recommendation struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Reasoning   string   `json:"reasoning"`
	Confidence  float64  `json:"confidence"`
	Country     string   `json:"country"`
	DailyBudget float64  `json:"daily_budget"`
	BestMonths  []string `json:"best_months"`
}

const (
	defaultConfidence  = 0.85
	defaultDailyBudget = 100
)

var jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)

// DecodeRecommendations reads the model's JSON answer. Missing or mistyped
// fields get defaults; an unreadable or empty answer is an error.
func DecodeRecommendations(text string, p trip.Profile) ([]Recommendation, error) {
	clean := stripCodeBlock(text)
	if m := jsonArrayRe.FindString(clean); m != "" {
		clean = m
	}

	var raw []map[string]any
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return nil, fmt.Errorf("parse recommendations json: %w (raw: %s)", err, truncate(clean, 200))
	}
	if len(raw) == 0 {
		return nil, errors.New("no recommendations in response")
	}

	style := orDefault(p.TravelStyle, "preferred")
	recs := make([]Recommendation, 0, len(raw))
	for i, r := range raw {
		recs = append(recs, Recommendation{
			ID:          strconv.Itoa(i + 1),
			Title:       firstString(r, "Unknown Destination", "name", "destination", "title"),
			Description: firstString(r, "A wonderful travel destination.", "description"),
			Reasoning:   firstString(r, fmt.Sprintf("Perfect match for your %s travel style.", style), "reasoning", "why"),
			Confidence:  firstNumber(r, defaultConfidence, "confidence"),
			Country:     firstString(r, "Unknown", "country"),
			DailyBudget: firstNumber(r, defaultDailyBudget, "dailyBudget", "cost", "estimatedCost"),
			BestMonths:  firstStrings(r, []string{"Year-round"}, "bestTime", "bestMonths"),
		})
	}
	return recs, nil
}

func firstString(m map[string]any, def string, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return def
}

func firstNumber(m map[string]any, def float64, keys ...string) float64 {
	for _, k := range keys {
		if f, ok := m[k].(float64); ok {
			return f
		}
	}
	return def
}

func firstStrings(m map[string]any, def []string, keys ...string) []string {
	for _, k := range keys {
		arr, ok := m[k].([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(arr))
		for _, v := range arr {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return def
}

// MockRecommendations is the fixed set served when the model cannot answer.
func MockRecommendations(p trip.Profile) []Recommendation {
	style := orDefault(p.TravelStyle, "preferred")
	mood := orDefault(p.Mood, "current")
	interests := joinOr(p.Interests, "travel")
	return []Recommendation{
		{
			ID:          "1",
			Title:       "Kyoto, Japan",
			Description: "A perfect blend of ancient traditions and modern culture, ideal for cultural exploration.",
			Reasoning:   fmt.Sprintf("This destination aligns with your %s travel style and %s mood.", style, mood),
			Confidence:  0.92,
			Country:     "Japan",
			DailyBudget: 150,
			BestMonths:  []string{"March", "April", "October", "November"},
		},
		{
			ID:          "2",
			Title:       "Santorini, Greece",
			Description: "Stunning sunsets, white-washed buildings, and crystal-clear waters for the perfect romantic getaway.",
			Reasoning:   fmt.Sprintf("The peaceful atmosphere matches your %s mood perfectly.", mood),
			Confidence:  0.88,
			Country:     "Greece",
			DailyBudget: 120,
			BestMonths:  []string{"May", "June", "September", "October"},
		},
		{
			ID:          "3",
			Title:       "Bali, Indonesia",
			Description: "Tropical paradise perfect for relaxation and spiritual discovery.",
			Reasoning:   fmt.Sprintf("The wellness and nature focus matches your %s interests.", interests),
			Confidence:  0.85,
			Country:     "Indonesia",
			DailyBudget: 80,
			BestMonths:  []string{"April", "May", "June", "July", "August", "September"},
		},
		{
			ID:          "4",
			Title:       "Paris, France",
			Description: "The City of Light offers world-class art, cuisine, and romantic ambiance.",
			Reasoning:   fmt.Sprintf("Perfect for your %s style with amazing cultural experiences.", style),
			Confidence:  0.90,
			Country:     "France",
			DailyBudget: 180,
			BestMonths:  []string{"April", "May", "June", "September", "October"},
		},
	}
}
