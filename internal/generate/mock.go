package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/tripgest/internal/trip"
)

// MockClient answers every prompt with canned content. It is used when no
// provider is configured and in tests.
type MockClient struct{}

func NewMockClient() *MockClient { return &MockClient{} }

var itineraryHeadRe = regexp.MustCompile(`Create a detailed (\d+)-day itinerary for ([^\n]+?)\.\n`)

func (m *MockClient) Complete(ctx context.Context, p Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch p.Kind {
	case KindItinerary:
		days, dest := 3, "your destination"
		if sm := itineraryHeadRe.FindStringSubmatch(p.User); sm != nil {
			days, _ = strconv.Atoi(sm[1])
			dest = sm[2]
		}
		return StaticItinerary(dest, days), nil
	case KindRecommendations:
		recs := MockRecommendations(trip.Profile{})
		out := make([]map[string]any, 0, len(recs))
		for _, r := range recs {
			out = append(out, map[string]any{
				"name":        r.Title,
				"description": r.Description,
				"reasoning":   r.Reasoning,
				"country":     r.Country,
				"dailyBudget": r.DailyBudget,
				"bestMonths":  r.BestMonths,
				"confidence":  r.Confidence,
			})
		}
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", err
		}
		return "```json\n" + string(b) + "\n```", nil
	case KindTips:
		return strings.Join(MockTips("your destination"), "\n"), nil
	default:
		return "", fmt.Errorf("mock: unsupported prompt kind %q", p.Kind)
	}
}

func (m *MockClient) Model() string { return "mock" }

func (m *MockClient) Close() {}

// MockTips is the canned advice returned when tips cannot be generated.
func MockTips(destination string) []string {
	return []string{
		"Learn a few basic phrases in the local language - locals appreciate the effort",
		"Download offline maps before you go to avoid data charges",
		fmt.Sprintf("Pack layers as weather can change quickly in %s", destination),
		"Try the local street food - it's often the most authentic experience",
		"Book popular attractions in advance to avoid disappointment",
		"Keep copies of important documents in separate locations",
		"Respect local customs and dress codes, especially at religious sites",
	}
}
