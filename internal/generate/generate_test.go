package generate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/logutil"
	"github.com/dgallion1/tripgest/internal/trip"
)

type fakeClient struct {
	text  string
	err   error
	calls []Prompt
}

func (f *fakeClient) Complete(_ context.Context, p Prompt) (string, error) {
	f.calls = append(f.calls, p)
	return f.text, f.err
}
func (f *fakeClient) Model() string { return "fake" }
func (f *fakeClient) Close()        {}

func newTestPlanner(c Client) *Planner {
	return NewPlanner(c, nil, logutil.Discard())
}

func TestClaudeClient_Complete(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "secret" {
			t.Errorf("expected api key header, got %q", r.Header.Get("x-api-key"))
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"content":[{"type":"text","text":"Day 1: Arrival"}]}`))
	}))
	defer srv.Close()

	c := NewClaudeClient("secret", "claude-test", 0)
	c.endpoint = srv.URL
	text, err := c.Complete(context.Background(), Prompt{System: "sys", User: "hello"})
	if err != nil {
		t.Fatal(err)
	}
	if text != "Day 1: Arrival" {
		t.Errorf("expected %q, got %q", "Day 1: Arrival", text)
	}
	if got.System != "sys" || got.Model != "claude-test" || got.MaxTokens != 4096 {
		t.Errorf("unexpected request %+v", got)
	}
}

func TestClaudeClient_RetryableStatus(t *testing.T) {
	for _, code := range []int{http.StatusTooManyRequests, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			w.Write([]byte(`{"error":{"type":"overloaded_error","message":"busy"}}`))
		}))
		c := NewClaudeClient("k", "m", 0)
		c.endpoint = srv.URL
		_, err := c.Complete(context.Background(), Prompt{User: "x"})
		srv.Close()

		var re *RetryableError
		if !errors.As(err, &re) || re.StatusCode != code {
			t.Errorf("status %d: expected RetryableError, got %v", code, err)
		}
	}
}

func TestClaudeClient_ClientErrorNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"bad"}}`))
	}))
	defer srv.Close()

	c := NewClaudeClient("k", "m", 0)
	c.endpoint = srv.URL
	_, err := c.Complete(context.Background(), Prompt{User: "x"})
	var re *RetryableError
	if err == nil || errors.As(err, &re) {
		t.Errorf("expected non-retryable error, got %v", err)
	}
}

func TestOpenAIClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-test",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Day 1: Lisbon"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("k", "gpt-test", srv.URL+"/v1", 0)
	text, err := c.Complete(context.Background(), Prompt{System: "s", User: "u"})
	if err != nil {
		t.Fatal(err)
	}
	if text != "Day 1: Lisbon" {
		t.Errorf("expected %q, got %q", "Day 1: Lisbon", text)
	}
}

func TestOpenAIClient_ServerErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"message":"down","type":"server_error"}}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("k", "gpt-test", srv.URL+"/v1", 0)
	_, err := c.Complete(context.Background(), Prompt{User: "u"})
	var re *RetryableError
	if !errors.As(err, &re) || re.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected RetryableError 503, got %v", err)
	}
}

func TestStaticItinerary_Parses(t *testing.T) {
	for _, days := range []int{1, 3, 7} {
		text := StaticItinerary("Porto", days)
		res := itinerary.Parse(text, itinerary.Options{Destination: "Porto", DurationDays: days})
		if res.Degraded {
			t.Fatalf("%d days: static itinerary did not parse", days)
		}
		if len(res.Activities) != days*3 {
			t.Errorf("%d days: expected %d activities, got %d", days, days*3, len(res.Activities))
		}
		last := res.Activities[len(res.Activities)-1]
		if last.Day != days {
			t.Errorf("%d days: expected last activity on day %d, got %d", days, days, last.Day)
		}
	}
}

func TestMockClient_ItineraryFollowsPrompt(t *testing.T) {
	m := NewMockClient()
	text, err := m.Complete(context.Background(), BuildItineraryPrompt(ItineraryRequest{Destination: "Hanoi", Country: "Vietnam", Days: 2}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "2-Day Itinerary for Hanoi, Vietnam") {
		t.Errorf("expected header for Hanoi, got %q", text[:60])
	}
	if strings.Contains(text, "Day 3") {
		t.Error("expected only two days")
	}
}

func TestDecodeRecommendations(t *testing.T) {
	text := "Here you go!\n```json\n" + `[
  {"name": "Lisbon, Portugal", "country": "Portugal", "dailyBudget": 110, "bestMonths": ["May"], "confidence": 0.93,
   "description": "Hills and tiles", "reasoning": "Walkable"},
  {"destination": "Oaxaca, Mexico", "cost": 70, "confidence": "high", "bestTime": ["November"]},
  {"title": "Tromsø"}
]` + "\n```"
	recs, err := DecodeRecommendations(text, trip.Profile{TravelStyle: "cultural"})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	if recs[0].Title != "Lisbon, Portugal" || recs[0].DailyBudget != 110 || recs[0].Confidence != 0.93 {
		t.Errorf("unexpected first recommendation %+v", recs[0])
	}
	if recs[1].Title != "Oaxaca, Mexico" || recs[1].DailyBudget != 70 || recs[1].Confidence != 0.85 {
		t.Errorf("unexpected second recommendation %+v", recs[1])
	}
	if recs[1].BestMonths[0] != "November" {
		t.Errorf("expected bestTime alias, got %v", recs[1].BestMonths)
	}
	third := recs[2]
	if third.DailyBudget != 100 || third.Country != "Unknown" || third.BestMonths[0] != "Year-round" {
		t.Errorf("expected defaults on third, got %+v", third)
	}
	if !strings.Contains(third.Reasoning, "cultural") {
		t.Errorf("expected reasoning to mention travel style, got %q", third.Reasoning)
	}
	if third.ID != "3" {
		t.Errorf("expected id 3, got %q", third.ID)
	}
}

func TestDecodeRecommendations_Errors(t *testing.T) {
	for _, text := range []string{"", "no json here", "[]", "[{broken"} {
		if _, err := DecodeRecommendations(text, trip.Profile{}); err == nil {
			t.Errorf("expected error for %q", text)
		}
	}
}

func TestPlanner_RecommendationsFallback(t *testing.T) {
	p := newTestPlanner(&fakeClient{text: "Sorry, I can't help with that."})
	recs, err := p.Recommendations(context.Background(), RecommendationRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 4 || recs[0].Title != "Kyoto, Japan" {
		t.Errorf("expected mock recommendations, got %+v", recs)
	}

	p = newTestPlanner(&fakeClient{err: errors.New("boom")})
	recs, err = p.Recommendations(context.Background(), RecommendationRequest{})
	if err != nil || len(recs) != 4 {
		t.Errorf("expected mock recommendations on upstream error, got %v %v", recs, err)
	}
	if p.Stats().Fallbacks != 1 || p.Stats().Failures != 1 {
		t.Errorf("unexpected stats %+v", p.Stats())
	}
}

func TestPlanner_RecommendationsFromMockClient(t *testing.T) {
	p := newTestPlanner(NewMockClient())
	recs, err := p.Recommendations(context.Background(), RecommendationRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 4 || recs[3].Title != "Paris, France" || recs[3].DailyBudget != 180 {
		t.Errorf("unexpected recommendations %+v", recs)
	}
	if p.Stats().Fallbacks != 0 {
		t.Error("mock client JSON should decode without fallback")
	}
}

func TestPlanner_TravelTips(t *testing.T) {
	answer := "Here are tips:\n\n1. Carry cash\n- Ride the tram early\n* Eat late\n\n4) Learn \"obrigado\"\n5. a\n6. b\n7. c\n8. d"
	p := newTestPlanner(&fakeClient{text: answer})
	tips, err := p.TravelTips(context.Background(), TipsRequest{Destination: "Lisbon"})
	if err != nil {
		t.Fatal(err)
	}
	if len(tips) != MaxTips {
		t.Fatalf("expected %d tips, got %d: %q", MaxTips, len(tips), tips)
	}
	if tips[1] != "Carry cash" || tips[4] != `Learn "obrigado"` {
		t.Errorf("expected list markers stripped, got %q", tips)
	}

	p = newTestPlanner(&fakeClient{err: errors.New("down")})
	tips, _ = p.TravelTips(context.Background(), TipsRequest{Destination: "Lisbon"})
	if len(tips) != 7 || !strings.Contains(tips[2], "Lisbon") {
		t.Errorf("expected mock tips for Lisbon, got %q", tips)
	}
}

func TestPlanner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := newTestPlanner(NewMockClient())
	if _, err := p.Recommendations(ctx, RecommendationRequest{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if _, err := p.ItineraryText(ctx, ItineraryRequest{Destination: "Rome", Days: 2}); err == nil {
		t.Error("expected itinerary error on cancelled context")
	}
}

func TestPlanner_ItineraryPrompt(t *testing.T) {
	fc := &fakeClient{text: "ok"}
	p := newTestPlanner(fc)
	_, err := p.ItineraryText(context.Background(), ItineraryRequest{
		Destination: "Kyoto",
		Days:        0,
		Profile:     trip.Profile{TravelStyle: "cultural", Interests: []string{"temples", "tea"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(fc.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(fc.calls))
	}
	user := fc.calls[0].User
	if !strings.Contains(user, "1-day itinerary for Kyoto") || !strings.Contains(user, "temples, tea") {
		t.Errorf("unexpected prompt %q", user)
	}
	if fc.calls[0].Kind != KindItinerary {
		t.Errorf("expected itinerary kind, got %q", fc.calls[0].Kind)
	}
}
