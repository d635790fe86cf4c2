package generate

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

// MaxTips caps the number of tips returned.
const MaxTips = 7

// Planner runs the travel prompts against a Client and records call latency.
type Planner struct {
	client Client
	stats  *LLMStats
	log    *slog.Logger
}

func NewPlanner(client Client, stats *LLMStats, log *slog.Logger) *Planner {
	if stats == nil {
		stats = NewLLMStats(time.Hour)
	}
	return &Planner{client: client, stats: stats, log: log}
}

func (p *Planner) Model() string        { return p.client.Model() }
func (p *Planner) Stats() StatsSnapshot { return p.stats.Snapshot() }

func (p *Planner) complete(ctx context.Context, pr Prompt) (string, error) {
	start := time.Now()
	text, err := p.client.Complete(ctx, pr)
	p.stats.Record(time.Since(start).Milliseconds(), err != nil)
	return text, err
}

// ItineraryText returns the model's raw itinerary text. Errors are returned
// unchanged so the caller can retry or fall back to StaticItinerary.
func (p *Planner) ItineraryText(ctx context.Context, req ItineraryRequest) (string, error) {
	if req.Days < 1 {
		req.Days = 1
	}
	return p.complete(ctx, BuildItineraryPrompt(req))
}

// Recommendations returns four destinations for the traveler. Upstream and
// decode failures are served from MockRecommendations; only a cancelled
// context is reported as an error.
func (p *Planner) Recommendations(ctx context.Context, req RecommendationRequest) ([]Recommendation, error) {
	text, err := p.complete(ctx, BuildRecommendationPrompt(req))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.log.Warn("recommendations failed, using defaults", "error", err)
		p.stats.RecordFallback()
		return MockRecommendations(req.Profile), nil
	}

	recs, err := DecodeRecommendations(text, req.Profile)
	if err != nil {
		p.log.Warn("recommendations unreadable, using defaults", "error", err)
		p.stats.RecordFallback()
		return MockRecommendations(req.Profile), nil
	}
	return recs, nil
}

var tipMarkerRe = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s*`)

// SplitTips turns a model answer into at most MaxTips non-empty lines with
// list markers removed.
func SplitTips(text string) []string {
	var tips []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(tipMarkerRe.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		tips = append(tips, line)
		if len(tips) == MaxTips {
			break
		}
	}
	return tips
}

// TravelTips returns up to MaxTips tips, falling back to MockTips when the
// model fails or answers with nothing usable.
func (p *Planner) TravelTips(ctx context.Context, req TipsRequest) ([]string, error) {
	text, err := p.complete(ctx, BuildTipsPrompt(req))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.log.Warn("travel tips failed, using defaults", "error", err)
		p.stats.RecordFallback()
		return MockTips(req.Destination), nil
	}
	tips := SplitTips(text)
	if len(tips) == 0 {
		p.stats.RecordFallback()
		return MockTips(req.Destination), nil
	}
	return tips, nil
}
