// Package generate talks to the language model that writes itineraries,
// destination recommendations and travel tips.
package generate

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/tripgest/internal/config"
)

// Kind names what a prompt asks for.
type Kind string

const (
	KindItinerary       Kind = "itinerary"
	KindRecommendations Kind = "recommendations"
	KindTips            Kind = "tips"
)

// Prompt is one completion request.
type Prompt struct {
	Kind      Kind
	System    string
	User      string
	MaxTokens int
}

// Client is a text completion provider.
type Client interface {
	Complete(ctx context.Context, p Prompt) (string, error)
	Model() string
	Close()
}

// NewClient builds the provider named by cfg.LLMProvider.
func NewClient(cfg config.Config) (Client, error) {
	switch cfg.LLMProvider {
	case "anthropic":
		return NewClaudeClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.LLMTimeout), nil
	case "openai":
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.LLMTimeout), nil
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func retryableStatus(code int) bool {
	return code == 429 || code >= 500
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
