package pipeline

import (
	"errors"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/dgallion1/tripgest/internal/generate"
)

// MaxRetries bounds itinerary generation attempts per job.
const MaxRetries = 3

const (
	maxBackoff       = 30 * time.Second
	rateLimitBackoff = 5 * time.Second
)

// IsRetryable reports whether a generation error is worth another attempt:
// provider 429/5xx answers and network timeouts.
func IsRetryable(err error) bool {
	var retryErr *generate.RetryableError
	if errors.As(err, &retryErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Backoff returns the wait before retry attempt n (0-indexed): exponential
// from one second with up to 50% jitter, capped at 30s. Rate-limited calls
// wait at least five seconds.
func Backoff(err error, attempt int) time.Duration {
	base := maxBackoff
	if attempt < 5 {
		base = min(time.Second<<attempt, maxBackoff)
	}
	var retryErr *generate.RetryableError
	if errors.As(err, &retryErr) && retryErr.StatusCode == http.StatusTooManyRequests {
		base = max(base, rateLimitBackoff)
	}
	return base + time.Duration(rand.Int64N(int64(base)/2))
}
