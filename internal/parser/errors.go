package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// defaultRetryAfter is the circuit-open window used when a 429 arrives
// without a usable Retry-After hint.
const defaultRetryAfter = 60 * time.Second

// RateLimitError reports that a provider refused a page call with HTTP 429.
// The fallback chain reads RetryAfter to decide how long to route around the
// provider.
type RateLimitError struct {
	Provider   string
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("provider %s rate limited, retry after %s: %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// NewRateLimitError builds a RateLimitError from an explicit retry window in
// seconds. Zero or negative means the provider gave no hint, so the default
// window applies.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	window := time.Duration(retryAfterSecs) * time.Second
	if window <= 0 {
		window = defaultRetryAfter
	}
	return &RateLimitError{Provider: provider, RetryAfter: window, Err: err}
}

// RateLimitFromHeader builds a RateLimitError from a raw Retry-After header
// value. Only the integer-seconds form is recognized; empty or malformed
// values get the default window.
func RateLimitFromHeader(provider string, err error, header string) *RateLimitError {
	secs, convErr := strconv.Atoi(strings.TrimSpace(header))
	if convErr != nil {
		secs = 0
	}
	return NewRateLimitError(provider, err, secs)
}
