package parser_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kyclens/internal/parser"
)

func TestRateLimitError_ErrorString(t *testing.T) {
	underlying := fmt.Errorf("rate limited")
	rlErr := parser.NewRateLimitError("claude", underlying, 30)

	assert.Contains(t, rlErr.Error(), "claude")
	assert.Contains(t, rlErr.Error(), "rate limited")
	assert.Contains(t, rlErr.Error(), "30s")
}

func TestRateLimitError_Unwrap(t *testing.T) {
	underlying := fmt.Errorf("underlying error")
	rlErr := parser.NewRateLimitError("openai", underlying, 60)

	assert.Equal(t, underlying, errors.Unwrap(rlErr))
}

func TestRateLimitError_ErrorsAs(t *testing.T) {
	underlying := fmt.Errorf("rate limited")
	rlErr := parser.NewRateLimitError("claude", underlying, 30)

	// Wrap it further
	wrapped := fmt.Errorf("parse failed: %w", rlErr)

	var target *parser.RateLimitError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "claude", target.Provider)
	assert.Equal(t, 30*time.Second, target.RetryAfter)
}

func TestNewRateLimitError_DefaultWindow(t *testing.T) {
	assert.Equal(t, 60*time.Second, parser.NewRateLimitError("openai", fmt.Errorf("err"), 0).RetryAfter)
	assert.Equal(t, 60*time.Second, parser.NewRateLimitError("openai", fmt.Errorf("err"), -5).RetryAfter)
}

func TestRateLimitFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{"integer seconds", "30", 30 * time.Second},
		{"padded", " 120 ", 120 * time.Second},
		{"empty falls back", "", 60 * time.Second},
		{"malformed falls back", "Wed, 21 Oct 2026 07:28:00 GMT", 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rlErr := parser.RateLimitFromHeader("claude", fmt.Errorf("429"), tt.header)
			assert.Equal(t, tt.want, rlErr.RetryAfter)
			assert.Equal(t, "claude", rlErr.Provider)
		})
	}
}
