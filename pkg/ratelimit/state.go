// Package ratelimit implements a client-side request budget for the
// Lomography API. The upstream publishes no rate limit headers, so the
// budget counts our own requests per fixed window and gates new requests
// before the upstream would start rejecting them. State lives in Redis so
// every client instance sharing an API key shares the budget.
package ratelimit

import (
	"time"
)

// RedisKeyWindowPrefix is the prefix for per-window request counters.
// The full key carries the window start as a unix timestamp suffix.
const RedisKeyWindowPrefix = "lomo:rate_limit:window"

// Defaults for the request budget.
const (
	// DefaultLimit is the number of requests allowed per window.
	DefaultLimit = 300

	// DefaultWindow is the budget window length.
	DefaultWindow = time.Minute

	// ThrottleThreshold applies pacing when the remaining budget in the
	// current window falls below this value.
	ThrottleThreshold = 30
)

// BudgetState is a snapshot of the request budget for one window.
type BudgetState struct {
	// Used is the number of requests already counted in this window,
	// including the one being gated.
	Used int `json:"used"`

	// Limit is the window's request allowance.
	Limit int `json:"limit"`

	// WindowEnds is when the current window rolls over and the count resets.
	WindowEnds time.Time `json:"window_ends"`
}

// Remaining returns the number of requests left in the window.
// Never negative.
func (s *BudgetState) Remaining() int {
	remaining := s.Limit - s.Used
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Exhausted returns true if the window's allowance is spent and requests
// should be blocked until the window rolls over.
func (s *BudgetState) Exhausted() bool {
	return s.Used > s.Limit
}

// NeedsThrottling returns true if the remaining budget is low enough that
// requests should be paced rather than sent at full speed.
func (s *BudgetState) NeedsThrottling() bool {
	return !s.Exhausted() && s.Remaining() < ThrottleThreshold
}

// TimeUntilReset returns the duration until the window rolls over.
// Returns 0 if the window has already ended.
func (s *BudgetState) TimeUntilReset() time.Duration {
	duration := time.Until(s.WindowEnds)
	if duration < 0 {
		return 0
	}
	return duration
}
