// Package ratelimit tracks GitHub API rate limit state and gates requests.
// It monitors the X-RateLimit-Remaining and X-RateLimit-Reset headers so
// concurrent fetches sharing one token stop before the quota is spent and a
// wave of 403 responses begins.
package ratelimit

import (
	"time"
)

// Redis keys for rate limit state storage. State lives in Redis so every
// process using the same token sees one shared budget.
const (
	RedisKeyRemaining      = "github:rate_limit:remaining"
	RedisKeyLimit          = "github:rate_limit:limit"
	RedisKeyResetTimestamp = "github:rate_limit:reset_timestamp"
	RedisKeyLastUpdate     = "github:rate_limit:last_update"
)

// Thresholds for rate limit decisions, in requests remaining. GitHub's
// primary limit for authenticated requests is 5000 per hour.
const (
	// ThresholdCritical blocks all requests when the remaining budget falls
	// below this value, keeping headroom for in-flight work.
	ThresholdCritical = 10

	// ThresholdWarning applies throttling when the remaining budget falls
	// below this value.
	ThresholdWarning = 100

	// ThresholdHealthy indicates normal operation: at or above this value
	// no restrictions apply.
	ThresholdHealthy = 500
)

// State represents the current GitHub rate limit state shared across all
// client instances via Redis.
type State struct {
	// Remaining is the number of requests left in the current window,
	// from the X-RateLimit-Remaining header.
	Remaining int `json:"remaining"`

	// Limit is the total request budget for the window, from the
	// X-RateLimit-Limit header.
	Limit int `json:"limit"`

	// ResetAt is when the window resets, from the X-RateLimit-Reset header
	// (unix epoch seconds).
	ResetAt time.Time `json:"reset_at"`

	// LastUpdate is when this state was last refreshed from headers.
	LastUpdate time.Time `json:"last_update"`

	// IsHealthy is true when Remaining >= ThresholdHealthy.
	IsHealthy bool `json:"is_healthy"`
}

// IsStale returns true if the state data is older than the given duration.
func (s *State) IsStale(maxAge time.Duration) bool {
	return time.Since(s.LastUpdate) > maxAge
}

// NeedsCriticalBlock returns true if requests should be blocked until the
// window resets.
func (s *State) NeedsCriticalBlock() bool {
	return s.Remaining < ThresholdCritical && time.Now().Before(s.ResetAt)
}

// NeedsThrottling returns true if requests should be slowed down.
func (s *State) NeedsThrottling() bool {
	return s.Remaining < ThresholdWarning && !s.NeedsCriticalBlock()
}

// TimeUntilReset returns the duration until the window resets.
// Returns 0 if the reset time has already passed.
func (s *State) TimeUntilReset() time.Duration {
	duration := time.Until(s.ResetAt)
	if duration < 0 {
		return 0
	}
	return duration
}

// UpdateHealth updates the IsHealthy field from the current Remaining value.
func (s *State) UpdateHealth() {
	s.IsHealthy = s.Remaining >= ThresholdHealthy
}
