// Package ratelimit guards the MCP tools with per-tool token buckets.
package ratelimit

import (
	"fmt"

	"golang.org/x/time/rate"
)

// ToolLimiters maps tool names to their rate limiters.
type ToolLimiters map[string]*rate.Limiter

// NewToolLimiters creates the default set of per-tool rate limiters.
// Simulation is the expensive call and gets the tightest limit; the
// read-only tools are generous.
func NewToolLimiters() ToolLimiters {
	return ToolLimiters{
		"localint_simulate":      rate.NewLimiter(20.0/60.0, 5), // 20/minute, burst 5
		"localint_best_response": rate.NewLimiter(1, 10),        // 60/minute, burst 10
		"localint_topology":      rate.NewLimiter(1, 10),        // 60/minute, burst 10
		"localint_runs":          rate.NewLimiter(1, 10),        // 60/minute, burst 10
	}
}

// CheckLimit checks the rate limit for a given tool name.
// Returns nil if allowed, or an error if rate limited.
// Tools without a configured limiter are always allowed.
func CheckLimit(limiters ToolLimiters, toolName string) error {
	limiter, ok := limiters[toolName]
	if !ok {
		return nil
	}
	if !limiter.Allow() {
		return fmt.Errorf("rate limit exceeded for %s, please try again shortly", toolName)
	}
	return nil
}
