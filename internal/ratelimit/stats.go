package ratelimit

import (
	"context"
	"time"
)

// StatsEvent is one limiter decision as seen by the HTTP layer.
type StatsEvent struct {
	Key     string
	Allowed bool
	Method  string
	Path    string
	At      time.Time
}

// StatsStore persists decision counters. Recording is best effort: callers
// log failures and never fail the request because of them.
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
