package bootstrap

import (
	"context"
	"time"
)

const (
	AuditServerShutdown    = "SERVER_SHUTDOWN"
	AuditRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// AuditLog is one operational event worth keeping beyond the process logs.
type AuditLog struct {
	Action    string         `json:"action"`
	Message   string         `json:"message"`
	Meta      map[string]any `json:"meta,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// AuditLogger records audit events. Implementations must not block the
// caller for long and report their own failures through zap.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

func stamp(entry AuditLog) AuditLog {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	return entry
}
