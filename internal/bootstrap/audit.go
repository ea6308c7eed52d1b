package bootstrap

import "context"

// AuditLog represents a standardized event log entry.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records audit events.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
