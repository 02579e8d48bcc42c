package bootstrap

import "context"

// AuditLog is a process lifecycle event (start, shutdown), distinct from the
// per-user activity log kept in the database.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
