package contextutil

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// contextKey is private so keys never collide with other packages.
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	actorKey     contextKey = "actor"
	loggerKey    contextKey = "logger"
)

// SystemActorName is used for attribution when no user is attached to ctx.
const SystemActorName = "System"

// Actor identifies who is performing an operation. It replaces a
// process-wide "current user" and travels with the request context.
type Actor struct {
	UserID     string
	Email      string
	Name       string
	Role       string
	EmployeeID string
}

// HasRole reports whether the actor holds one of roles, ignoring case.
func (a Actor) HasRole(roles ...string) bool {
	for _, r := range roles {
		if strings.EqualFold(a.Role, r) {
			return true
		}
	}
	return false
}

// IsAnonymous is true for internal calls made without a user attached.
func (a Actor) IsAnonymous() bool {
	return a.UserID == ""
}

// DisplayName prefers the email, then the name, then SystemActorName.
func (a Actor) DisplayName() string {
	if a.Email != "" {
		return a.Email
	}
	if a.Name != "" {
		return a.Name
	}
	return SystemActorName
}

// --- Request ID Helpers ---

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// --- Actor Helpers ---

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor returns the actor stored in ctx, or the zero Actor.
func GetActor(ctx context.Context) Actor {
	if ctx == nil {
		return Actor{}
	}
	if a, ok := ctx.Value(actorKey).(Actor); ok {
		return a
	}
	return Actor{}
}

// GetUserID is a shortcut for GetActor(ctx).UserID.
func GetUserID(ctx context.Context) string {
	return GetActor(ctx).UserID
}

// --- Logger Helpers ---

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request-scoped logger, falling back to
// defaultLogger and finally to a no-op logger.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}

	if defaultLogger != nil {
		return defaultLogger
	}

	return zap.NewNop()
}

type Metadata struct {
	RequestID string
	UserID    string
}

func ExtractMetadata(ctx context.Context) Metadata {
	return Metadata{
		RequestID: GetRequestID(ctx),
		UserID:    GetUserID(ctx),
	}
}
