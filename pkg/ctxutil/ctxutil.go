// Package ctxutil carries request-scoped identifiers through a context.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey string

const (
	workspaceIDKey ctxKey = "workspace_id"
	requestIDKey   ctxKey = "request_id"
)

// WithWorkspaceID stores the authenticated workspace ID in the context.
func WithWorkspaceID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, workspaceIDKey, id)
}

// WorkspaceIDFromCtx extracts the workspace ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func WorkspaceIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(workspaceIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx returns the request ID, or "" if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// LogAttrs returns the identifiers present in ctx as log attributes.
func LogAttrs(ctx context.Context) []any {
	var attrs []any
	if id := RequestIDFromCtx(ctx); id != "" {
		attrs = append(attrs, slog.String(string(requestIDKey), id))
	}
	if id, ok := WorkspaceIDFromCtx(ctx); ok {
		attrs = append(attrs, slog.String(string(workspaceIDKey), id.String()))
	}
	return attrs
}
