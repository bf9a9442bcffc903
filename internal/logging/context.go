package logging

import (
	"context"
	"log/slog"
	"strings"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldProjectID is the standardized structured logging key for project identifiers.
	FieldProjectID = "project_id"
	// FieldClipID is the standardized structured logging key for clip identifiers.
	FieldClipID = "clip_id"
	// FieldAction is the standardized structured logging key for edit action tags.
	FieldAction = "action"
	// FieldEffect is the standardized structured logging key for effect identifiers.
	FieldEffect = "effect"
	// FieldParameter is the standardized structured logging key for parameter names.
	FieldParameter = "parameter"
)

type contextKey string

const (
	projectIDKey contextKey = "project_id"
	clipIDKey    contextKey = "clip_id"
	actionKey    contextKey = "action"
)

// WithProject attaches a project identifier to the context for log enrichment.
func WithProject(ctx context.Context, projectID string) context.Context {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return ctx
	}
	return context.WithValue(ctx, projectIDKey, projectID)
}

// ProjectFromContext returns the project identifier stored on the context, if any.
func ProjectFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(projectIDKey).(string)
	return value, ok && value != ""
}

// WithClip attaches a clip identifier to the context for log enrichment.
func WithClip(ctx context.Context, clipID string) context.Context {
	clipID = strings.TrimSpace(clipID)
	if clipID == "" {
		return ctx
	}
	return context.WithValue(ctx, clipIDKey, clipID)
}

// ClipFromContext returns the clip identifier stored on the context, if any.
func ClipFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(clipIDKey).(string)
	return value, ok && value != ""
}

// WithAction attaches an edit action tag to the context for log enrichment.
func WithAction(ctx context.Context, tag string) context.Context {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ctx
	}
	return context.WithValue(ctx, actionKey, tag)
}

// ActionFromContext returns the action tag stored on the context, if any.
func ActionFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(actionKey).(string)
	return value, ok && value != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := ProjectFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldProjectID, id))
	}
	if id, ok := ClipFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldClipID, id))
	}
	if tag, ok := ActionFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldAction, tag))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
