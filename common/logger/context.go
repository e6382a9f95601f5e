package logger

import (
	"context"
	"log/slog"
)

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields carries request-scoped identifiers that every log statement
// in that scope should include. Handlers and the worker enrich the
// context once; the slog handler picks the fields up automatically.
type LogFields struct {
	RequestID      *string // assigned by middleware
	OrganizationID *int64  // tenant agency
	ClientID       *int64  // pharma client account
	ProjectID      *int64
	ContentItemID  *int64
	MessageID      *string // Redis stream entry ID
	TaskType       *string // queue task type, e.g. "compliance_recheck"
	Component      string  // e.g. "newsroom.worker"
}

// WithLogFields layers fields onto the context. Values set here override
// earlier ones; fields left nil or empty keep their earlier values.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	return context.WithValue(ctx, logFieldsKey, GetLogFields(ctx).overlay(fields))
}

// GetLogFields returns the accumulated fields, or a zero value when the
// context carries none.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func (f LogFields) overlay(over LogFields) LogFields {
	out := f
	if over.RequestID != nil {
		out.RequestID = over.RequestID
	}
	if over.OrganizationID != nil {
		out.OrganizationID = over.OrganizationID
	}
	if over.ClientID != nil {
		out.ClientID = over.ClientID
	}
	if over.ProjectID != nil {
		out.ProjectID = over.ProjectID
	}
	if over.ContentItemID != nil {
		out.ContentItemID = over.ContentItemID
	}
	if over.MessageID != nil {
		out.MessageID = over.MessageID
	}
	if over.TaskType != nil {
		out.TaskType = over.TaskType
	}
	if over.Component != "" {
		out.Component = over.Component
	}
	return out
}

// attrs renders the set fields as slog attributes.
func (f LogFields) attrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, 8)
	if f.RequestID != nil {
		attrs = append(attrs, slog.String("request_id", *f.RequestID))
	}
	if f.OrganizationID != nil {
		attrs = append(attrs, slog.Int64("organization_id", *f.OrganizationID))
	}
	if f.ClientID != nil {
		attrs = append(attrs, slog.Int64("client_id", *f.ClientID))
	}
	if f.ProjectID != nil {
		attrs = append(attrs, slog.Int64("project_id", *f.ProjectID))
	}
	if f.ContentItemID != nil {
		attrs = append(attrs, slog.Int64("content_item_id", *f.ContentItemID))
	}
	if f.MessageID != nil {
		attrs = append(attrs, slog.String("message_id", *f.MessageID))
	}
	if f.TaskType != nil {
		attrs = append(attrs, slog.String("task_type", *f.TaskType))
	}
	if f.Component != "" {
		attrs = append(attrs, slog.String("component", f.Component))
	}
	return attrs
}

// Ptr makes a pointer from a value, for inline LogFields literals.
func Ptr[T any](v T) *T {
	return &v
}

// Truncate caps s at maxLen bytes, marking the cut with "...". For log
// statements that would otherwise carry whole prompts or bodies.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
