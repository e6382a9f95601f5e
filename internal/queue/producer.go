package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

type TaskMessage struct {
	TaskType       TaskType
	ContentItemID  *int64
	EventKind      string
	OrganizationID *int64
	ProjectID      *int64
	ActorID        *int64
	TraceID        *string
	Attempt        int
}

type Producer interface {
	Enqueue(ctx context.Context, msg TaskMessage) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Enqueue(ctx context.Context, msg TaskMessage) error {
	attempt := msg.Attempt
	if attempt <= 0 {
		attempt = 1
	}

	fields := map[string]any{
		"task_type": string(msg.TaskType),
		"attempt":   attempt,
	}

	if msg.ContentItemID != nil {
		fields["content_item_id"] = *msg.ContentItemID
	}
	if msg.EventKind != "" {
		fields["event_kind"] = msg.EventKind
	}
	if msg.OrganizationID != nil {
		fields["organization_id"] = *msg.OrganizationID
	}
	if msg.ProjectID != nil {
		fields["project_id"] = *msg.ProjectID
	}
	if msg.ActorID != nil {
		fields["actor_id"] = *msg.ActorID
	}

	traceID := ""
	if msg.TraceID != nil {
		traceID = *msg.TraceID
	}
	if traceID == "" {
		// Link the task back to the request span that produced it.
		if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
			traceID = spanCtx.TraceID().String()
		}
	}
	if traceID != "" {
		fields["trace_id"] = traceID
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: fields,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue task: %w", err)
	}

	p.logger.InfoContext(ctx, "enqueued task", "task_type", msg.TaskType, "event_kind", msg.EventKind, "attempt", attempt)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}
