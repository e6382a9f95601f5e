package queue

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Message is one parsed stream entry. Raw keeps the original entry so a
// message that fails processing can be acked or dead-lettered as-is.
type Message struct {
	ID             string
	TaskType       TaskType
	ContentItemID  *int64
	EventKind      string
	OrganizationID *int64
	ProjectID      *int64
	ActorID        *int64
	Attempt        int
	TraceID        string
	Raw            redis.XMessage
}

// MessageProcessor processes a queue message.
type MessageProcessor func(ctx context.Context, msg Message) error

// ParseMessage decodes a stream entry into a Message and validates the
// fields its task type requires.
func ParseMessage(msg redis.XMessage) (Message, error) {
	f := fieldReader{values: msg.Values}

	parsed := Message{
		ID:             msg.ID,
		ContentItemID:  f.int64Ptr("content_item_id"),
		OrganizationID: f.int64Ptr("organization_id"),
		ProjectID:      f.int64Ptr("project_id"),
		ActorID:        f.int64Ptr("actor_id"),
		EventKind:      f.str("event_kind"),
		TraceID:        f.str("trace_id"),
		Attempt:        f.intOr("attempt", 1),
		TaskType:       TaskType(f.str("task_type")),
		Raw:            msg,
	}
	if f.err != nil {
		return Message{}, f.err
	}

	switch parsed.TaskType {
	case "":
		return Message{}, fmt.Errorf("missing task_type")
	case TaskTypeComplianceRecheck:
		if parsed.ContentItemID == nil {
			return Message{}, fmt.Errorf("missing content_item_id")
		}
	case TaskTypeNotifyEvent:
		if parsed.EventKind == "" {
			return Message{}, fmt.Errorf("missing event_kind")
		}
		if parsed.OrganizationID == nil {
			return Message{}, fmt.Errorf("missing organization_id")
		}
	default:
		return Message{}, fmt.Errorf("unknown task_type %q", parsed.TaskType)
	}

	return parsed, nil
}

// fieldReader pulls typed values out of a stream entry's field map,
// remembering the first parse error it hits. Absent keys read as zero
// values; task-type validation decides which of those are fatal.
type fieldReader struct {
	values map[string]any
	err    error
}

func (f *fieldReader) int64Ptr(key string) *int64 {
	raw, ok := f.values[key]
	if !ok || f.err != nil {
		return nil
	}
	num, err := strconv.ParseInt(fmt.Sprint(raw), 10, 64)
	if err != nil {
		f.err = fmt.Errorf("parsing %s: %w", key, err)
		return nil
	}
	return &num
}

func (f *fieldReader) str(key string) string {
	raw, ok := f.values[key]
	if !ok || f.err != nil {
		return ""
	}
	return fmt.Sprint(raw)
}

func (f *fieldReader) intOr(key string, fallback int) int {
	raw, ok := f.values[key]
	if !ok || f.err != nil {
		return fallback
	}
	num, err := strconv.Atoi(fmt.Sprint(raw))
	if err != nil {
		f.err = fmt.Errorf("parsing %s: %w", key, err)
		return fallback
	}
	if num == 0 {
		return fallback
	}
	return num
}

// messageValues serializes a Message back into stream fields for requeue
// and dead-letter entries.
func messageValues(msg Message, attempt int) map[string]any {
	values := map[string]any{
		"task_type": string(msg.TaskType),
		"attempt":   attempt,
	}

	if msg.ContentItemID != nil {
		values["content_item_id"] = *msg.ContentItemID
	}
	if msg.EventKind != "" {
		values["event_kind"] = msg.EventKind
	}
	if msg.OrganizationID != nil {
		values["organization_id"] = *msg.OrganizationID
	}
	if msg.ProjectID != nil {
		values["project_id"] = *msg.ProjectID
	}
	if msg.ActorID != nil {
		values["actor_id"] = *msg.ActorID
	}
	if msg.TraceID != "" {
		values["trace_id"] = msg.TraceID
	}

	return values
}
