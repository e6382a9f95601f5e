package worker

import (
	"context"

	"inkwire.app/newsroom/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// Processor handles one parsed task message. Implementations must be
// idempotent: the reclaimer can replay a message that was processed but
// never acknowledged.
type Processor interface {
	Process(ctx context.Context, msg queue.Message) error
}
