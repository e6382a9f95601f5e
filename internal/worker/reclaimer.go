package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"inkwire.app/newsroom/common/logger"
	"inkwire.app/newsroom/internal/queue"
)

type ReclaimerConfig struct {
	Stream    string
	Group     string
	Consumer  string
	MinIdle   time.Duration
	Interval  time.Duration
	BatchSize int64
}

// Reclaimer sweeps the consumer group for messages left pending by a
// worker that died between XREADGROUP and XACK, claims them, and runs
// them through the normal processor. Task handlers are idempotent, so
// a double delivery is safe.
type Reclaimer struct {
	client    *redis.Client
	cfg       ReclaimerConfig
	consumer  *queue.RedisConsumer
	processor queue.MessageProcessor

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewReclaimer(client *redis.Client, cfg ReclaimerConfig, consumer *queue.RedisConsumer, processor queue.MessageProcessor) *Reclaimer {
	return &Reclaimer{
		client:    client,
		cfg:       cfg,
		consumer:  consumer,
		processor: processor,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Run blocks, sweeping once per interval, until Stop or ctx cancellation.
func (r *Reclaimer) Run(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "newsroom.worker.reclaimer",
	})
	defer close(r.stoppedCh)

	slog.InfoContext(ctx, "reclaimer started",
		"stream", r.cfg.Stream,
		"group", r.cfg.Group,
		"min_idle", r.cfg.MinIdle,
		"interval", r.cfg.Interval)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			slog.InfoContext(ctx, "reclaimer stopping")
			return
		case <-ticker.C:
			if err := r.sweep(ctx); err != nil {
				slog.ErrorContext(ctx, "reclaim sweep failed", "error", err)
			}
		}
	}
}

func (r *Reclaimer) Stop() {
	close(r.stopCh)
	<-r.stoppedCh
}

// sweep claims up to BatchSize stale pending messages in a single XCLAIM
// and redelivers each one to the processor.
func (r *Reclaimer) sweep(ctx context.Context) error {
	pending, err := r.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: r.cfg.Stream,
		Group:  r.cfg.Group,
		Idle:   r.cfg.MinIdle,
		Start:  "-",
		End:    "+",
		Count:  r.cfg.BatchSize,
	}).Result()
	if err != nil {
		return fmt.Errorf("xpending: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	ids := make([]string, 0, len(pending))
	for _, p := range pending {
		ids = append(ids, p.ID)
		slog.InfoContext(ctx, "claiming stale message",
			"message_id", p.ID,
			"original_consumer", p.Consumer,
			"idle", p.Idle,
			"deliveries", p.RetryCount)
	}

	// XCLAIM honors MinIdle, so anything another consumer claimed in the
	// meantime has a fresh idle time and is skipped here.
	claimed, err := r.client.XClaim(ctx, &redis.XClaimArgs{
		Stream:   r.cfg.Stream,
		Group:    r.cfg.Group,
		Consumer: r.cfg.Consumer,
		MinIdle:  r.cfg.MinIdle,
		Messages: ids,
	}).Result()
	if err != nil {
		return fmt.Errorf("xclaim: %w", err)
	}

	for _, msg := range claimed {
		r.redeliver(ctx, msg)
	}
	return nil
}

func (r *Reclaimer) redeliver(ctx context.Context, msg redis.XMessage) {
	msgID := msg.ID
	ctx = logger.WithLogFields(ctx, logger.LogFields{MessageID: &msgID})

	parsed, err := queue.ParseMessage(msg)
	if err != nil {
		// A message that cannot parse now never will. Ack it out of the
		// pending list instead of reclaiming it every cycle.
		slog.ErrorContext(ctx, "dropping unparseable reclaimed message", "error", err)
		_ = r.consumer.Ack(ctx, queue.Message{ID: msg.ID, Raw: msg})
		return
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrganizationID: parsed.OrganizationID,
		ProjectID:      parsed.ProjectID,
		ContentItemID:  parsed.ContentItemID,
	})

	start := time.Now()
	if err := r.processor(ctx, parsed); err != nil {
		slog.ErrorContext(ctx, "reclaimed message failed", "error", err)
		return
	}

	slog.InfoContext(ctx, "reclaimed message processed",
		"duration_ms", time.Since(start).Milliseconds())
}
