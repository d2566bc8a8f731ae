package redis

import (
	"context"
	"time"

	"github.com/marcelsud/approval-relay/delivery"
	"github.com/marcelsud/approval-relay/errlog"
)

// Handler processes one delivery job to completion
type Handler interface {
	Deliver(ctx context.Context, job delivery.Job)
}

/* Run consumes jobs until the context is cancelled, handing each one to the
 * handler and acknowledging it afterwards. Handlers never report failure
 * (delivery outcomes live in the audit log), so every processed entry is
 * acked; an entry is redelivered only if the worker dies mid-attempt
 */
func (q *Queue) Run(ctx context.Context, handler Handler, errorLog errlog.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		messages, err := q.Consume(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			errorLog.Error("queue consume failed", err)
			time.Sleep(1 * time.Second)
			continue
		}

		for _, msg := range messages {
			if msg.Task == delivery.TaskDeliverWebhook {
				handler.Deliver(ctx, msg.Job)
			}
			if err := q.Acknowledge(ctx, msg.ID); err != nil {
				errorLog.Error("queue acknowledge failed", err)
			}
		}
	}
}
