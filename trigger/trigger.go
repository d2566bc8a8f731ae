package trigger

import (
	"context"

	"github.com/google/uuid"

	"github.com/marcelsud/approval-relay/delivery"
	"github.com/marcelsud/approval-relay/document"
	"github.com/marcelsud/approval-relay/errlog"
	"github.com/marcelsud/approval-relay/hooks"
	"github.com/marcelsud/approval-relay/settings"
)

/* Queue is the one-way handoff to the background execution facility
 * Enqueue returns once the job is accepted; there is no result channel and
 * no cancellation handle. Execution is at-least-once on an external worker
 */
type Queue interface {
	Enqueue(ctx context.Context, task string, job delivery.Job) error
}

// UseCase defines the change detection operation exposed to the HTTP layer
type UseCase interface {
	HandleEvent(ctx context.Context, doc document.Document, event string)
}

/* Service is the change detector. It runs synchronously on the host's save
 * path, so it must stay fast and must never perform the delivery itself.
 * Nothing it does is allowed to fail the document save: every internal
 * failure terminates in the process error log
 */
type Service struct {
	Hooks    *hooks.Loader
	Settings settings.Source
	Queue    Queue
	ErrorLog errlog.Logger
}

// NewService creates a change detector with dependency injection
func NewService(hookLoader *hooks.Loader, src settings.Source, queue Queue, errorLog errlog.Logger) *Service {
	return &Service{
		Hooks:    hookLoader,
		Settings: src,
		Queue:    queue,
		ErrorLog: errorLog,
	}
}

/* HandleEvent decides whether the save that fired the lifecycle event is a
 * webhook-worthy status transition and, if so, enqueues exactly one
 * delivery job. Dispatch happens at most once per actual transition, not
 * per save: a re-save with an unchanged terminal status is a no-op
 */
func (s *Service) HandleEvent(ctx context.Context, doc document.Document, event string) {
	if !s.Hooks.Match(doc.Kind, event) {
		return
	}
	if doc.IsNew || doc.Docstatus != document.Submitted {
		return
	}

	// Without the prior persisted state there is no transition to compare
	// against; skipping silently is deliberate, not a failure
	if doc.Before == nil {
		return
	}
	before := *doc.Before
	before.Kind = doc.Kind

	current := doc.StatusValue()
	if current == before.StatusValue() || !document.IsTerminal(current) {
		return
	}

	cfg, err := s.Settings.Get(ctx)
	if err != nil {
		s.ErrorLog.Error("webhook settings read failed", err)
		return
	}
	if !cfg.Enabled {
		return
	}

	job := delivery.Job{
		ID:       uuid.New().String(),
		Snapshot: doc.Snapshot,
		Endpoint: delivery.Endpoint{
			URL:    cfg.URL,
			Secret: cfg.Secret(),
		},
	}

	if err := s.Queue.Enqueue(ctx, delivery.TaskDeliverWebhook, job); err != nil {
		s.ErrorLog.Error("webhook enqueue failed", err)
	}
}
