package trigger_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/marcelsud/approval-relay/delivery"
	"github.com/marcelsud/approval-relay/document"
	errlogmocks "github.com/marcelsud/approval-relay/errlog/mocks"
	"github.com/marcelsud/approval-relay/hooks"
	"github.com/marcelsud/approval-relay/settings"
	settingsmocks "github.com/marcelsud/approval-relay/settings/mocks"
	"github.com/marcelsud/approval-relay/trigger"
	"github.com/marcelsud/approval-relay/trigger/mocks"
	"github.com/stretchr/testify/mock"
)

func submittedDoc(kind document.Kind, status string) document.Document {
	doc := document.Document{
		Snapshot: document.Snapshot{
			Kind:     kind,
			Name:     "DOC-0001",
			Employee: "EMP-0007",
		},
		IsNew:     false,
		Docstatus: document.Submitted,
	}
	if kind.StatusField() == "approval_status" {
		doc.ApprovalStatus = status
	} else {
		doc.Status = status
	}
	return doc
}

func withPrior(doc document.Document, status string) document.Document {
	before := doc.Snapshot
	if doc.Kind.StatusField() == "approval_status" {
		before.ApprovalStatus = status
	} else {
		before.Status = status
	}
	doc.Before = &before
	return doc
}

func newService(t *testing.T) (*trigger.Service, *mocks.Queue, *settingsmocks.Source, *errlogmocks.Logger) {
	queue := mocks.NewQueue(t)
	src := settingsmocks.NewSource(t)
	elog := errlogmocks.NewLogger(t)
	svc := trigger.NewService(hooks.Default(), src, queue, elog)
	return svc, queue, src, elog
}

func enabledSettings() settings.Settings {
	return settings.New(true, "https://hooks.example.com/ess", "s3cret")
}

func TestHandleEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("qualifying transition enqueues exactly one job", func(t *testing.T) {
		svc, queue, src, _ := newService(t)
		doc := withPrior(submittedDoc(document.LeaveApplication, "Approved"), "Open")

		src.On("Get", ctx).Return(enabledSettings(), nil)
		queue.On("Enqueue", ctx, delivery.TaskDeliverWebhook, delivery.MatchJob(func(j delivery.Job) bool {
			return j.ID != "" &&
				j.Snapshot.Kind == document.LeaveApplication &&
				j.Snapshot.Status == "Approved" &&
				j.Snapshot.Employee == "EMP-0007" &&
				j.Endpoint.URL == "https://hooks.example.com/ess" &&
				j.Endpoint.Secret == "s3cret"
		})).Return(nil).Once()

		svc.HandleEvent(ctx, doc, hooks.EventValidate)

		queue.AssertNumberOfCalls(t, "Enqueue", 1)
	})

	t.Run("expense claim transition is detected on approval_status", func(t *testing.T) {
		svc, queue, src, _ := newService(t)
		doc := submittedDoc(document.ExpenseClaim, "Rejected")
		doc.Title = "Taxi fares"
		doc = withPrior(doc, "Draft")

		src.On("Get", ctx).Return(enabledSettings(), nil)
		queue.On("Enqueue", ctx, delivery.TaskDeliverWebhook, delivery.MatchJob(func(j delivery.Job) bool {
			return j.Snapshot.Kind == document.ExpenseClaim &&
				j.Snapshot.ApprovalStatus == "Rejected" &&
				j.Snapshot.Title == "Taxi fares"
		})).Return(nil).Once()

		svc.HandleEvent(ctx, doc, hooks.EventValidate)
	})

	t.Run("new document is ignored", func(t *testing.T) {
		svc, _, _, _ := newService(t)
		doc := withPrior(submittedDoc(document.LeaveApplication, "Approved"), "Open")
		doc.IsNew = true

		svc.HandleEvent(ctx, doc, hooks.EventValidate)
	})

	t.Run("draft document is ignored", func(t *testing.T) {
		svc, _, _, _ := newService(t)
		doc := withPrior(submittedDoc(document.LeaveApplication, "Approved"), "Open")
		doc.Docstatus = document.Draft

		svc.HandleEvent(ctx, doc, hooks.EventValidate)
	})

	t.Run("missing prior snapshot skips silently", func(t *testing.T) {
		svc, _, _, _ := newService(t)
		doc := submittedDoc(document.LeaveApplication, "Approved")

		svc.HandleEvent(ctx, doc, hooks.EventValidate)
	})

	t.Run("re-save with unchanged terminal status dispatches nothing", func(t *testing.T) {
		svc, _, _, _ := newService(t)
		doc := withPrior(submittedDoc(document.AttendanceRequest, "Approved"), "Approved")

		svc.HandleEvent(ctx, doc, hooks.EventValidate)
	})

	t.Run("transition to a non-terminal status dispatches nothing", func(t *testing.T) {
		svc, _, _, _ := newService(t)
		doc := withPrior(submittedDoc(document.LeaveApplication, "Cancelled"), "Approved")

		svc.HandleEvent(ctx, doc, hooks.EventValidate)
	})

	t.Run("webhooks disabled means no dispatch regardless of transition", func(t *testing.T) {
		svc, _, src, _ := newService(t)
		doc := withPrior(submittedDoc(document.LeaveApplication, "Approved"), "Open")

		src.On("Get", ctx).Return(settings.New(false, "https://hooks.example.com/ess", "s3cret"), nil)

		svc.HandleEvent(ctx, doc, hooks.EventValidate)
	})

	t.Run("unregistered event is ignored", func(t *testing.T) {
		svc, _, _, _ := newService(t)
		doc := withPrior(submittedDoc(document.LeaveApplication, "Approved"), "Open")

		svc.HandleEvent(ctx, doc, "on_trash")
	})

	t.Run("unsupported kind is ignored", func(t *testing.T) {
		svc, _, _, _ := newService(t)
		doc := withPrior(submittedDoc(document.Kind(0), "Approved"), "Open")

		svc.HandleEvent(ctx, doc, hooks.EventValidate)
	})

	t.Run("settings failure is reported, never propagated", func(t *testing.T) {
		svc, _, src, elog := newService(t)
		doc := withPrior(submittedDoc(document.LeaveApplication, "Approved"), "Open")

		src.On("Get", ctx).Return(settings.Settings{}, fmt.Errorf("settings store down"))
		elog.On("Error", "webhook settings read failed", mock.Anything).Once()

		svc.HandleEvent(ctx, doc, hooks.EventValidate)
	})

	t.Run("enqueue failure is reported, never propagated", func(t *testing.T) {
		svc, queue, src, elog := newService(t)
		doc := withPrior(submittedDoc(document.LeaveApplication, "Approved"), "Open")

		src.On("Get", ctx).Return(enabledSettings(), nil)
		queue.On("Enqueue", ctx, delivery.TaskDeliverWebhook, mock.Anything).Return(fmt.Errorf("redis down"))
		elog.On("Error", "webhook enqueue failed", mock.Anything).Once()

		svc.HandleEvent(ctx, doc, hooks.EventValidate)
	})
}
