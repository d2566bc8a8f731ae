package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/marcelsud/approval-relay/document"
	"github.com/marcelsud/approval-relay/errlog"
	"github.com/marcelsud/approval-relay/webhooklog"
)

// Timeout is the fixed per-request delivery timeout
const Timeout = 15 * time.Second

// Recorder observes delivery attempt outcomes
// Implemented by the metrics package; optional on the worker
type Recorder interface {
	RecordAttempt(ctx context.Context, kind document.Kind, status webhooklog.Status, elapsed time.Duration)
}

/* Worker performs one webhook delivery per job: build the payload, POST it,
 * write exactly one audit entry with the outcome. It has no caller awaiting
 * its result, never retries, and never lets a failure escape its boundary
 */
type Worker struct {
	Client   *http.Client
	Logs     webhooklog.Writer
	ErrorLog errlog.Logger
	Metrics  Recorder
}

// NewWorker creates a delivery worker with the fixed delivery timeout
func NewWorker(logs webhooklog.Writer, errorLog errlog.Logger) *Worker {
	return &Worker{
		Client:   &http.Client{Timeout: Timeout},
		Logs:     logs,
		ErrorLog: errorLog,
	}
}

/* Deliver runs one delivery attempt to completion.
 * The terminal-status check and the kind check are repeated here as defense
 * in depth against stale or duplicate enqueues; a job that fails either
 * check is dropped without an audit entry, every other outcome writes one
 */
func (w *Worker) Deliver(ctx context.Context, job Job) {
	if !document.IsTerminal(job.Snapshot.StatusValue()) {
		return
	}

	payload, err := BuildPayload(job.Snapshot)
	if errors.Is(err, ErrUnsupportedKind) {
		return
	}

	started := time.Now()
	body, response, err := w.send(ctx, job.Endpoint, payload)
	elapsed := time.Since(started)

	if err != nil {
		w.append(ctx, webhooklog.Entry{
			ID:             uuid.New().String(),
			Status:         webhooklog.Error,
			Kind:           job.Snapshot.Kind,
			ReferenceName:  job.Snapshot.Name,
			RequestPayload: body,
			ErrorTrace:     fmt.Sprintf("%+v", err),
			CreatedAt:      time.Now(),
		})
		w.observe(ctx, job, webhooklog.Error, elapsed)
		return
	}

	w.append(ctx, webhooklog.Entry{
		ID:             uuid.New().String(),
		Status:         webhooklog.Success,
		Kind:           job.Snapshot.Kind,
		ReferenceName:  job.Snapshot.Name,
		RequestPayload: body,
		Response:       response,
		CreatedAt:      time.Now(),
	})
	w.observe(ctx, job, webhooklog.Success, elapsed)
}

/* send serializes and POSTs the payload. It returns the serialized body even
 * on failure so the audit entry can record what was attempted; the body is
 * nil only when serialization itself failed
 */
func (w *Worker) send(ctx context.Context, endpoint Endpoint, payload map[string]string) ([]byte, string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.URL, bytes.NewReader(body))
	if err != nil {
		return body, "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-webhook-secret", endpoint.Secret)

	resp, err := w.Client.Do(req)
	if err != nil {
		return body, "", fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return body, "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return body, "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, respBody)
	}

	return body, string(respBody), nil
}

// append writes the audit entry, falling back to the process error log
// when the audit store itself is unavailable
func (w *Worker) append(ctx context.Context, entry webhooklog.Entry) {
	if err := w.Logs.Append(ctx, entry); err != nil {
		w.ErrorLog.Error("webhook log write failed", err)
	}
}

func (w *Worker) observe(ctx context.Context, job Job, status webhooklog.Status, elapsed time.Duration) {
	if w.Metrics == nil {
		return
	}
	w.Metrics.RecordAttempt(ctx, job.Snapshot.Kind, status, elapsed)
}
