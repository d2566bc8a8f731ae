package delivery

import (
	"fmt"

	"github.com/marcelsud/approval-relay/document"
)

// TaskDeliverWebhook identifies the delivery task on the job queue
const TaskDeliverWebhook = "webhook.deliver"

/* Endpoint is the delivery target copied out of the settings source at
 * trigger time. It travels inside the job so the worker never performs a
 * second settings lookup from the background context
 */
type Endpoint struct {
	URL    string `json:"url"`
	Secret string `json:"secret"`
}

/* Job is the unit handed across the async boundary: one captured document
 * snapshot plus the endpoint to deliver it to. Jobs are independent; no
 * ordering is guaranteed between jobs for the same document
 */
type Job struct {
	ID       string            `json:"id"`
	Snapshot document.Snapshot `json:"snapshot"`
	Endpoint Endpoint          `json:"endpoint"`
}

// Validate checks the job invariants before it is enqueued
func (j Job) Validate() error {
	if j.ID == "" {
		return fmt.Errorf("job ID cannot be empty")
	}
	if err := j.Snapshot.Kind.Validate(); err != nil {
		return fmt.Errorf("validating job kind: %w", err)
	}
	if j.Endpoint.URL == "" {
		return fmt.Errorf("job endpoint URL cannot be empty")
	}
	return nil
}
