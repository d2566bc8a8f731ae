package webhooklog

import (
	"fmt"
	"time"

	"github.com/marcelsud/approval-relay/document"
)

/* Status represents the outcome recorded for one delivery attempt
 * There is no intermediate state: an entry is written once, after the
 * attempt finished, and never updated
 */
type Status int

const (
	Success Status = iota + 1
	Error
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// NewStatus creates a Status from a string
func NewStatus(str string) Status {
	switch str {
	case "success":
		return Success
	case "error":
		return Error
	default:
		return Error
	}
}

// Validate checks if the status is valid
func (s Status) Validate() error {
	if s != Success && s != Error {
		return fmt.Errorf("invalid log status: %d", s)
	}
	return nil
}

/* Entry is one append-only audit record per delivery attempt
 * RequestPayload holds the serialized outbound body (possibly empty when
 * the attempt failed before payload construction finished), Response the
 * raw endpoint response on success, ErrorTrace the failure detail on error
 */
type Entry struct {
	ID             string
	Status         Status
	Kind           document.Kind
	ReferenceName  string
	RequestPayload []byte
	Response       string
	ErrorTrace     string
	CreatedAt      time.Time
}

// Validate checks the entry invariants before it is persisted
func (e Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entry ID cannot be empty")
	}
	if err := e.Status.Validate(); err != nil {
		return fmt.Errorf("validating entry status: %w", err)
	}
	if err := e.Kind.Validate(); err != nil {
		return fmt.Errorf("validating entry kind: %w", err)
	}
	if e.ReferenceName == "" {
		return fmt.Errorf("entry reference name cannot be empty")
	}
	return nil
}
