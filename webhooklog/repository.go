package webhooklog

import (
	"context"

	"github.com/marcelsud/approval-relay/document"
)

/* Small, focused interfaces: the worker only needs Append, the operational
 * surface only needs the readers
 */

// Writer appends delivery attempt entries to the audit log
type Writer interface {
	// Append durably stores one entry. The log is append-only: entries are
	// never updated or deleted by this system
	Append(ctx context.Context, entry Entry) error
}

// Reader provides read access to the audit log
type Reader interface {
	Get(ctx context.Context, id string) (Entry, error)
	GetByReference(ctx context.Context, kind document.Kind, name string, limit int) ([]Entry, error)
}

// Repository combines the audit log operations with lifecycle management
type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
