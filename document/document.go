package document

import "fmt"

// Terminal status values that trigger a webhook dispatch
const (
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// IsTerminal reports whether a status value is one of the two
// approval outcomes of interest
func IsTerminal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

/* Docstatus mirrors the host's document workflow state
 * Only submitted documents are eligible for webhook dispatch
 */
type Docstatus int

const (
	Draft Docstatus = iota
	Submitted
	Cancelled
)

// String returns the string representation of the docstatus
func (d Docstatus) String() string {
	switch d {
	case Draft:
		return "draft"
	case Submitted:
		return "submitted"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Validate checks if the docstatus is valid
func (d Docstatus) Validate() error {
	if d < Draft || d > Cancelled {
		return fmt.Errorf("invalid docstatus: %d", d)
	}
	return nil
}

/* Snapshot is an immutable capture of the document fields relevant to
 * webhook delivery, taken at trigger time. It crosses the async boundary
 * by value and is never read back from the host afterwards
 */
type Snapshot struct {
	Kind           Kind   `json:"doctype"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	ApprovalStatus string `json:"approval_status"`
	Employee       string `json:"employee"`
	Title          string `json:"title"`
	FromDate       string `json:"from_date"`
	Explanation    string `json:"explanation"`
}

// StatusValue returns the value of the kind's status attribute
func (s Snapshot) StatusValue() string {
	if s.Kind.StatusField() == "approval_status" {
		return s.ApprovalStatus
	}
	return s.Status
}

/* Document is the in-flight document handed over by the host's lifecycle
 * hook. Before holds the persisted state prior to the current save, as
 * captured by the host; nil means the host had no prior version available
 */
type Document struct {
	Snapshot
	IsNew     bool
	Docstatus Docstatus
	Before    *Snapshot
}
