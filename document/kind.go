package document

import (
	"encoding/json"
	"fmt"
)

/* Kind identifies one of the supported HR document types.
 * Each kind carries its own status attribute and payload projection,
 * resolved through explicit per-kind lookups instead of dynamic field access
 */
type Kind int

const (
	AttendanceRequest Kind = iota + 1
	LeaveApplication
	ExpenseClaim
)

// String returns the host-side doctype name
func (k Kind) String() string {
	switch k {
	case AttendanceRequest:
		return "Attendance Request"
	case LeaveApplication:
		return "Leave Application"
	case ExpenseClaim:
		return "Expense Claim"
	default:
		return "unknown"
	}
}

// NewKind creates a Kind from the host-side doctype name
// Unknown names map to the zero Kind, which fails Validate
func NewKind(s string) Kind {
	switch s {
	case "Attendance Request":
		return AttendanceRequest
	case "Leave Application":
		return LeaveApplication
	case "Expense Claim":
		return ExpenseClaim
	default:
		return Kind(0)
	}
}

// Validate checks if the kind is one of the supported doctypes
func (k Kind) Validate() error {
	if k < AttendanceRequest || k > ExpenseClaim {
		return fmt.Errorf("invalid document kind: %d", k)
	}
	return nil
}

// MarshalJSON encodes the kind as the host-side doctype name
func (k Kind) MarshalJSON() ([]byte, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a doctype name into a Kind
// Unknown names decode to the zero Kind rather than erroring, so that the
// worker's own kind check decides what to do with them
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("unmarshaling document kind: %w", err)
	}
	*k = NewKind(s)
	return nil
}

/* StatusField returns the name of the attribute that carries the approval
 * outcome for this kind. Expense Claims track it in approval_status,
 * everything else in status
 */
func (k Kind) StatusField() string {
	if k == ExpenseClaim {
		return "approval_status"
	}
	return "status"
}
