package delivery

import (
	"errors"

	"github.com/marcelsud/approval-relay/document"
)

// ErrUnsupportedKind is returned when a snapshot carries a kind outside the
// fixed target set. The trigger never enqueues such jobs; this is a safeguard
var ErrUnsupportedKind = errors.New("unsupported document kind")

/* BuildPayload projects a snapshot into the kind-specific outbound payload.
 * The field set per kind is fixed:
 *   Attendance Request: doctype, employee, status, from_date, explanation
 *   Leave Application:  doctype, employee, status
 *   Expense Claim:      doctype, employee, approval_status, title
 */
func BuildPayload(snap document.Snapshot) (map[string]string, error) {
	switch snap.Kind {
	case document.AttendanceRequest:
		return map[string]string{
			"doctype":     snap.Kind.String(),
			"employee":    snap.Employee,
			"status":      snap.Status,
			"from_date":   snap.FromDate,
			"explanation": snap.Explanation,
		}, nil
	case document.LeaveApplication:
		return map[string]string{
			"doctype":  snap.Kind.String(),
			"employee": snap.Employee,
			"status":   snap.Status,
		}, nil
	case document.ExpenseClaim:
		return map[string]string{
			"doctype":         snap.Kind.String(),
			"employee":        snap.Employee,
			"approval_status": snap.ApprovalStatus,
			"title":           snap.Title,
		}, nil
	default:
		return nil, ErrUnsupportedKind
	}
}
