package document_test

import (
	"testing"

	"github.com/marcelsud/approval-relay/document"
	"github.com/stretchr/testify/assert"
)

func TestIsTerminal(t *testing.T) {
	assert.True(t, document.IsTerminal(document.StatusApproved))
	assert.True(t, document.IsTerminal(document.StatusRejected))
	assert.False(t, document.IsTerminal("Open"))
	assert.False(t, document.IsTerminal("Draft"))
	assert.False(t, document.IsTerminal(""))
}

func TestSnapshotStatusValue(t *testing.T) {
	t.Run("expense claims read approval_status", func(t *testing.T) {
		snap := document.Snapshot{
			Kind:           document.ExpenseClaim,
			Status:         "Submitted",
			ApprovalStatus: "Rejected",
		}
		assert.Equal(t, "Rejected", snap.StatusValue())
	})

	t.Run("other kinds read status", func(t *testing.T) {
		snap := document.Snapshot{
			Kind:           document.LeaveApplication,
			Status:         "Approved",
			ApprovalStatus: "ignored",
		}
		assert.Equal(t, "Approved", snap.StatusValue())
	})
}

func TestDocstatus(t *testing.T) {
	assert.Equal(t, "draft", document.Draft.String())
	assert.Equal(t, "submitted", document.Submitted.String())
	assert.Equal(t, "cancelled", document.Cancelled.String())
	assert.Equal(t, "unknown", document.Docstatus(9).String())

	assert.NoError(t, document.Submitted.Validate())
	assert.Error(t, document.Docstatus(9).Validate())
}
