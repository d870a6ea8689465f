package services

import (
	"fmt"
	"strings"
	"time"

	"reserve-management-api/models"
)

// RIDS workflow statuses (exact match with rids_forms.status).
const (
	RIDSStatusDraft     = "draft"
	RIDSStatusSubmitted = "submitted"
	RIDSStatusApproved  = "approved"
	RIDSStatusRejected  = "rejected"
)

// Action types recorded in rids_status_history.action_type.
const (
	ActionSubmit       = "submit"
	ActionApprove      = "approve"
	ActionReject       = "reject"
	ActionRevert       = "revert"
	ActionManualChange = "manual_change"
)

// ValidRIDSStatuses lists every recognized workflow status.
var ValidRIDSStatuses = []string{
	RIDSStatusDraft,
	RIDSStatusSubmitted,
	RIDSStatusApproved,
	RIDSStatusRejected,
}

// IsValidRIDSStatus reports whether s is a recognized workflow status.
func IsValidRIDSStatus(s string) bool {
	switch s {
	case RIDSStatusDraft, RIDSStatusSubmitted, RIDSStatusApproved, RIDSStatusRejected:
		return true
	}
	return false
}

// NormalizeRIDSStatus lowercases and trims a caller-supplied status value.
func NormalizeRIDSStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ===== Typed errors =====

// NotFoundError indicates the referenced RIDS form does not exist.
type NotFoundError struct {
	RIDSID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("RIDS form %d not found", e.RIDSID)
}

// ValidationError indicates malformed or missing input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvalidTransitionError indicates the current status forbids the requested
// transition. The current status is included so the UI can explain why the
// action is unavailable.
type InvalidTransitionError struct {
	Operation     string
	CurrentStatus string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s RIDS form while status is '%s'", e.Operation, e.CurrentStatus)
}

// NoOpError indicates the requested target status equals the current status.
type NoOpError struct {
	Status string
}

func (e *NoOpError) Error() string {
	return fmt.Sprintf("RIDS form is already in status '%s'", e.Status)
}

// StatusTransition describes a successful transition. The caller persists the
// updated form and appends the matching rids_status_history row.
type StatusTransition struct {
	RIDSID     int
	FromStatus string
	ToStatus   string
	ActionType string
	Reason     string
	Notes      *string
	ChangedBy  int
	ChangedAt  time.Time
}

// HistoryEntry converts the transition into a history row ready for insert.
func (t *StatusTransition) HistoryEntry() models.RIDSStatusHistory {
	return models.RIDSStatusHistory{
		RIDSID:     t.RIDSID,
		FromStatus: t.FromStatus,
		ToStatus:   t.ToStatus,
		Reason:     t.Reason,
		Notes:      t.Notes,
		ActionType: t.ActionType,
		ChangedBy:  t.ChangedBy,
		CreatedAt:  t.ChangedAt,
	}
}

// clearApprovalFields removes approver data from the form.
func clearApprovalFields(form *models.RIDSForm) {
	form.ApprovedBy = nil
	form.ApprovedAt = nil
}

// clearRejectionFields removes the rejection reason from the form.
func clearRejectionFields(form *models.RIDSForm) {
	form.RejectionReason = nil
}

// SubmitRIDS moves a draft or previously rejected form into the submitted
// state. The caller guarantees single-writer semantics per form (row-level
// transaction on the status column); this function performs no locking.
func SubmitRIDS(form *models.RIDSForm, actorID int, reason string, now time.Time) (*StatusTransition, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, &ValidationError{Field: "reason", Message: "reason is required"}
	}

	if form.Status != RIDSStatusDraft && form.Status != RIDSStatusRejected {
		return nil, &InvalidTransitionError{Operation: "submit", CurrentStatus: form.Status}
	}

	from := form.Status
	form.Status = RIDSStatusSubmitted
	form.SubmittedBy = &actorID
	submittedAt := now
	form.SubmittedAt = &submittedAt
	clearApprovalFields(form)
	clearRejectionFields(form)
	form.UpdateAt = now

	return &StatusTransition{
		RIDSID:     form.RIDSID,
		FromStatus: from,
		ToStatus:   RIDSStatusSubmitted,
		ActionType: ActionSubmit,
		Reason:     reason,
		ChangedBy:  actorID,
		ChangedAt:  now,
	}, nil
}

// ApproveRIDS moves a submitted form into the approved state.
func ApproveRIDS(form *models.RIDSForm, approverID int, reason string, notes *string, now time.Time) (*StatusTransition, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, &ValidationError{Field: "reason", Message: "reason is required"}
	}

	if form.Status != RIDSStatusSubmitted {
		return nil, &InvalidTransitionError{Operation: "approve", CurrentStatus: form.Status}
	}

	from := form.Status
	form.Status = RIDSStatusApproved
	form.ApprovedBy = &approverID
	approvedAt := now
	form.ApprovedAt = &approvedAt
	clearRejectionFields(form)
	form.UpdateAt = now

	return &StatusTransition{
		RIDSID:     form.RIDSID,
		FromStatus: from,
		ToStatus:   RIDSStatusApproved,
		ActionType: ActionApprove,
		Reason:     reason,
		Notes:      notes,
		ChangedBy:  approverID,
		ChangedAt:  now,
	}, nil
}

// RejectRIDS moves a submitted form into the rejected state. The rejection
// reason is mandatory and doubles as the history reason.
func RejectRIDS(form *models.RIDSForm, actorID int, rejectionReason string, notes *string, now time.Time) (*StatusTransition, error) {
	if strings.TrimSpace(rejectionReason) == "" {
		return nil, &ValidationError{Field: "rejection_reason", Message: "rejection reason is required"}
	}

	if form.Status != RIDSStatusSubmitted {
		return nil, &InvalidTransitionError{Operation: "reject", CurrentStatus: form.Status}
	}

	from := form.Status
	form.Status = RIDSStatusRejected
	reasonCopy := rejectionReason
	form.RejectionReason = &reasonCopy
	clearApprovalFields(form)
	form.UpdateAt = now

	return &StatusTransition{
		RIDSID:     form.RIDSID,
		FromStatus: from,
		ToStatus:   RIDSStatusRejected,
		ActionType: ActionReject,
		Reason:     rejectionReason,
		Notes:      notes,
		ChangedBy:  actorID,
		ChangedAt:  now,
	}, nil
}

// ChangeRIDSStatus is the generalized transition used by administrative
// override. Unlike the dedicated operations it accepts any recognized target
// status, including reverting approved/rejected forms back to draft.
func ChangeRIDSStatus(form *models.RIDSForm, newStatus, reason string, notes *string, actorID int, now time.Time) (*StatusTransition, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, &ValidationError{Field: "reason", Message: "reason is required"}
	}

	target := NormalizeRIDSStatus(newStatus)
	if !IsValidRIDSStatus(target) {
		return nil, &ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("unknown status '%s' (expected one of %s)", newStatus, strings.Join(ValidRIDSStatuses, ", ")),
		}
	}

	if target == form.Status {
		return nil, &NoOpError{Status: form.Status}
	}

	from := form.Status

	switch target {
	case RIDSStatusApproved:
		form.ApprovedBy = &actorID
		approvedAt := now
		form.ApprovedAt = &approvedAt
		clearRejectionFields(form)
	case RIDSStatusRejected:
		reasonCopy := reason
		form.RejectionReason = &reasonCopy
		clearApprovalFields(form)
	default: // draft or submitted
		clearApprovalFields(form)
		clearRejectionFields(form)
	}

	if target == RIDSStatusSubmitted {
		form.SubmittedBy = &actorID
		submittedAt := now
		form.SubmittedAt = &submittedAt
	}

	form.Status = target
	form.UpdateAt = now

	return &StatusTransition{
		RIDSID:     form.RIDSID,
		FromStatus: from,
		ToStatus:   target,
		ActionType: deriveActionType(from, target),
		Reason:     reason,
		Notes:      notes,
		ChangedBy:  actorID,
		ChangedAt:  now,
	}, nil
}

// deriveActionType classifies a generic status change for the history log.
// Moving an approved or rejected form back to draft is a revert; anything
// that matches a dedicated operation reuses its action type.
func deriveActionType(from, to string) string {
	switch to {
	case RIDSStatusSubmitted:
		return ActionSubmit
	case RIDSStatusApproved:
		return ActionApprove
	case RIDSStatusRejected:
		return ActionReject
	case RIDSStatusDraft:
		if from == RIDSStatusApproved || from == RIDSStatusRejected {
			return ActionRevert
		}
	}
	return ActionManualChange
}
