package services

import (
	"errors"
	"testing"
	"time"

	"reserve-management-api/models"
)

func testNow() time.Time {
	return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
}

func formInStatus(status string) *models.RIDSForm {
	form := &models.RIDSForm{
		RIDSID:      42,
		ReservistID: 7,
		Status:      status,
	}
	switch status {
	case RIDSStatusSubmitted:
		submitter := 7
		at := testNow().Add(-24 * time.Hour)
		form.SubmittedBy = &submitter
		form.SubmittedAt = &at
	case RIDSStatusApproved:
		submitter := 7
		approver := 3
		at := testNow().Add(-24 * time.Hour)
		form.SubmittedBy = &submitter
		form.SubmittedAt = &at
		form.ApprovedBy = &approver
		form.ApprovedAt = &at
	case RIDSStatusRejected:
		submitter := 7
		reason := "incomplete emergency contact"
		at := testNow().Add(-24 * time.Hour)
		form.SubmittedBy = &submitter
		form.SubmittedAt = &at
		form.RejectionReason = &reason
	}
	return form
}

// checkDecisionFields asserts the invariant that at most one of the approval
// pair and the rejection reason is populated after a transition.
func checkDecisionFields(t *testing.T, form *models.RIDSForm) {
	t.Helper()
	approved := form.ApprovedBy != nil || form.ApprovedAt != nil
	rejected := form.RejectionReason != nil
	if approved && rejected {
		t.Errorf("form in status %q carries both approval and rejection fields", form.Status)
	}
	switch form.Status {
	case RIDSStatusDraft, RIDSStatusSubmitted:
		if approved || rejected {
			t.Errorf("form in status %q still carries decision fields", form.Status)
		}
	case RIDSStatusApproved:
		if form.ApprovedBy == nil || form.ApprovedAt == nil {
			t.Errorf("approved form missing approver fields")
		}
		if rejected {
			t.Errorf("approved form still carries rejection reason")
		}
	case RIDSStatusRejected:
		if form.RejectionReason == nil {
			t.Errorf("rejected form missing rejection reason")
		}
		if approved {
			t.Errorf("rejected form still carries approval fields")
		}
	}
}

func TestSubmitRIDS(t *testing.T) {
	tests := []struct {
		name       string
		fromStatus string
		reason     string
		wantErr    interface{}
	}{
		{"from draft", RIDSStatusDraft, "initial filing", nil},
		{"from rejected", RIDSStatusRejected, "corrected address", nil},
		{"from submitted", RIDSStatusSubmitted, "resubmit", &InvalidTransitionError{}},
		{"from approved", RIDSStatusApproved, "resubmit", &InvalidTransitionError{}},
		{"empty reason", RIDSStatusDraft, "  ", &ValidationError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := formInStatus(tt.fromStatus)
			transition, err := SubmitRIDS(form, 7, tt.reason, testNow())

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error, got transition %+v", transition)
				}
				switch tt.wantErr.(type) {
				case *InvalidTransitionError:
					var target *InvalidTransitionError
					if !errors.As(err, &target) {
						t.Fatalf("expected InvalidTransitionError, got %T: %v", err, err)
					}
					if target.CurrentStatus != tt.fromStatus {
						t.Errorf("CurrentStatus = %q, want %q", target.CurrentStatus, tt.fromStatus)
					}
				case *ValidationError:
					var target *ValidationError
					if !errors.As(err, &target) {
						t.Fatalf("expected ValidationError, got %T: %v", err, err)
					}
				}
				if form.Status != tt.fromStatus {
					t.Errorf("failed transition mutated status to %q", form.Status)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if form.Status != RIDSStatusSubmitted {
				t.Errorf("status = %q, want submitted", form.Status)
			}
			if form.SubmittedBy == nil || *form.SubmittedBy != 7 {
				t.Errorf("SubmittedBy not set to actor")
			}
			if form.SubmittedAt == nil || !form.SubmittedAt.Equal(testNow()) {
				t.Errorf("SubmittedAt not set to now")
			}
			checkDecisionFields(t, form)

			if transition.FromStatus != tt.fromStatus || transition.ToStatus != RIDSStatusSubmitted {
				t.Errorf("transition %s -> %s, want %s -> submitted", transition.FromStatus, transition.ToStatus, tt.fromStatus)
			}
			if transition.ActionType != ActionSubmit {
				t.Errorf("action type = %q, want submit", transition.ActionType)
			}
		})
	}
}

func TestApproveRIDS(t *testing.T) {
	notes := "verified against service records"

	t.Run("from submitted", func(t *testing.T) {
		form := formInStatus(RIDSStatusSubmitted)
		transition, err := ApproveRIDS(form, 3, "all records verified", &notes, testNow())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if form.Status != RIDSStatusApproved {
			t.Errorf("status = %q, want approved", form.Status)
		}
		if form.ApprovedBy == nil || *form.ApprovedBy != 3 {
			t.Errorf("ApprovedBy not set to approver")
		}
		if form.ApprovedAt == nil || !form.ApprovedAt.Equal(testNow()) {
			t.Errorf("ApprovedAt not set to now")
		}
		checkDecisionFields(t, form)
		if transition.ActionType != ActionApprove {
			t.Errorf("action type = %q, want approve", transition.ActionType)
		}
		if transition.Notes == nil || *transition.Notes != notes {
			t.Errorf("transition notes not carried through")
		}
	})

	for _, from := range []string{RIDSStatusDraft, RIDSStatusApproved, RIDSStatusRejected} {
		t.Run("from "+from, func(t *testing.T) {
			form := formInStatus(from)
			_, err := ApproveRIDS(form, 3, "verified", nil, testNow())
			var target *InvalidTransitionError
			if !errors.As(err, &target) {
				t.Fatalf("expected InvalidTransitionError, got %T: %v", err, err)
			}
			if form.Status != from {
				t.Errorf("failed approve mutated status to %q", form.Status)
			}
		})
	}

	t.Run("empty reason", func(t *testing.T) {
		form := formInStatus(RIDSStatusSubmitted)
		_, err := ApproveRIDS(form, 3, "", nil, testNow())
		var target *ValidationError
		if !errors.As(err, &target) {
			t.Fatalf("expected ValidationError, got %T: %v", err, err)
		}
	})
}

func TestRejectRIDS(t *testing.T) {
	t.Run("from submitted", func(t *testing.T) {
		form := formInStatus(RIDSStatusSubmitted)
		transition, err := RejectRIDS(form, 3, "missing blood type", nil, testNow())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if form.Status != RIDSStatusRejected {
			t.Errorf("status = %q, want rejected", form.Status)
		}
		if form.RejectionReason == nil || *form.RejectionReason != "missing blood type" {
			t.Errorf("RejectionReason not stored")
		}
		checkDecisionFields(t, form)
		if transition.ActionType != ActionReject {
			t.Errorf("action type = %q, want reject", transition.ActionType)
		}
		if transition.Reason != "missing blood type" {
			t.Errorf("transition reason = %q", transition.Reason)
		}
	})

	t.Run("validation checked before status", func(t *testing.T) {
		// A draft form with a blank reason must fail validation, not report
		// an illegal transition.
		form := formInStatus(RIDSStatusDraft)
		_, err := RejectRIDS(form, 3, "   ", nil, testNow())
		var target *ValidationError
		if !errors.As(err, &target) {
			t.Fatalf("expected ValidationError, got %T: %v", err, err)
		}
	})

	t.Run("from draft", func(t *testing.T) {
		form := formInStatus(RIDSStatusDraft)
		_, err := RejectRIDS(form, 3, "incomplete", nil, testNow())
		var target *InvalidTransitionError
		if !errors.As(err, &target) {
			t.Fatalf("expected InvalidTransitionError, got %T: %v", err, err)
		}
	})
}

func TestChangeRIDSStatus(t *testing.T) {
	tests := []struct {
		name       string
		fromStatus string
		target     string
		wantAction string
	}{
		{"draft to submitted", RIDSStatusDraft, "submitted", ActionSubmit},
		{"draft to approved", RIDSStatusDraft, "approved", ActionApprove},
		{"submitted to rejected", RIDSStatusSubmitted, "rejected", ActionReject},
		{"approved to draft is revert", RIDSStatusApproved, "draft", ActionRevert},
		{"rejected to draft is revert", RIDSStatusRejected, "draft", ActionRevert},
		{"submitted to draft is manual", RIDSStatusSubmitted, "draft", ActionManualChange},
		{"approved to submitted", RIDSStatusApproved, "submitted", ActionSubmit},
		{"target normalized", RIDSStatusDraft, "  Approved ", ActionApprove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := formInStatus(tt.fromStatus)
			transition, err := ChangeRIDSStatus(form, tt.target, "administrative correction", nil, 4, testNow())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := NormalizeRIDSStatus(tt.target)
			if form.Status != want {
				t.Errorf("status = %q, want %q", form.Status, want)
			}
			if transition.ActionType != tt.wantAction {
				t.Errorf("action type = %q, want %q", transition.ActionType, tt.wantAction)
			}
			if transition.FromStatus != tt.fromStatus {
				t.Errorf("FromStatus = %q, want %q", transition.FromStatus, tt.fromStatus)
			}
			checkDecisionFields(t, form)
		})
	}

	t.Run("same status is a no-op", func(t *testing.T) {
		form := formInStatus(RIDSStatusApproved)
		_, err := ChangeRIDSStatus(form, "approved", "fix", nil, 4, testNow())
		var target *NoOpError
		if !errors.As(err, &target) {
			t.Fatalf("expected NoOpError, got %T: %v", err, err)
		}
		if target.Status != RIDSStatusApproved {
			t.Errorf("NoOpError.Status = %q", target.Status)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		form := formInStatus(RIDSStatusDraft)
		_, err := ChangeRIDSStatus(form, "archived", "fix", nil, 4, testNow())
		var target *ValidationError
		if !errors.As(err, &target) {
			t.Fatalf("expected ValidationError, got %T: %v", err, err)
		}
		if target.Field != "status" {
			t.Errorf("ValidationError.Field = %q, want status", target.Field)
		}
	})

	t.Run("missing reason", func(t *testing.T) {
		form := formInStatus(RIDSStatusDraft)
		_, err := ChangeRIDSStatus(form, "submitted", "", nil, 4, testNow())
		var target *ValidationError
		if !errors.As(err, &target) {
			t.Fatalf("expected ValidationError, got %T: %v", err, err)
		}
	})

	t.Run("to rejected stores reason on form", func(t *testing.T) {
		form := formInStatus(RIDSStatusSubmitted)
		_, err := ChangeRIDSStatus(form, "rejected", "records could not be verified", nil, 4, testNow())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if form.RejectionReason == nil || *form.RejectionReason != "records could not be verified" {
			t.Errorf("rejection reason not stored on form")
		}
	})

	t.Run("to submitted sets submitter fields", func(t *testing.T) {
		form := formInStatus(RIDSStatusApproved)
		_, err := ChangeRIDSStatus(form, "submitted", "re-review requested", nil, 4, testNow())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if form.SubmittedBy == nil || *form.SubmittedBy != 4 {
			t.Errorf("SubmittedBy not set to acting admin")
		}
	})
}

func TestDeriveActionType(t *testing.T) {
	tests := []struct {
		from, to, want string
	}{
		{RIDSStatusDraft, RIDSStatusSubmitted, ActionSubmit},
		{RIDSStatusRejected, RIDSStatusSubmitted, ActionSubmit},
		{RIDSStatusSubmitted, RIDSStatusApproved, ActionApprove},
		{RIDSStatusDraft, RIDSStatusApproved, ActionApprove},
		{RIDSStatusSubmitted, RIDSStatusRejected, ActionReject},
		{RIDSStatusApproved, RIDSStatusDraft, ActionRevert},
		{RIDSStatusRejected, RIDSStatusDraft, ActionRevert},
		{RIDSStatusSubmitted, RIDSStatusDraft, ActionManualChange},
	}

	for _, tt := range tests {
		if got := deriveActionType(tt.from, tt.to); got != tt.want {
			t.Errorf("deriveActionType(%q, %q) = %q, want %q", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusTransitionHistoryEntry(t *testing.T) {
	notes := "checked by S1"
	transition := &StatusTransition{
		RIDSID:     42,
		FromStatus: RIDSStatusSubmitted,
		ToStatus:   RIDSStatusApproved,
		ActionType: ActionApprove,
		Reason:     "records verified",
		Notes:      &notes,
		ChangedBy:  3,
		ChangedAt:  testNow(),
	}

	entry := transition.HistoryEntry()
	if entry.RIDSID != 42 || entry.FromStatus != RIDSStatusSubmitted || entry.ToStatus != RIDSStatusApproved {
		t.Errorf("history entry does not match transition: %+v", entry)
	}
	if entry.ActionType != ActionApprove || entry.Reason != "records verified" || entry.ChangedBy != 3 {
		t.Errorf("history entry metadata does not match transition: %+v", entry)
	}
	if entry.Notes == nil || *entry.Notes != notes {
		t.Errorf("history entry notes not carried through")
	}
	if !entry.CreatedAt.Equal(testNow()) {
		t.Errorf("history entry CreatedAt = %v", entry.CreatedAt)
	}
}

func TestIsValidRIDSStatus(t *testing.T) {
	for _, status := range ValidRIDSStatuses {
		if !IsValidRIDSStatus(status) {
			t.Errorf("IsValidRIDSStatus(%q) = false", status)
		}
	}
	for _, status := range []string{"", "Draft", "archived", "pending"} {
		if IsValidRIDSStatus(status) {
			t.Errorf("IsValidRIDSStatus(%q) = true", status)
		}
	}
}
