package services

import (
	"fmt"
	"log"
	"time"

	"reserve-management-api/config"
	"reserve-management-api/models"
)

// Notification titles per action type.
var transitionTitles = map[string]string{
	ActionSubmit:       "RIDS submitted",
	ActionApprove:      "RIDS approved",
	ActionReject:       "RIDS returned",
	ActionRevert:       "RIDS reverted",
	ActionManualChange: "RIDS status updated",
}

// NotifyTransition records an in-app notification for the form owner and
// fires a best-effort email. It is called after the transition has been
// persisted; failures are logged and never affect the transition itself.
func NotifyTransition(owner models.User, t *StatusTransition) {
	title, ok := transitionTitles[t.ActionType]
	if !ok {
		title = "RIDS status updated"
	}

	message := fmt.Sprintf("Your RIDS form moved from '%s' to '%s'. Reason: %s",
		t.FromStatus, t.ToStatus, t.Reason)

	notifType := "info"
	switch t.ToStatus {
	case RIDSStatusApproved:
		notifType = "success"
	case RIDSStatusRejected:
		notifType = "warning"
	}

	ridsID := uint(t.RIDSID)
	notification := models.Notification{
		UserID:        uint(owner.UserID),
		Title:         title,
		Message:       message,
		Type:          notifType,
		RelatedRIDSID: &ridsID,
		IsRead:        false,
		CreateAt:      time.Now(),
	}

	if err := config.DB.Create(&notification).Error; err != nil {
		log.Printf("Warning: failed to create notification for user %d: %v", owner.UserID, err)
	}

	// Email delivery is fire-and-forget; the transition is already committed.
	go func() {
		body := fmt.Sprintf("<p>%s</p><p>%s</p>", title, message)
		if err := config.SendMail([]string{owner.Email}, title, body); err != nil {
			log.Printf("Warning: failed to send transition email to %s: %v", owner.Email, err)
		}
	}()
}
