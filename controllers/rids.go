package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"reserve-management-api/config"
	"reserve-management-api/models"
	"reserve-management-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RIDSFormRequest struct {
	HomeAddress      *string `json:"home_address"`
	BloodType        *string `json:"blood_type" binding:"omitempty,oneof=A A+ A- B B+ B- AB AB+ AB- O O+ O-"`
	CivilStatus      *string `json:"civil_status" binding:"omitempty,oneof=single married widowed separated"`
	Occupation       *string `json:"occupation"`
	EmergencyContact *string `json:"emergency_contact"`
	EmergencyPhone   *string `json:"emergency_phone"`
	SpecialSkills    *string `json:"special_skills"`
}

// respondTransitionError maps lifecycle errors onto HTTP statuses. The
// message always carries the specific cause so the UI can explain it.
func respondTransitionError(c *gin.Context, err error) {
	var (
		notFound     *services.NotFoundError
		validation   *services.ValidationError
		invalidState *services.InvalidTransitionError
		noOp         *services.NoOpError
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &invalidState), errors.As(err, &noOp):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update RIDS status"})
	}
}

// persistTransition saves the mutated form and appends the history row.
// History append is best-effort: a failed insert is logged and reported in
// the response but never rolls back the already-applied status change.
func persistTransition(form *models.RIDSForm, transition *services.StatusTransition) (historyRecorded bool, err error) {
	if err := config.DB.Save(form).Error; err != nil {
		return false, err
	}

	history := transition.HistoryEntry()
	if err := config.DB.Create(&history).Error; err != nil {
		log.Printf("Warning: failed to record status history for RIDS %d (%s -> %s): %v",
			transition.RIDSID, transition.FromStatus, transition.ToStatus, err)
		return false, nil
	}
	return true, nil
}

// notifyOwner looks up the form owner and fires the transition notification.
func notifyOwner(form *models.RIDSForm, transition *services.StatusTransition) {
	var owner models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", form.ReservistID).First(&owner).Error; err != nil {
		log.Printf("Warning: owner %d not found for RIDS %d notification", form.ReservistID, form.RIDSID)
		return
	}
	services.NotifyTransition(owner, transition)
}

// CreateRIDS creates a new draft form for the authenticated reservist.
func CreateRIDS(c *gin.Context) {
	userID, _ := c.Get("userID")

	var req RIDSFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// One live form per reservist
	var existing models.RIDSForm
	err := config.DB.Where("reservist_id = ? AND delete_at IS NULL", userID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A RIDS form already exists for this reservist"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing forms"})
		return
	}

	now := time.Now()
	form := models.RIDSForm{
		ReservistID:      userID.(int),
		Status:           services.RIDSStatusDraft,
		HomeAddress:      req.HomeAddress,
		BloodType:        req.BloodType,
		CivilStatus:      req.CivilStatus,
		Occupation:       req.Occupation,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		SpecialSkills:    req.SpecialSkills,
		CreateAt:         now,
		UpdateAt:         now,
	}

	if err := config.DB.Create(&form).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create RIDS form"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "RIDS form created",
		"rids":    form,
	})
}

// GetMyRIDS returns the authenticated reservist's form.
func GetMyRIDS(c *gin.Context) {
	userID, _ := c.Get("userID")

	var form models.RIDSForm
	if err := config.DB.Preload("Approver").
		Where("reservist_id = ? AND delete_at IS NULL", userID).
		First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "RIDS form not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rids": form})
}

// GetRIDS returns a single form. Reservists may only read their own.
func GetRIDS(c *gin.Context) {
	ridsID, err := strconv.Atoi(c.Param("id"))
	if err != nil || ridsID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid RIDS ID"})
		return
	}

	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var form models.RIDSForm
	if err := config.DB.Preload("Reservist").Preload("Approver").
		Where("rids_id = ? AND delete_at IS NULL", ridsID).
		First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": (&services.NotFoundError{RIDSID: ridsID}).Error()})
		return
	}

	if roleID.(int) == models.RoleReservist && form.ReservistID != userID.(int) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rids": form})
}

// UpdateRIDS edits form fields. Allowed only while the form is editable
// (draft or rejected); submitted/approved forms are read-only for the owner.
func UpdateRIDS(c *gin.Context) {
	ridsID, err := strconv.Atoi(c.Param("id"))
	if err != nil || ridsID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid RIDS ID"})
		return
	}

	userID, _ := c.Get("userID")

	var form models.RIDSForm
	if err := config.DB.Where("rids_id = ? AND reservist_id = ? AND delete_at IS NULL", ridsID, userID).
		First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": (&services.NotFoundError{RIDSID: ridsID}).Error()})
		return
	}

	if form.Status != services.RIDSStatusDraft && form.Status != services.RIDSStatusRejected {
		c.JSON(http.StatusConflict, gin.H{
			"error": (&services.InvalidTransitionError{Operation: "edit", CurrentStatus: form.Status}).Error(),
		})
		return
	}

	var req RIDSFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.HomeAddress != nil {
		form.HomeAddress = req.HomeAddress
	}
	if req.BloodType != nil {
		form.BloodType = req.BloodType
	}
	if req.CivilStatus != nil {
		form.CivilStatus = req.CivilStatus
	}
	if req.Occupation != nil {
		form.Occupation = req.Occupation
	}
	if req.EmergencyContact != nil {
		form.EmergencyContact = req.EmergencyContact
	}
	if req.EmergencyPhone != nil {
		form.EmergencyPhone = req.EmergencyPhone
	}
	if req.SpecialSkills != nil {
		form.SpecialSkills = req.SpecialSkills
	}
	form.UpdateAt = time.Now()

	if err := config.DB.Save(&form).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update RIDS form"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "RIDS form updated",
		"rids":    form,
	})
}

// SubmitRIDS moves the owner's form into review.
func SubmitRIDS(c *gin.Context) {
	ridsID, err := strconv.Atoi(c.Param("id"))
	if err != nil || ridsID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid RIDS ID"})
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		return
	}

	userID, _ := c.Get("userID")

	var form models.RIDSForm
	if err := config.DB.Where("rids_id = ? AND reservist_id = ? AND delete_at IS NULL", ridsID, userID).
		First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": (&services.NotFoundError{RIDSID: ridsID}).Error()})
		return
	}

	transition, err := services.SubmitRIDS(&form, userID.(int), req.Reason, time.Now())
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	historyRecorded, err := persistTransition(&form, transition)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit RIDS form"})
		return
	}

	notifyOwner(&form, transition)

	c.JSON(http.StatusOK, gin.H{
		"message":          "RIDS form submitted",
		"rids":             form,
		"history_recorded": historyRecorded,
	})
}

// GetRIDSHistory lists the append-only status history for a form, oldest
// first. Reservists may only read their own history.
func GetRIDSHistory(c *gin.Context) {
	ridsID, err := strconv.Atoi(c.Param("id"))
	if err != nil || ridsID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid RIDS ID"})
		return
	}

	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var form models.RIDSForm
	if err := config.DB.Where("rids_id = ? AND delete_at IS NULL", ridsID).First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": (&services.NotFoundError{RIDSID: ridsID}).Error()})
		return
	}

	if roleID.(int) == models.RoleReservist && form.ReservistID != userID.(int) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	var history []models.RIDSStatusHistory
	if err := config.DB.Preload("Actor").
		Where("rids_id = ?", ridsID).
		Order("created_at ASC, history_id ASC").
		Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch status history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rids_id": ridsID,
		"history": history,
		"total":   len(history),
	})
}
