package controllers

import (
	"net/http"
	"strconv"
	"time"

	"reserve-management-api/config"
	"reserve-management-api/models"
	"reserve-management-api/services"

	"github.com/gin-gonic/gin"
)

// GetRIDSList lists forms for staff/admin, optionally filtered by status.
func GetRIDSList(c *gin.Context) {
	query := config.DB.Preload("Reservist").Preload("Reservist.Rank").Preload("Reservist.Company").
		Where("delete_at IS NULL")

	if status := services.NormalizeRIDSStatus(c.Query("status")); status != "" {
		if !services.IsValidRIDSStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}

	var forms []models.RIDSForm
	if err := query.Order("update_at DESC").Find(&forms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch RIDS forms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"rids":    forms,
		"total":   len(forms),
	})
}

func loadRIDSForTransition(c *gin.Context) (*models.RIDSForm, bool) {
	ridsID, err := strconv.Atoi(c.Param("id"))
	if err != nil || ridsID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid RIDS ID"})
		return nil, false
	}

	var form models.RIDSForm
	if err := config.DB.Where("rids_id = ? AND delete_at IS NULL", ridsID).First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": (&services.NotFoundError{RIDSID: ridsID}).Error()})
		return nil, false
	}
	return &form, true
}

// ApproveRIDS approves a submitted form.
func ApproveRIDS(c *gin.Context) {
	form, ok := loadRIDSForTransition(c)
	if !ok {
		return
	}

	var req struct {
		Reason string  `json:"reason" binding:"required"`
		Notes  *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		return
	}

	userID, _ := c.Get("userID")

	transition, err := services.ApproveRIDS(form, userID.(int), req.Reason, req.Notes, time.Now())
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	historyRecorded, err := persistTransition(form, transition)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve RIDS form"})
		return
	}

	notifyOwner(form, transition)

	c.JSON(http.StatusOK, gin.H{
		"message":          "RIDS form approved",
		"rids":             form,
		"history_recorded": historyRecorded,
	})
}

// RejectRIDS rejects a submitted form with a mandatory reason.
func RejectRIDS(c *gin.Context) {
	form, ok := loadRIDSForTransition(c)
	if !ok {
		return
	}

	var req struct {
		RejectionReason string  `json:"rejection_reason" binding:"required"`
		Notes           *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rejection_reason is required"})
		return
	}

	userID, _ := c.Get("userID")

	transition, err := services.RejectRIDS(form, userID.(int), req.RejectionReason, req.Notes, time.Now())
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	historyRecorded, err := persistTransition(form, transition)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject RIDS form"})
		return
	}

	notifyOwner(form, transition)

	c.JSON(http.StatusOK, gin.H{
		"message":          "RIDS form rejected",
		"rids":             form,
		"history_recorded": historyRecorded,
	})
}

// ChangeRIDSStatus is the administrative override used to move a form to any
// recognized status, including reverting approved/rejected forms.
func ChangeRIDSStatus(c *gin.Context) {
	form, ok := loadRIDSForTransition(c)
	if !ok {
		return
	}

	var req struct {
		Status string  `json:"status" binding:"required"`
		Reason string  `json:"reason" binding:"required"`
		Notes  *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status and reason are required"})
		return
	}

	userID, _ := c.Get("userID")

	transition, err := services.ChangeRIDSStatus(form, req.Status, req.Reason, req.Notes, userID.(int), time.Now())
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	historyRecorded, err := persistTransition(form, transition)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change RIDS status"})
		return
	}

	notifyOwner(form, transition)

	c.JSON(http.StatusOK, gin.H{
		"message":          "RIDS status changed",
		"rids":             form,
		"action_type":      transition.ActionType,
		"history_recorded": historyRecorded,
	})
}
