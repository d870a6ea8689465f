package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"reserve-management-api/config"
	"reserve-management-api/models"
	"reserve-management-api/services"

	"github.com/gin-gonic/gin"
)

// GetPromotionRequirements lists active promotion requirements.
func GetPromotionRequirements(c *gin.Context) {
	requirements, err := services.GetActiveRequirements()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch promotion requirements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requirements": requirements,
		"total":        len(requirements),
	})
}

// CreatePromotionRequirement adds a requirement row (admin only).
func CreatePromotionRequirement(c *gin.Context) {
	var req models.PromotionRequirementCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	requirement := models.PromotionRequirement{
		FromRank:              strings.TrimSpace(req.FromRank),
		ToRank:                req.ToRank,
		RequiredTrainingTypes: req.RequiredTrainingTypes,
		YearsInCurrentRank:    req.YearsInCurrentRank,
		SeminarsRequired:      req.SeminarsRequired,
		CampDutyDays:          req.CampDutyDays,
		MinEducationLevel:     req.MinEducationLevel,
		IsActive:              true,
		CreateAt:              now,
		UpdateAt:              now,
	}
	if req.IsActive != nil {
		requirement.IsActive = *req.IsActive
	}

	if err := config.DB.Create(&requirement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create promotion requirement"})
		return
	}

	services.ClearRequirementCache()

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Promotion requirement created",
		"requirement": requirement,
	})
}

// UpdatePromotionRequirement edits a requirement row (admin only).
func UpdatePromotionRequirement(c *gin.Context) {
	requirementID, err := strconv.Atoi(c.Param("id"))
	if err != nil || requirementID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid requirement ID"})
		return
	}

	var requirement models.PromotionRequirement
	if err := config.DB.Where("requirement_id = ? AND delete_at IS NULL", requirementID).
		First(&requirement).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion requirement not found"})
		return
	}

	var req models.PromotionRequirementUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ToRank != nil {
		requirement.ToRank = req.ToRank
	}
	if req.RequiredTrainingTypes != nil {
		requirement.RequiredTrainingTypes = *req.RequiredTrainingTypes
	}
	if req.YearsInCurrentRank != nil {
		requirement.YearsInCurrentRank = *req.YearsInCurrentRank
	}
	if req.SeminarsRequired != nil {
		requirement.SeminarsRequired = *req.SeminarsRequired
	}
	if req.CampDutyDays != nil {
		requirement.CampDutyDays = *req.CampDutyDays
	}
	if req.MinEducationLevel != nil {
		requirement.MinEducationLevel = req.MinEducationLevel
	}
	if req.IsActive != nil {
		requirement.IsActive = *req.IsActive
	}
	requirement.UpdateAt = time.Now()

	if err := config.DB.Save(&requirement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update promotion requirement"})
		return
	}

	services.ClearRequirementCache()

	c.JSON(http.StatusOK, gin.H{
		"message":     "Promotion requirement updated",
		"requirement": requirement,
	})
}

// DeletePromotionRequirement soft deletes a requirement row (admin only).
func DeletePromotionRequirement(c *gin.Context) {
	requirementID, err := strconv.Atoi(c.Param("id"))
	if err != nil || requirementID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid requirement ID"})
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.PromotionRequirement{}).
		Where("requirement_id = ? AND delete_at IS NULL", requirementID).
		Updates(map[string]interface{}{"delete_at": now, "is_active": false, "update_at": now})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete promotion requirement"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion requirement not found"})
		return
	}

	services.ClearRequirementCache()

	c.JSON(http.StatusOK, gin.H{"message": "Promotion requirement deleted"})
}

// GetPromotionEligibility evaluates one reservist against the active
// requirement for their rank. The result is always computed fresh.
func GetPromotionEligibility(c *gin.Context) {
	reservistID, err := strconv.Atoi(c.Param("id"))
	if err != nil || reservistID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservist ID"})
		return
	}

	svc := services.NewPromotionMetricsService(config.DB)
	metrics, err := svc.MetricsForReservist(reservistID, time.Now())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	requirement, err := services.GetRequirementForRank(metrics.Rank)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	eligibility := services.EvaluateEligibility(*metrics, *requirement)

	c.JSON(http.StatusOK, gin.H{
		"eligibility":   eligibility,
		"requirement":   requirement,
		"justification": services.JustifyCandidate(eligibility, *requirement),
	})
}

// GetPromotionCandidates returns the ranked candidate board for a rank.
// Query params: rank (required), direction (asc|desc, default desc).
func GetPromotionCandidates(c *gin.Context) {
	rank := strings.TrimSpace(c.Query("rank"))
	if rank == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rank query parameter is required"})
		return
	}

	direction := strings.ToLower(strings.TrimSpace(c.DefaultQuery("direction", services.SortDesc)))
	if direction != services.SortDesc && direction != services.SortAsc {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be 'asc' or 'desc'"})
		return
	}

	requirement, err := services.GetRequirementForRank(rank)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewPromotionMetricsService(config.DB)
	metricsList, err := svc.MetricsForRank(rank, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate candidate metrics"})
		return
	}

	candidates := make([]services.PromotionEligibility, 0, len(metricsList))
	for _, metrics := range metricsList {
		candidates = append(candidates, services.EvaluateEligibility(metrics, *requirement))
	}

	ranked := services.RankCandidates(candidates, direction)

	type rankedCandidate struct {
		Position int `json:"position"`
		services.PromotionEligibility
		Justification string `json:"justification"`
	}

	board := make([]rankedCandidate, 0, len(ranked))
	for i, candidate := range ranked {
		board = append(board, rankedCandidate{
			Position:             i + 1,
			PromotionEligibility: candidate,
			Justification:        services.JustifyCandidate(candidate, *requirement),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"rank":        rank,
		"direction":   direction,
		"requirement": requirement,
		"candidates":  board,
		"total":       len(board),
	})
}
