package controllers

import (
	"net/http"
	"strconv"
	"time"

	"reserve-management-api/config"
	"reserve-management-api/models"

	"github.com/gin-gonic/gin"
)

// GetActiveAnnouncements lists published, unexpired announcements for all
// authenticated users, most important first.
func GetActiveAnnouncements(c *gin.Context) {
	now := time.Now()

	query := config.DB.Preload("Creator").
		Where("delete_at IS NULL").
		Where("status = ?", "active").
		Where("published_at IS NULL OR published_at <= ?", now).
		Where("expired_at IS NULL OR expired_at > ?", now)

	if announcementType := c.Query("type"); announcementType != "" {
		query = query.Where("announcement_type = ?", announcementType)
	}

	var announcements []models.Announcement
	if err := query.
		Order("FIELD(priority, 'urgent', 'high', 'normal'), display_order ASC, create_at DESC").
		Find(&announcements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch announcements"})
		return
	}

	responses := make([]models.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		responses = append(responses, announcements[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"announcements": responses,
		"total":         len(responses),
	})
}

// GetAnnouncements lists all announcements for admin management.
func GetAnnouncements(c *gin.Context) {
	var announcements []models.Announcement
	if err := config.DB.Preload("Creator").
		Where("delete_at IS NULL").
		Order("create_at DESC").
		Find(&announcements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch announcements"})
		return
	}

	responses := make([]models.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		responses = append(responses, announcements[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"announcements": responses,
		"total":         len(responses),
	})
}

// CreateAnnouncement creates an announcement (admin only).
func CreateAnnouncement(c *gin.Context) {
	var req models.AnnouncementCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")
	now := time.Now()

	announcement := models.Announcement{
		Title:            req.Title,
		Description:      req.Description,
		AnnouncementType: req.AnnouncementType,
		Priority:         req.Priority,
		DisplayOrder:     req.DisplayOrder,
		Status:           req.Status,
		PublishedAt:      req.PublishedAt,
		ExpiredAt:        req.ExpiredAt,
		CreatedBy:        userID.(int),
		CreateAt:         now,
		UpdateAt:         now,
	}
	if announcement.Priority == "" {
		announcement.Priority = "normal"
	}
	if announcement.Status == "" {
		announcement.Status = "active"
	}
	if announcement.PublishedAt == nil {
		announcement.PublishedAt = &now
	}

	if err := config.DB.Create(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create announcement"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Announcement created",
		"announcement": announcement.ToResponse(),
	})
}

// UpdateAnnouncement edits an announcement (admin only).
func UpdateAnnouncement(c *gin.Context) {
	announcementID, err := strconv.Atoi(c.Param("id"))
	if err != nil || announcementID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid announcement ID"})
		return
	}

	var announcement models.Announcement
	if err := config.DB.Where("announcement_id = ? AND delete_at IS NULL", announcementID).
		First(&announcement).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	var req models.AnnouncementUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Description != nil {
		announcement.Description = req.Description
	}
	if req.AnnouncementType != nil {
		announcement.AnnouncementType = *req.AnnouncementType
	}
	if req.Priority != nil {
		announcement.Priority = *req.Priority
	}
	if req.DisplayOrder != nil {
		announcement.DisplayOrder = req.DisplayOrder
	}
	if req.Status != nil {
		announcement.Status = *req.Status
	}
	if req.PublishedAt != nil {
		announcement.PublishedAt = req.PublishedAt
	}
	if req.ExpiredAt != nil {
		announcement.ExpiredAt = req.ExpiredAt
	}
	announcement.UpdateAt = time.Now()

	if err := config.DB.Save(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update announcement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Announcement updated",
		"announcement": announcement.ToResponse(),
	})
}

// DeleteAnnouncement soft deletes an announcement (admin only).
func DeleteAnnouncement(c *gin.Context) {
	announcementID, err := strconv.Atoi(c.Param("id"))
	if err != nil || announcementID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid announcement ID"})
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.Announcement{}).
		Where("announcement_id = ? AND delete_at IS NULL", announcementID).
		Updates(map[string]interface{}{"delete_at": now, "status": "inactive", "update_at": now})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete announcement"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
}
