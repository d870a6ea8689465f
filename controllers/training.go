package controllers

import (
	"net/http"
	"strconv"
	"time"

	"reserve-management-api/config"
	"reserve-management-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetTrainingSessions lists sessions, optionally filtered by type or status.
func GetTrainingSessions(c *gin.Context) {
	query := config.DB.Preload("Creator").Where("delete_at IS NULL")

	if sessionType := c.Query("type"); sessionType != "" {
		query = query.Where("session_type = ?", sessionType)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var sessions []models.TrainingSession
	if err := query.Order("start_date DESC").Find(&sessions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch training sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"total":    len(sessions),
	})
}

// GetTrainingSession returns one session with its attendance list.
func GetTrainingSession(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || sessionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	var session models.TrainingSession
	if err := config.DB.Preload("Creator").
		Where("session_id = ? AND delete_at IS NULL", sessionID).
		First(&session).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Training session not found"})
		return
	}

	var attendances []models.TrainingAttendance
	if err := config.DB.Preload("Reservist").
		Where("session_id = ? AND delete_at IS NULL", sessionID).
		Find(&attendances).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":     session,
		"attendances": attendances,
	})
}

// CreateTrainingSession creates a session (staff and above).
func CreateTrainingSession(c *gin.Context) {
	var req models.TrainingSessionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	sessionType := req.SessionType
	if sessionType == "" {
		sessionType = models.SessionTypeTraining
	}

	now := time.Now()
	session := models.TrainingSession{
		Title:        req.Title,
		Description:  req.Description,
		SessionType:  sessionType,
		TrainingType: req.TrainingType,
		Hours:        req.Hours,
		DurationDays: req.DurationDays,
		Location:     req.Location,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Capacity:     req.Capacity,
		Status:       "scheduled",
		CreatedBy:    userID.(int),
		CreateAt:     now,
		UpdateAt:     now,
	}

	if err := config.DB.Create(&session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create training session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Training session created",
		"session": session,
	})
}

// UpdateTrainingSession edits a session (staff and above).
func UpdateTrainingSession(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || sessionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	var session models.TrainingSession
	if err := config.DB.Where("session_id = ? AND delete_at IS NULL", sessionID).
		First(&session).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Training session not found"})
		return
	}

	var req models.TrainingSessionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		session.Title = *req.Title
	}
	if req.Description != nil {
		session.Description = req.Description
	}
	if req.SessionType != nil {
		session.SessionType = *req.SessionType
	}
	if req.TrainingType != nil {
		session.TrainingType = req.TrainingType
	}
	if req.Hours != nil {
		session.Hours = *req.Hours
	}
	if req.DurationDays != nil {
		session.DurationDays = *req.DurationDays
	}
	if req.Location != nil {
		session.Location = req.Location
	}
	if req.StartDate != nil {
		session.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		session.EndDate = req.EndDate
	}
	if req.Capacity != nil {
		session.Capacity = req.Capacity
	}
	if req.Status != nil {
		session.Status = *req.Status
	}
	session.UpdateAt = time.Now()

	if err := config.DB.Save(&session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update training session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Training session updated",
		"session": session,
	})
}

// RecordAttendance marks a reservist's completion of a session. Completed
// rows feed the promotion metrics aggregation.
func RecordAttendance(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || sessionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	var session models.TrainingSession
	if err := config.DB.Where("session_id = ? AND delete_at IS NULL", sessionID).
		First(&session).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Training session not found"})
		return
	}

	var req models.AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var reservist models.User
	if err := config.DB.Where("user_id = ? AND role_id = ? AND delete_at IS NULL",
		req.ReservistID, models.RoleReservist).First(&reservist).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservist not found"})
		return
	}

	userID, _ := c.Get("userID")
	now := time.Now()

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}
	hoursEarned := session.Hours
	if req.HoursEarned != nil {
		hoursEarned = *req.HoursEarned
	}
	daysServed := session.DurationDays
	if req.DaysServed != nil {
		daysServed = *req.DaysServed
	}

	// Upsert on (session, reservist)
	var attendance models.TrainingAttendance
	err = config.DB.Where("session_id = ? AND reservist_id = ? AND delete_at IS NULL",
		sessionID, req.ReservistID).First(&attendance).Error
	switch {
	case err == nil:
		attendance.Completed = completed
		attendance.HoursEarned = hoursEarned
		attendance.DaysServed = daysServed
		attendance.RecordedBy = userID.(int)
		attendance.RecordedAt = now
		attendance.UpdateAt = now
		if err := config.DB.Save(&attendance).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update attendance"})
			return
		}
	case err == gorm.ErrRecordNotFound:
		attendance = models.TrainingAttendance{
			SessionID:   sessionID,
			ReservistID: req.ReservistID,
			Completed:   completed,
			HoursEarned: hoursEarned,
			DaysServed:  daysServed,
			RecordedBy:  userID.(int),
			RecordedAt:  now,
			CreateAt:    now,
			UpdateAt:    now,
		}
		if err := config.DB.Create(&attendance).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attendance"})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check attendance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Attendance recorded",
		"attendance": attendance,
	})
}

// GetMyAttendance lists the authenticated reservist's attendance records.
func GetMyAttendance(c *gin.Context) {
	userID, _ := c.Get("userID")

	var attendances []models.TrainingAttendance
	if err := config.DB.Preload("Session").
		Where("reservist_id = ? AND delete_at IS NULL", userID).
		Order("recorded_at DESC").
		Find(&attendances).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attendances": attendances,
		"total":       len(attendances),
	})
}
