package controllers

import (
	"net/http"
	"time"

	"reserve-management-api/config"
	"reserve-management-api/models"
	"reserve-management-api/services"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns role-scoped counters for the dashboard landing
// page. Reservists see their own form and training figures; staff and admin
// see battalion-wide totals.
func GetDashboardStats(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	if roleID.(int) == models.RoleReservist {
		reservistStats(c, userID.(int))
		return
	}

	var (
		totalReservists int64
		ridsByStatus    = map[string]int64{}
		upcomingCount   int64
	)

	if err := config.DB.Model(&models.User{}).
		Where("role_id = ? AND delete_at IS NULL", models.RoleReservist).
		Count(&totalReservists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	for _, status := range services.ValidRIDSStatuses {
		var count int64
		if err := config.DB.Model(&models.RIDSForm{}).
			Where("status = ? AND delete_at IS NULL", status).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
			return
		}
		ridsByStatus[status] = count
	}

	if err := config.DB.Model(&models.TrainingSession{}).
		Where("start_date > ? AND status = ? AND delete_at IS NULL", time.Now(), "scheduled").
		Count(&upcomingCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	type companyCount struct {
		CompanyName string `gorm:"column:company_name" json:"company_name"`
		Total       int64  `gorm:"column:total" json:"total"`
	}
	var perCompany []companyCount
	if err := config.DB.Raw(`
		SELECT c.company_name, COUNT(u.user_id) AS total
		FROM companies c
		LEFT JOIN users u ON u.company_id = c.company_id
			AND u.role_id = ? AND u.delete_at IS NULL
		WHERE c.delete_at IS NULL
		GROUP BY c.company_id, c.company_name
		ORDER BY c.company_name`,
		models.RoleReservist,
	).Scan(&perCompany).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_reservists":  totalReservists,
		"rids_by_status":    ridsByStatus,
		"upcoming_sessions": upcomingCount,
		"per_company":       perCompany,
	})
}

func reservistStats(c *gin.Context, userID int) {
	var form models.RIDSForm
	ridsStatus := ""
	if err := config.DB.Where("reservist_id = ? AND delete_at IS NULL", userID).
		First(&form).Error; err == nil {
		ridsStatus = form.Status
	}

	type trainingTotals struct {
		TotalHours   float64 `gorm:"column:total_hours" json:"total_hours"`
		CampDutyDays int     `gorm:"column:camp_duty_days" json:"camp_duty_days"`
		SeminarCount int     `gorm:"column:seminar_count" json:"seminar_count"`
	}
	var totals trainingTotals
	if err := config.DB.Raw(`
		SELECT
			COALESCE(SUM(CASE WHEN ts.session_type = ? THEN ta.hours_earned ELSE 0 END), 0) AS total_hours,
			COALESCE(SUM(CASE WHEN ts.session_type = ? THEN ta.days_served ELSE 0 END), 0) AS camp_duty_days,
			COUNT(CASE WHEN ts.session_type = ? THEN 1 END) AS seminar_count
		FROM training_attendances ta
		JOIN training_sessions ts ON ts.session_id = ta.session_id AND ts.delete_at IS NULL
		WHERE ta.reservist_id = ? AND ta.completed = 1 AND ta.delete_at IS NULL`,
		models.SessionTypeTraining,
		models.SessionTypeCampDuty,
		models.SessionTypeSeminar,
		userID,
	).Scan(&totals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	var unreadNotifications int64
	if err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unreadNotifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rids_status":          ridsStatus,
		"training":             totals,
		"unread_notifications": unreadNotifications,
	})
}
