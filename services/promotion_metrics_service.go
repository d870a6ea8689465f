package services

import (
	"fmt"
	"time"

	"reserve-management-api/models"

	"gorm.io/gorm"
)

// PromotionMetricsService aggregates the raw service/training/duty figures
// that feed EvaluateEligibility. All queries scope to completed attendance
// rows and soft-delete-filtered sessions.
type PromotionMetricsService struct {
	db *gorm.DB
}

func NewPromotionMetricsService(db *gorm.DB) *PromotionMetricsService {
	return &PromotionMetricsService{db: db}
}

type trainingAggregateRow struct {
	TotalHours   float64 `gorm:"column:total_hours"`
	TypeCount    int     `gorm:"column:type_count"`
	CampDutyDays int     `gorm:"column:camp_duty_days"`
	SeminarCount int     `gorm:"column:seminar_count"`
}

// MetricsForReservist computes one candidate's metrics as of now.
func (s *PromotionMetricsService) MetricsForReservist(reservistID int, now time.Time) (*PromotionMetrics, error) {
	var user models.User
	err := s.db.Preload("Rank").Preload("Company").
		Where("user_id = ? AND delete_at IS NULL", reservistID).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("reservist %d not found", reservistID)
		}
		return nil, err
	}

	metrics := PromotionMetrics{
		ReservistID:    user.UserID,
		FirstName:      user.UserFname,
		LastName:       user.UserLname,
		Rank:           user.Rank.RankName,
		CommissionType: user.CommissionType,
	}
	if user.Company != nil {
		metrics.Company = user.Company.CompanyName
	}
	if user.HighestEducation != nil {
		metrics.HighestEducation = *user.HighestEducation
	}
	metrics.YearsInService = yearsSince(user.RankAssignedAt, user.DateOfEnlistment, now)

	var agg trainingAggregateRow
	err = s.db.Raw(`
		SELECT
			COALESCE(SUM(CASE WHEN ts.session_type = ? THEN ta.hours_earned ELSE 0 END), 0) AS total_hours,
			COUNT(DISTINCT CASE WHEN ts.session_type = ? THEN ts.training_type END) AS type_count,
			COALESCE(SUM(CASE WHEN ts.session_type = ? THEN ta.days_served ELSE 0 END), 0) AS camp_duty_days,
			COUNT(CASE WHEN ts.session_type = ? THEN 1 END) AS seminar_count
		FROM training_attendances ta
		JOIN training_sessions ts ON ts.session_id = ta.session_id AND ts.delete_at IS NULL
		WHERE ta.reservist_id = ? AND ta.completed = 1 AND ta.delete_at IS NULL`,
		models.SessionTypeTraining,
		models.SessionTypeTraining,
		models.SessionTypeCampDuty,
		models.SessionTypeSeminar,
		reservistID,
	).Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate training metrics: %w", err)
	}

	metrics.TotalTrainingHours = agg.TotalHours
	metrics.TrainingTypesCount = agg.TypeCount
	metrics.CampDutyDays = agg.CampDutyDays
	metrics.SeminarCount = agg.SeminarCount

	return &metrics, nil
}

// MetricsForRank computes metrics for every active reservist holding the
// given rank. Used by the candidate board.
func (s *PromotionMetricsService) MetricsForRank(rankName string, now time.Time) ([]PromotionMetrics, error) {
	var users []models.User
	err := s.db.Preload("Rank").Preload("Company").
		Joins("JOIN ranks ON ranks.rank_id = users.rank_id").
		Where("ranks.rank_name = ? AND users.role_id = ? AND users.account_status = ? AND users.delete_at IS NULL",
			rankName, models.RoleReservist, "active").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	metrics := make([]PromotionMetrics, 0, len(users))
	for _, user := range users {
		m, err := s.MetricsForReservist(user.UserID, now)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, *m)
	}
	return metrics, nil
}

// yearsSince prefers the rank assignment date and falls back to enlistment.
func yearsSince(rankAssignedAt, enlistedAt *time.Time, now time.Time) float64 {
	ref := rankAssignedAt
	if ref == nil {
		ref = enlistedAt
	}
	if ref == nil || ref.After(now) {
		return 0
	}
	return now.Sub(*ref).Hours() / (24 * 365.25)
}
