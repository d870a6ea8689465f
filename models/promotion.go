package models

import "time"

// PromotionRequirement represents the promotion_requirements table. Each row
// specifies what a reservist holding from_rank must accumulate before being
// considered for promotion. Only active rows participate in scoring.
type PromotionRequirement struct {
	RequirementID         int     `gorm:"primaryKey;column:requirement_id" json:"requirement_id"`
	FromRank              string  `gorm:"column:from_rank" json:"from_rank"`
	ToRank                *string `gorm:"column:to_rank" json:"to_rank,omitempty"`
	RequiredTrainingTypes int     `gorm:"column:required_training_types" json:"required_training_types"`
	YearsInCurrentRank    float64 `gorm:"column:years_in_current_rank" json:"years_in_current_rank"`
	SeminarsRequired      int     `gorm:"column:seminars_required" json:"seminars_required"`
	CampDutyDays          int     `gorm:"column:camp_duty_days" json:"camp_duty_days"`
	MinEducationLevel     *string `gorm:"column:min_education_level" json:"min_education_level,omitempty"`
	IsActive              bool    `gorm:"column:is_active" json:"is_active"`

	CreateAt time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName specifies the table for PromotionRequirement.
func (PromotionRequirement) TableName() string {
	return "promotion_requirements"
}

// ===== Request DTOs =====

type PromotionRequirementCreateRequest struct {
	FromRank              string  `json:"from_rank" binding:"required"`
	ToRank                *string `json:"to_rank"`
	RequiredTrainingTypes int     `json:"required_training_types" binding:"min=0"`
	YearsInCurrentRank    float64 `json:"years_in_current_rank" binding:"min=0"`
	SeminarsRequired      int     `json:"seminars_required" binding:"min=0"`
	CampDutyDays          int     `json:"camp_duty_days" binding:"min=0"`
	MinEducationLevel     *string `json:"min_education_level"`
	IsActive              *bool   `json:"is_active"`
}

type PromotionRequirementUpdateRequest struct {
	ToRank                *string  `json:"to_rank"`
	RequiredTrainingTypes *int     `json:"required_training_types" binding:"omitempty,min=0"`
	YearsInCurrentRank    *float64 `json:"years_in_current_rank" binding:"omitempty,min=0"`
	SeminarsRequired      *int     `json:"seminars_required" binding:"omitempty,min=0"`
	CampDutyDays          *int     `json:"camp_duty_days" binding:"omitempty,min=0"`
	MinEducationLevel     *string  `json:"min_education_level"`
	IsActive              *bool    `json:"is_active"`
}
