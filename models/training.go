package models

import "time"

// Session types recognized by the metrics aggregation.
const (
	SessionTypeTraining = "training"
	SessionTypeCampDuty = "camp_duty"
	SessionTypeSeminar  = "seminar"
)

// TrainingSession represents the training_sessions table. Camp duty tours and
// seminars are stored in the same table, discriminated by session_type.
type TrainingSession struct {
	SessionID    int        `gorm:"primaryKey;column:session_id" json:"session_id"`
	Title        string     `gorm:"column:title" json:"title"`
	Description  *string    `gorm:"column:description" json:"description"`
	SessionType  string     `gorm:"column:session_type;type:enum('training','camp_duty','seminar');default:'training'" json:"session_type"`
	TrainingType *string    `gorm:"column:training_type" json:"training_type,omitempty"`
	Hours        float64    `gorm:"column:hours" json:"hours"`
	DurationDays int        `gorm:"column:duration_days" json:"duration_days"`
	Location     *string    `gorm:"column:location" json:"location,omitempty"`
	StartDate    time.Time  `gorm:"column:start_date" json:"start_date"`
	EndDate      *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	Capacity     *int       `gorm:"column:capacity" json:"capacity,omitempty"`
	Status       string     `gorm:"column:status;type:enum('scheduled','ongoing','completed','cancelled');default:'scheduled'" json:"status"`

	CreatedBy int        `gorm:"column:created_by" json:"created_by"`
	CreateAt  time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt  time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Creator User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

// TrainingAttendance represents the training_attendances table linking a
// reservist to a session they completed.
type TrainingAttendance struct {
	AttendanceID int        `gorm:"primaryKey;column:attendance_id" json:"attendance_id"`
	SessionID    int        `gorm:"column:session_id" json:"session_id"`
	ReservistID  int        `gorm:"column:reservist_id" json:"reservist_id"`
	Completed    bool       `gorm:"column:completed" json:"completed"`
	HoursEarned  float64    `gorm:"column:hours_earned" json:"hours_earned"`
	DaysServed   int        `gorm:"column:days_served" json:"days_served"`
	RecordedBy   int        `gorm:"column:recorded_by" json:"recorded_by"`
	RecordedAt   time.Time  `gorm:"column:recorded_at" json:"recorded_at"`
	CreateAt     time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt     time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Session   TrainingSession `gorm:"foreignKey:SessionID" json:"session,omitempty"`
	Reservist User            `gorm:"foreignKey:ReservistID" json:"reservist,omitempty"`
}

// TableName overrides
func (TrainingSession) TableName() string {
	return "training_sessions"
}

func (TrainingAttendance) TableName() string {
	return "training_attendances"
}

// ===== Request DTOs =====

type TrainingSessionCreateRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  *string    `json:"description"`
	SessionType  string     `json:"session_type" binding:"omitempty,oneof=training camp_duty seminar"`
	TrainingType *string    `json:"training_type"`
	Hours        float64    `json:"hours" binding:"min=0"`
	DurationDays int        `json:"duration_days" binding:"min=0"`
	Location     *string    `json:"location"`
	StartDate    time.Time  `json:"start_date" binding:"required"`
	EndDate      *time.Time `json:"end_date"`
	Capacity     *int       `json:"capacity"`
}

type TrainingSessionUpdateRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	SessionType  *string    `json:"session_type" binding:"omitempty,oneof=training camp_duty seminar"`
	TrainingType *string    `json:"training_type"`
	Hours        *float64   `json:"hours" binding:"omitempty,min=0"`
	DurationDays *int       `json:"duration_days" binding:"omitempty,min=0"`
	Location     *string    `json:"location"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Capacity     *int       `json:"capacity"`
	Status       *string    `json:"status" binding:"omitempty,oneof=scheduled ongoing completed cancelled"`
}

type AttendanceRequest struct {
	ReservistID int      `json:"reservist_id" binding:"required"`
	Completed   *bool    `json:"completed"`
	HoursEarned *float64 `json:"hours_earned" binding:"omitempty,min=0"`
	DaysServed  *int     `json:"days_served" binding:"omitempty,min=0"`
}
