package models

import "time"

// RIDSForm represents the rids_forms table (Reservist Information Data Sheet).
type RIDSForm struct {
	RIDSID      int    `gorm:"primaryKey;column:rids_id" json:"rids_id"`
	ReservistID int    `gorm:"column:reservist_id" json:"reservist_id"`
	Status      string `gorm:"column:status;type:enum('draft','submitted','approved','rejected');default:'draft'" json:"status"`

	// Personnel data captured on the sheet
	HomeAddress      *string `gorm:"column:home_address" json:"home_address,omitempty"`
	BloodType        *string `gorm:"column:blood_type" json:"blood_type,omitempty"`
	CivilStatus      *string `gorm:"column:civil_status" json:"civil_status,omitempty"`
	Occupation       *string `gorm:"column:occupation" json:"occupation,omitempty"`
	EmergencyContact *string `gorm:"column:emergency_contact" json:"emergency_contact,omitempty"`
	EmergencyPhone   *string `gorm:"column:emergency_phone" json:"emergency_phone,omitempty"`
	SpecialSkills    *string `gorm:"column:special_skills" json:"special_skills,omitempty"`

	// Workflow fields. At most one of the approval pair and the rejection
	// reason is populated at any time; both are empty while draft/submitted.
	SubmittedBy     *int       `gorm:"column:submitted_by" json:"submitted_by,omitempty"`
	SubmittedAt     *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	ApprovedBy      *int       `gorm:"column:approved_by" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	RejectionReason *string    `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`

	CreateAt time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Reservist User  `gorm:"foreignKey:ReservistID" json:"reservist,omitempty"`
	Approver  *User `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
}

// RIDSStatusHistory tracks historical status changes for RIDS forms.
// Rows are append-only: they are never updated or deleted.
type RIDSStatusHistory struct {
	HistoryID  int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	RIDSID     int       `gorm:"column:rids_id" json:"rids_id"`
	FromStatus string    `gorm:"column:from_status" json:"from_status"`
	ToStatus   string    `gorm:"column:to_status" json:"to_status"`
	Reason     string    `gorm:"column:reason" json:"reason"`
	Notes      *string   `gorm:"column:notes" json:"notes"`
	ActionType string    `gorm:"column:action_type" json:"action_type"`
	ChangedBy  int       `gorm:"column:changed_by" json:"changed_by"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`

	// Relations
	Actor *User `gorm:"foreignKey:ChangedBy" json:"actor,omitempty"`
}

// TableName overrides
func (RIDSForm) TableName() string {
	return "rids_forms"
}

func (RIDSStatusHistory) TableName() string {
	return "rids_status_history"
}
