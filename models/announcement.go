package models

import (
	"fmt"
	"time"
)

// Announcement represents the announcements table
type Announcement struct {
	AnnouncementID int     `gorm:"primaryKey;column:announcement_id" json:"announcement_id"`
	Title          string  `gorm:"column:title" json:"title"`
	Description    *string `gorm:"column:description" json:"description"`
	FileName       *string `gorm:"column:file_name" json:"file_name,omitempty"`
	FilePath       *string `gorm:"column:file_path" json:"file_path,omitempty"`
	FileSize       *int64  `gorm:"column:file_size" json:"file_size"`
	MimeType       *string `gorm:"column:mime_type" json:"mime_type"`

	AnnouncementType string `gorm:"column:announcement_type;type:enum('general','training','promotion','mobilization');default:'general'" json:"announcement_type"`
	Priority         string `gorm:"column:priority;type:enum('normal','high','urgent');default:'normal'" json:"priority"`
	DisplayOrder     *int   `gorm:"column:display_order" json:"display_order"`
	Status           string `gorm:"column:status;type:enum('active','inactive');default:'active'" json:"status"`

	PublishedAt *time.Time `gorm:"column:published_at" json:"published_at"`
	ExpiredAt   *time.Time `gorm:"column:expired_at" json:"expired_at"`

	CreatedBy int        `gorm:"column:created_by" json:"created_by"`
	CreateAt  time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt  time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Creator User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

// TableName overrides
func (Announcement) TableName() string {
	return "announcements"
}

// IsExpired reports whether the announcement is past its expiry time.
func (a *Announcement) IsExpired() bool {
	if a.ExpiredAt == nil {
		return false
	}
	return a.ExpiredAt.Before(time.Now())
}

// IsActive reports whether the announcement is published and not expired.
func (a *Announcement) IsActive() bool {
	return a.Status == "active" && !a.IsExpired()
}

// GetFileSizeReadable formats the attachment size for display.
func (a *Announcement) GetFileSizeReadable() string {
	if a.FileSize == nil {
		return ""
	}

	size := float64(*a.FileSize)
	units := []string{"B", "KB", "MB", "GB"}

	for i, unit := range units {
		if size < 1024 || i == len(units)-1 {
			if i == 0 {
				return fmt.Sprintf("%.0f %s", size, unit)
			}
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.2f %s", size, units[len(units)-1])
}

// ===== Request/Response DTOs =====

type AnnouncementCreateRequest struct {
	Title            string     `json:"title" binding:"required"`
	Description      *string    `json:"description"`
	AnnouncementType string     `json:"announcement_type" binding:"required,oneof=general training promotion mobilization"`
	Priority         string     `json:"priority" binding:"omitempty,oneof=normal high urgent"`
	DisplayOrder     *int       `json:"display_order"`
	Status           string     `json:"status" binding:"omitempty,oneof=active inactive"`
	PublishedAt      *time.Time `json:"published_at"`
	ExpiredAt        *time.Time `json:"expired_at"`
}

type AnnouncementUpdateRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	AnnouncementType *string    `json:"announcement_type" binding:"omitempty,oneof=general training promotion mobilization"`
	Priority         *string    `json:"priority" binding:"omitempty,oneof=normal high urgent"`
	DisplayOrder     *int       `json:"display_order"`
	Status           *string    `json:"status" binding:"omitempty,oneof=active inactive"`
	PublishedAt      *time.Time `json:"published_at"`
	ExpiredAt        *time.Time `json:"expired_at"`
}

// AnnouncementResponse for API responses
type AnnouncementResponse struct {
	AnnouncementID   int        `json:"announcement_id"`
	Title            string     `json:"title"`
	Description      *string    `json:"description"`
	FileName         *string    `json:"file_name,omitempty"`
	FileSize         *int64     `json:"file_size"`
	FileSizeReadable string     `json:"file_size_readable,omitempty"`
	MimeType         *string    `json:"mime_type"`
	AnnouncementType string     `json:"announcement_type"`
	Priority         string     `json:"priority"`
	DisplayOrder     *int       `json:"display_order"`
	Status           string     `json:"status"`
	PublishedAt      *time.Time `json:"published_at"`
	ExpiredAt        *time.Time `json:"expired_at"`
	IsExpired        bool       `json:"is_expired"`
	IsActive         bool       `json:"is_active"`
	CreatedBy        int        `json:"created_by"`
	CreatorName      string     `json:"creator_name,omitempty"`
	CreateAt         time.Time  `json:"create_at"`
	UpdateAt         time.Time  `json:"update_at"`
}

// ToResponse converts Announcement to AnnouncementResponse
func (a *Announcement) ToResponse() AnnouncementResponse {
	resp := AnnouncementResponse{
		AnnouncementID:   a.AnnouncementID,
		Title:            a.Title,
		Description:      a.Description,
		FileName:         a.FileName,
		FileSize:         a.FileSize,
		FileSizeReadable: a.GetFileSizeReadable(),
		MimeType:         a.MimeType,
		AnnouncementType: a.AnnouncementType,
		Priority:         a.Priority,
		DisplayOrder:     a.DisplayOrder,
		Status:           a.Status,
		PublishedAt:      a.PublishedAt,
		ExpiredAt:        a.ExpiredAt,
		IsExpired:        a.IsExpired(),
		IsActive:         a.IsActive(),
		CreatedBy:        a.CreatedBy,
		CreateAt:         a.CreateAt,
		UpdateAt:         a.UpdateAt,
	}

	if a.Creator.UserID != 0 {
		resp.CreatorName = a.Creator.FullName()
	}
	return resp
}
