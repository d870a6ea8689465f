package models

import (
	"time"
)

type User struct {
	UserID           int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	UserFname        string     `gorm:"column:user_fname" json:"user_fname"`
	UserLname        string     `gorm:"column:user_lname" json:"user_lname"`
	Gender           string     `gorm:"column:gender" json:"gender"`
	Email            string     `gorm:"column:email;unique" json:"email"`
	ServiceNumber    string     `gorm:"column:service_number;unique" json:"service_number"`
	Password         string     `gorm:"column:password" json:"-"`
	RoleID           int        `gorm:"column:role_id" json:"role_id"`
	RankID           int        `gorm:"column:rank_id" json:"rank_id"`
	CompanyID        *int       `gorm:"column:company_id" json:"company_id,omitempty"`
	CommissionType   string     `gorm:"column:commission_type" json:"commission_type"`
	HighestEducation *string    `gorm:"column:highest_education" json:"highest_education,omitempty"`
	DateOfEnlistment *time.Time `gorm:"column:date_of_enlistment" json:"date_of_enlistment,omitempty"`
	RankAssignedAt   *time.Time `gorm:"column:rank_assigned_at" json:"rank_assigned_at,omitempty"`
	Phone            *string    `gorm:"column:phone" json:"phone,omitempty"`
	AccountStatus    string     `gorm:"column:account_status;type:enum('active','inactive');default:'active'" json:"account_status"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Role    Role     `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Rank    Rank     `gorm:"foreignKey:RankID" json:"rank,omitempty"`
	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// FullName returns "first last" for display and notifications.
func (u *User) FullName() string {
	return u.UserFname + " " + u.UserLname
}

type Role struct {
	RoleID   int        `gorm:"primaryKey;column:role_id" json:"role_id"`
	Role     string     `gorm:"column:role" json:"role"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// Role IDs as seeded in the roles table.
const (
	RoleReservist  = 1
	RoleStaff      = 2
	RoleAdmin      = 3
	RoleSuperAdmin = 4
)

type Rank struct {
	RankID    int        `gorm:"primaryKey;column:rank_id" json:"rank_id"`
	RankName  string     `gorm:"column:rank_name" json:"rank_name"`
	RankOrder int        `gorm:"column:rank_order" json:"rank_order"`
	IsActive  bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

type Company struct {
	CompanyID   int        `gorm:"primaryKey;column:company_id" json:"company_id"`
	CompanyName string     `gorm:"column:company_name" json:"company_name"`
	CompanyCode string     `gorm:"column:company_code" json:"company_code"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}

func (Rank) TableName() string {
	return "ranks"
}

func (Company) TableName() string {
	return "companies"
}
