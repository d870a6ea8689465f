package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"reserve-management-api/config"
	"reserve-management-api/models"
	"reserve-management-api/utils"

	"github.com/gin-gonic/gin"
)

type UserCreateRequest struct {
	UserFname        string     `json:"user_fname" binding:"required"`
	UserLname        string     `json:"user_lname" binding:"required"`
	Gender           string     `json:"gender" binding:"omitempty,oneof=male female"`
	Email            string     `json:"email" binding:"required,email"`
	ServiceNumber    string     `json:"service_number" binding:"required"`
	Password         string     `json:"password" binding:"required,min=8"`
	RoleID           int        `json:"role_id" binding:"required,min=1,max=4"`
	RankID           int        `json:"rank_id" binding:"required"`
	CompanyID        *int       `json:"company_id"`
	CommissionType   string     `json:"commission_type"`
	HighestEducation *string    `json:"highest_education"`
	DateOfEnlistment *time.Time `json:"date_of_enlistment"`
	RankAssignedAt   *time.Time `json:"rank_assigned_at"`
	Phone            *string    `json:"phone"`
}

type UserUpdateRequest struct {
	UserFname        *string    `json:"user_fname"`
	UserLname        *string    `json:"user_lname"`
	Email            *string    `json:"email" binding:"omitempty,email"`
	RoleID           *int       `json:"role_id" binding:"omitempty,min=1,max=4"`
	RankID           *int       `json:"rank_id"`
	CompanyID        *int       `json:"company_id"`
	CommissionType   *string    `json:"commission_type"`
	HighestEducation *string    `json:"highest_education"`
	RankAssignedAt   *time.Time `json:"rank_assigned_at"`
	Phone            *string    `json:"phone"`
	AccountStatus    *string    `json:"account_status" binding:"omitempty,oneof=active inactive"`
}

// GetUsers lists accounts for admin, optionally filtered by role or company.
func GetUsers(c *gin.Context) {
	query := config.DB.Preload("Role").Preload("Rank").Preload("Company").
		Where("delete_at IS NULL")

	if roleID, err := strconv.Atoi(c.Query("role_id")); err == nil {
		query = query.Where("role_id = ?", roleID)
	}
	if companyID, err := strconv.Atoi(c.Query("company_id")); err == nil {
		query = query.Where("company_id = ?", companyID)
	}

	var users []models.User
	if err := query.Order("user_lname ASC, user_fname ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": len(users),
	})
}

// GetUser returns one account.
func GetUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := config.DB.Preload("Role").Preload("Rank").Preload("Company").
		Where("user_id = ? AND delete_at IS NULL", userID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// CreateUser registers a new account (admin only). Super admin accounts can
// only be created by another super admin.
func CreateUser(c *gin.Context) {
	var req UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.ValidateServiceNumber(req.ServiceNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service number format (expected e.g. RA-104523)"})
		return
	}

	actorRole, _ := c.Get("roleID")
	if req.RoleID == models.RoleSuperAdmin && actorRole.(int) != models.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only a super admin can create super admin accounts"})
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	now := time.Now()
	user := models.User{
		UserFname:        utils.SanitizeInput(req.UserFname),
		UserLname:        utils.SanitizeInput(req.UserLname),
		Gender:           req.Gender,
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		ServiceNumber:    strings.ToUpper(strings.TrimSpace(req.ServiceNumber)),
		Password:         hashed,
		RoleID:           req.RoleID,
		RankID:           req.RankID,
		CompanyID:        req.CompanyID,
		CommissionType:   req.CommissionType,
		HighestEducation: req.HighestEducation,
		DateOfEnlistment: req.DateOfEnlistment,
		RankAssignedAt:   req.RankAssignedAt,
		Phone:            req.Phone,
		AccountStatus:    "active",
		CreateAt:         &now,
		UpdateAt:         &now,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email or service number already in use"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created",
		"user":    user,
	})
}

// UpdateUser edits an account (admin only).
func UpdateUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorRole, _ := c.Get("roleID")
	if req.RoleID != nil && *req.RoleID == models.RoleSuperAdmin && actorRole.(int) != models.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only a super admin can grant the super admin role"})
		return
	}

	if req.UserFname != nil {
		user.UserFname = utils.SanitizeInput(*req.UserFname)
	}
	if req.UserLname != nil {
		user.UserLname = utils.SanitizeInput(*req.UserLname)
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.RoleID != nil {
		user.RoleID = *req.RoleID
	}
	if req.RankID != nil {
		user.RankID = *req.RankID
	}
	if req.CompanyID != nil {
		user.CompanyID = req.CompanyID
	}
	if req.CommissionType != nil {
		user.CommissionType = *req.CommissionType
	}
	if req.HighestEducation != nil {
		user.HighestEducation = req.HighestEducation
	}
	if req.RankAssignedAt != nil {
		user.RankAssignedAt = req.RankAssignedAt
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.AccountStatus != nil {
		user.AccountStatus = *req.AccountStatus
	}
	now := time.Now()
	user.UpdateAt = &now

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated",
		"user":    user,
	})
}

// DeleteUser soft deletes an account (admin only). Self-deletion and super
// admin deletion by non-super-admins are rejected.
func DeleteUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	actorID, _ := c.Get("userID")
	if actorID.(int) == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	actorRole, _ := c.Get("roleID")
	if user.RoleID == models.RoleSuperAdmin && actorRole.(int) != models.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only a super admin can delete super admin accounts"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&user).
		Updates(map[string]interface{}{"delete_at": now, "account_status": "inactive", "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
