package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"reserve-management-api/config"
	"reserve-management-api/models"
	"reserve-management-api/services"
	"reserve-management-api/utils"

	"github.com/gin-gonic/gin"
)

// UploadRIDSDocument attaches a supporting document to a RIDS form. Only the
// owner may upload, and only while the form is still editable.
func UploadRIDSDocument(c *gin.Context) {
	ridsID, err := strconv.Atoi(c.Param("id"))
	if err != nil || ridsID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid RIDS ID"})
		return
	}

	userID, _ := c.Get("userID")

	// Check form exists and belongs to user
	var form models.RIDSForm
	if err := config.DB.Where("rids_id = ? AND reservist_id = ? AND delete_at IS NULL",
		ridsID, userID).First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "RIDS form not found"})
		return
	}

	// Documents can only change while the form is editable
	if form.Status != services.RIDSStatusDraft && form.Status != services.RIDSStatusRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot upload documents to a submitted or processed form"})
		return
	}

	documentTypeID, err := strconv.Atoi(c.PostForm("document_type_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document type"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	// Validate file size
	maxSize := int64(10 * 1024 * 1024) // 10MB
	if file.Size > maxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 10MB limit"})
		return
	}

	// Validate file type
	allowedTypes := map[string]bool{
		".pdf":  true,
		".doc":  true,
		".docx": true,
		".png":  true,
		".jpg":  true,
		".jpeg": true,
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedTypes[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User not found"})
		return
	}

	userFolderPath, err := utils.CreateUserFolderIfNotExists(user, utils.UploadBasePath())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user directory"})
		return
	}

	ridsFolderPath, err := utils.CreateRIDSFolder(userFolderPath, ridsID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create form directory"})
		return
	}

	storedFilename := utils.GenerateStoredFilename(file.Filename)
	fullPath := filepath.Join(ridsFolderPath, storedFilename)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	now := time.Now()
	fileUpload := models.FileUpload{
		OriginalName: file.Filename,
		StoredPath:   fullPath,
		FileSize:     file.Size,
		MimeType:     file.Header.Get("Content-Type"),
		IsPublic:     false,
		UploadedBy:   userID.(int),
		UploadedAt:   now,
		CreateAt:     now,
		UpdateAt:     now,
	}

	if err := config.DB.Create(&fileUpload).Error; err != nil {
		// Delete uploaded file if database save fails
		os.Remove(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file info"})
		return
	}

	document := models.RIDSDocument{
		RIDSID:           ridsID,
		DocumentTypeID:   documentTypeID,
		FileID:           fileUpload.FileID,
		UploadedBy:       userID.(int),
		OriginalFilename: file.Filename,
		StoredFilename:   storedFilename,
		FileType:         strings.TrimPrefix(ext, "."),
		UploadedAt:       &now,
		CreateAt:         &now,
		UpdateAt:         &now,
	}

	if err := config.DB.Create(&document).Error; err != nil {
		os.Remove(fullPath)
		config.DB.Delete(&fileUpload)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded successfully",
		"document": document,
		"file":     fileUpload,
	})
}

// GetRIDSDocuments lists documents attached to a form.
func GetRIDSDocuments(c *gin.Context) {
	ridsID, err := strconv.Atoi(c.Param("id"))
	if err != nil || ridsID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid RIDS ID"})
		return
	}

	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var form models.RIDSForm
	if err := config.DB.Where("rids_id = ? AND delete_at IS NULL", ridsID).First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "RIDS form not found"})
		return
	}

	if roleID.(int) == models.RoleReservist && form.ReservistID != userID.(int) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	var documents []models.RIDSDocument
	if err := config.DB.Preload("File").Preload("DocumentType").
		Where("rids_id = ? AND delete_at IS NULL", ridsID).
		Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": documents,
		"total":     len(documents),
	})
}

// DownloadRIDSDocument streams a stored document back to the caller.
func DownloadRIDSDocument(c *gin.Context) {
	documentID, err := strconv.Atoi(c.Param("document_id"))
	if err != nil || documentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	var document models.RIDSDocument
	if err := config.DB.Preload("File").
		Where("document_id = ? AND delete_at IS NULL", documentID).
		First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var form models.RIDSForm
	if err := config.DB.Where("rids_id = ? AND delete_at IS NULL", document.RIDSID).First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "RIDS form not found"})
		return
	}

	if roleID.(int) == models.RoleReservist && form.ReservistID != userID.(int) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	if _, err := os.Stat(document.File.StoredPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stored file is missing"})
		return
	}

	c.FileAttachment(document.File.StoredPath, document.OriginalFilename)
}

// DeleteRIDSDocument soft deletes a document while the form is editable.
func DeleteRIDSDocument(c *gin.Context) {
	documentID, err := strconv.Atoi(c.Param("document_id"))
	if err != nil || documentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	userID, _ := c.Get("userID")

	var document models.RIDSDocument
	if err := config.DB.Where("document_id = ? AND uploaded_by = ? AND delete_at IS NULL",
		documentID, userID).First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	var form models.RIDSForm
	if err := config.DB.Where("rids_id = ? AND delete_at IS NULL", document.RIDSID).First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "RIDS form not found"})
		return
	}

	if form.Status != services.RIDSStatusDraft && form.Status != services.RIDSStatusRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot remove documents from a submitted or processed form"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&document).
		Updates(map[string]interface{}{"delete_at": now, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}

// GetDocumentTypes lists the document types attachable to a RIDS form.
func GetDocumentTypes(c *gin.Context) {
	var types []models.DocumentType
	if err := config.DB.Where("delete_at IS NULL").
		Order("document_order ASC").
		Find(&types).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch document types"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document_types": types,
		"total":          len(types),
	})
}
