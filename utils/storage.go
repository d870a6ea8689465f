package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"reserve-management-api/models"

	"github.com/google/uuid"
)

// UploadBasePath resolves the upload root from the environment.
func UploadBasePath() string {
	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	return uploadPath
}

// CreateUserFolderIfNotExists ensures the per-user upload folder exists and
// returns its path. Folders are keyed by service number to stay stable across
// name changes.
func CreateUserFolderIfNotExists(user models.User, basePath string) (string, error) {
	folderName := strings.ToUpper(strings.TrimSpace(user.ServiceNumber))
	if folderName == "" {
		folderName = fmt.Sprintf("user_%d", user.UserID)
	}

	folderPath := filepath.Join(basePath, folderName)
	if err := os.MkdirAll(folderPath, os.ModePerm); err != nil {
		return "", err
	}
	return folderPath, nil
}

// CreateRIDSFolder ensures the per-form subfolder exists under the user folder.
func CreateRIDSFolder(userFolderPath string, ridsID int) (string, error) {
	folderPath := filepath.Join(userFolderPath, fmt.Sprintf("rids_%d", ridsID))
	if err := os.MkdirAll(folderPath, os.ModePerm); err != nil {
		return "", err
	}
	return folderPath, nil
}

// GenerateStoredFilename builds a collision-free stored name keeping the
// original extension, e.g. "medical_cert_3f2a....pdf".
func GenerateStoredFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))

	// Keep a sanitized fragment of the original name for readability.
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)
	if len(base) > 40 {
		base = base[:40]
	}

	return fmt.Sprintf("%s_%s%s", base, uuid.NewString(), ext)
}
