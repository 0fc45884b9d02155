package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"syncup/pkg/logger"

	"github.com/google/uuid"
)

const MaxUploadSize = 10 << 20

var (
	allowedImageTypes = map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

type MediaUseCase interface {
	// UploadImage stores an image and returns its public URL.
	UploadImage(ctx context.Context, userID int64, filename, contentType string, size int64, body io.ReadSeeker) (string, error)
}

type mediaUseCase struct {
	storage ObjectStorage
	logger  *logger.Logger
}

func NewMediaUseCase(storage ObjectStorage, logger *logger.Logger) MediaUseCase {
	return &mediaUseCase{
		storage: storage,
		logger:  logger,
	}
}

func (uc *mediaUseCase) UploadImage(ctx context.Context, userID int64, filename, contentType string, size int64, body io.ReadSeeker) (string, error) {
	if size <= 0 {
		return "", invalid("No file uploaded")
	}
	if size > MaxUploadSize {
		return "", invalid("File exceeds the 10 MB limit")
	}

	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if !allowedImageTypes[contentType] {
		return "", invalid("Only JPEG, PNG, GIF and WebP images are allowed")
	}

	name := fmt.Sprintf("posts/%d/%s-%s", userID, uuid.New().String(), SanitizeFilename(filename))
	url, err := uc.storage.UploadFile(name, body, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	uc.logger.Info("User %d uploaded %s (%d bytes)", userID, name, size)
	return url, nil
}

// SanitizeFilename keeps the base name's letters, digits, dots,
// underscores and dashes.
func SanitizeFilename(filename string) string {
	name := unsafeFilenameChars.ReplaceAllString(filepath.Base(filename), "")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "upload"
	}
	return name
}
