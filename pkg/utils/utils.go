package utils

import (
	"crypto/rand"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"ShrimpVision/pkg/response"

	"github.com/oklog/ulid/v2"
)

var (
	ErrInvalidFileType = response.NewError(http.StatusBadRequest, "invalid file type")
	ErrFileTooLarge    = response.NewError(http.StatusBadRequest, "file too large")
)

// MaxImageSize caps uploads at 50MB, matching the fiber body limit.
const MaxImageSize = 50 * 1024 * 1024

var allowedImageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".bmp": {}, ".tiff": {}, ".tif": {},
	".heic": {}, ".heif": {}, ".webp": {}, ".gif": {},
}

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateImageFile(file *multipart.FileHeader) error
	ImageExtension(filename string) (string, bool)
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (u *utils) ValidateImageFile(file *multipart.FileHeader) error {
	if _, ok := u.ImageExtension(file.Filename); !ok {
		return ErrInvalidFileType
	}
	if file.Size > MaxImageSize {
		return ErrFileTooLarge
	}
	return nil
}

// ImageExtension returns the lowercase extension and whether it is an
// accepted image type.
func (u *utils) ImageExtension(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := allowedImageExtensions[ext]
	return ext, ok
}
