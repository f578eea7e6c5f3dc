package upload

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"bakery/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MaxFileSize    = 5 * 1024 * 1024 // 5 MB
	UploadsBaseDir = "./uploads"
	PublicPrefix   = "/uploads/"
)

// AllowedMimeTypes are matched as prefixes of the declared Content-Type.
var AllowedMimeTypes = []string{"image/jpeg", "image/png", "image/gif"}

// Service stores product images on local disk under a single root and
// hands out public paths of the form /uploads/<uuid>_<original name>.
type Service struct {
	baseDir string
	log     *zap.Logger
}

// NewService makes sure the upload root exists. A failure here is fatal for the caller.
func NewService(baseDir string, log *zap.Logger) (*Service, error) {
	if baseDir == "" {
		baseDir = UploadsBaseDir
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrStorageUnavailable, baseDir, err)
	}
	return &Service{baseDir: baseDir, log: log}, nil
}

// BaseDir is the directory served under PublicPrefix.
func (s *Service) BaseDir() string {
	return s.baseDir
}

// Store copies the file into the upload root and returns its public path.
// A nil or empty file is not an error: Store returns "" and writes nothing.
func (s *Service) Store(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil || fileHeader.Size == 0 {
		return "", nil
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		metrics.AssetOperations.WithLabelValues("store", "error").Inc()
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		metrics.AssetOperations.WithLabelValues("store", "error").Inc()
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	filename := uuid.NewString() + "_" + originalName(fileHeader.Filename)
	absPath := filepath.Join(s.baseDir, filename)

	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		metrics.AssetOperations.WithLabelValues("store", "error").Inc()
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(absPath)
		metrics.AssetOperations.WithLabelValues("store", "error").Inc()
		return "", fmt.Errorf("%w: write %s: %v", ErrStorageUnavailable, filename, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(absPath)
		metrics.AssetOperations.WithLabelValues("store", "error").Inc()
		return "", fmt.Errorf("%w: close %s: %v", ErrStorageUnavailable, filename, err)
	}

	metrics.AssetOperations.WithLabelValues("store", "ok").Inc()
	return PublicPrefix + filename, nil
}

// Delete removes the file behind a public path. It never fails loudly: paths outside
// PublicPrefix are rejected without touching the filesystem, and missing files or
// I/O errors return false.
func (s *Service) Delete(publicPath string) bool {
	if !strings.HasPrefix(publicPath, PublicPrefix) {
		return false
	}

	name := strings.TrimPrefix(publicPath, PublicPrefix)
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return false
	}

	if err := os.Remove(filepath.Join(s.baseDir, name)); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("failed to delete file", zap.String("path", publicPath), zap.Error(err))
			metrics.AssetOperations.WithLabelValues("delete", "error").Inc()
			return false
		}
		metrics.AssetOperations.WithLabelValues("delete", "missing").Inc()
		return false
	}

	metrics.AssetOperations.WithLabelValues("delete", "ok").Inc()
	return true
}

// IsImage checks the declared content type only; it does not read the file.
func (s *Service) IsImage(fileHeader *multipart.FileHeader) bool {
	return IsImage(fileHeader)
}

func IsImage(fileHeader *multipart.FileHeader) bool {
	if fileHeader == nil {
		return false
	}
	contentType := fileHeader.Header.Get("Content-Type")
	for _, allowed := range AllowedMimeTypes {
		if strings.HasPrefix(contentType, allowed) {
			return true
		}
	}
	return false
}

// Validate applies the form-level checks used before Store: declared image type and size limit.
func Validate(fileHeader *multipart.FileHeader, maxSize int64) error {
	if fileHeader == nil || fileHeader.Size == 0 {
		return nil
	}
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}
	if fileHeader.Size > maxSize {
		return ErrFileTooLarge
	}
	if !IsImage(fileHeader) {
		return ErrInvalidMimeType
	}
	return nil
}

// originalName keeps the client's file name, suffix included, minus any directory part.
func originalName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}
