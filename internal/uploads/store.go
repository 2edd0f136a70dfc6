// Package uploads stores user-supplied files (post images, profile
// photos) on disk under the configured uploads directory. Database rows
// reference files by path relative to that directory.
package uploads

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"socialsync/internal/middleware"
	"socialsync/internal/models"

	"github.com/google/uuid"
)

// Store writes and removes uploaded files.
type Store struct {
	dir string
}

// NewStore ensures the uploads directory exists and returns a Store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the uploads directory root.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a collision-free name and returns
// the path relative to the uploads directory.
func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		return "", models.NewValidationError(fmt.Sprintf("Unsupported file type %q", ext))
	}

	name := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.NewString()[:8], ext)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return name, nil
}

// Remove deletes a stored file best-effort. A missing file or any other
// filesystem error is logged and swallowed: cleanup failures must not
// fail the request that triggered them.
func (s *Store) Remove(relPath string) {
	if relPath == "" {
		return
	}
	// Reject anything that could escape the uploads directory.
	clean := filepath.Clean(relPath)
	if strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, clean)); err != nil && !os.IsNotExist(err) {
		middleware.Logger.Warn("failed to remove uploaded file",
			slog.String("path", clean),
			slog.String("error", err.Error()),
		)
	}
}
