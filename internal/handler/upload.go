package handler

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// imageFields are the multipart field names accepted for an upload.
var imageFields = []string{"image", "foodImage"}

func formImage(c fiber.Ctx) (*multipart.FileHeader, bool) {
	for _, field := range imageFields {
		if fh, err := c.FormFile(field); err == nil && fh != nil {
			return fh, true
		}
	}
	return nil, false
}

// saveTempUpload writes the upload under dir with a random name. The returned
// cleanup removes the file and is safe to call more than once.
func saveTempUpload(c fiber.Ctx, fh *multipart.FileHeader, dir string) (string, func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", func() {}, fmt.Errorf("failed to create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	path := filepath.Join(dir, uuid.NewString()+ext)

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			if err := removeTemp(path); err != nil {
				slog.Error("error deleting temp file", "path", path, "error", err)
			}
		})
	}

	if err := c.SaveFile(fh, path); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("failed to save upload: %w", err)
	}
	return path, cleanup, nil
}

// removeTemp deletes path; a file that is already gone is not an error.
func removeTemp(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
