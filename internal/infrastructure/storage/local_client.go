package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"brokerdex/internal/domain/service"
)

// LocalStorageClient stores uploads on local disk and serves them from
// baseURL + "/uploads/". Object names are a fresh uuid plus the original
// extension, so concurrent uploads of identically named files cannot collide.
type LocalStorageClient struct {
	dir     string
	baseURL string
}

func NewLocalStorageClient(dir, baseURL string) (*LocalStorageClient, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}

	return &LocalStorageClient{dir: dir, baseURL: baseURL}, nil
}

func (c *LocalStorageClient) UploadFile(ctx context.Context, file io.Reader, originalName string) (*service.UploadResult, error) {
	ext := filepath.Ext(originalName)
	objectName := uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(c.dir, objectName))
	if err != nil {
		return nil, fmt.Errorf("storage: create file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		os.Remove(dst.Name())
		return nil, fmt.Errorf("storage: write file: %w", err)
	}

	return &service.UploadResult{
		URL:        c.baseURL + "/uploads/" + objectName,
		ObjectName: objectName,
		Size:       size,
	}, nil
}

func (c *LocalStorageClient) DeleteFile(ctx context.Context, objectName string) error {
	// objectName is always a generated uuid-based name; keep path traversal
	// out regardless.
	if filepath.Base(objectName) != objectName {
		return fmt.Errorf("storage: invalid object name %q", objectName)
	}

	if err := os.Remove(filepath.Join(c.dir, objectName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: delete file: %w", err)
	}

	return nil
}

// Dir exposes the storage root for static file serving.
func (c *LocalStorageClient) Dir() string {
	return c.dir
}
