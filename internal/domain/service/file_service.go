package service

import (
	"context"
	"io"
)

// UploadResult describes where a stored file ended up.
type UploadResult struct {
	URL        string
	ObjectName string
	Size       int64
}

// FileStorage persists uploaded files under generated, collision-free names.
type FileStorage interface {
	// UploadFile stores the stream under a fresh name that preserves the
	// extension of originalName.
	UploadFile(ctx context.Context, file io.Reader, originalName string) (*UploadResult, error)
	// DeleteFile removes a previously stored object. Used for best-effort
	// cleanup when a submission fails after its files were written.
	DeleteFile(ctx context.Context, objectName string) error
}
