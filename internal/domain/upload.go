package domain

import (
	"context"
	"io"
)

// FileStore persists named blobs and returns a reference that Open accepts.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

type ResumeUpload struct {
	UserID   int64
	Filename string
	Data     []byte
	ClientIP string
}

type UploadUsecase interface {
	// UploadResume validates and stores the file, then points the student's
	// profile at it. It returns the stored file name.
	UploadResume(ctx context.Context, in ResumeUpload) (string, error)
	OpenUpload(ctx context.Context, filename string) (io.ReadCloser, error)
}
