package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"petdiary-backend/pkg/utils"
)

// MediaStore persists an uploaded file and returns an externally-addressable
// reference. A nil header or empty filename is a no-op, not an error.
// Handlers must obtain the reference before writing any document that points
// at it.
type MediaStore interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (string, error)
}

// LocalMediaStore writes uploads under a local directory served at
// /static/uploads/.
type LocalMediaStore struct {
	dir string
	now func() time.Time
}

func NewLocalMediaStore(dir string) (*LocalMediaStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalMediaStore{dir: dir, now: time.Now}, nil
}

func (s *LocalMediaStore) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Filename == "" {
		return "", nil
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := utils.TimestampedFilename(fh.Filename, s.now())
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return "/static/uploads/" + name, nil
}
