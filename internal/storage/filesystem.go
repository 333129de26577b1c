package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sumanurawat/phoenix-sub003/internal/models"
)

// FileStorage keeps one JSON document per submission on disk
type FileStorage struct {
	dir   string
	clock writeClock
}

// NewFileStorage creates the collection directory under basePath if needed.
func NewFileStorage(basePath string) (*FileStorage, error) {
	dir := filepath.Join(basePath, Collection)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) Close() error { return nil }

func (f *FileStorage) path(id string) (string, error) {
	if id == "" || id != filepath.Base(id) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid submission id %q", id)
	}
	return filepath.Join(f.dir, id+".json"), nil
}

// CreateSubmission writes the document to a temp file and links it into
// place, so readers never see a partial document and an existing id is
// never overwritten.
func (f *FileStorage) CreateSubmission(ctx context.Context, s models.Submission) (models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return models.Submission{}, err
	}
	dst, err := f.path(s.ID)
	if err != nil {
		return models.Submission{}, err
	}

	out := s.Clone()
	out.Timestamp = f.clock.next()
	data, err := json.Marshal(out)
	if err != nil {
		return models.Submission{}, fmt.Errorf("encode %s: %w", s.ID, err)
	}

	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return models.Submission{}, fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return models.Submission{}, fmt.Errorf("write %s: %w", s.ID, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return models.Submission{}, fmt.Errorf("sync %s: %w", s.ID, err)
	}
	if err := tmp.Close(); err != nil {
		return models.Submission{}, fmt.Errorf("close %s: %w", s.ID, err)
	}

	if err := os.Link(tmp.Name(), dst); err != nil {
		if errors.Is(err, os.ErrExist) {
			return models.Submission{}, fmt.Errorf("create %s: %w", s.ID, ErrDuplicate)
		}
		return models.Submission{}, fmt.Errorf("create %s: %w", s.ID, err)
	}
	return out, nil
}

// GetSubmission reads a stored document
func (f *FileStorage) GetSubmission(ctx context.Context, id string) (models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return models.Submission{}, err
	}
	p, err := f.path(id)
	if err != nil {
		return models.Submission{}, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return models.Submission{}, ErrNotFound
	}
	if err != nil {
		return models.Submission{}, fmt.Errorf("read %s: %w", id, err)
	}

	var s models.Submission
	if err := json.Unmarshal(data, &s); err != nil {
		return models.Submission{}, fmt.Errorf("decode %s: %w", id, err)
	}
	return s, nil
}
