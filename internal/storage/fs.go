package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/spf13/afero"
)

// FSStorage keeps blobs on an afero filesystem: a base-path OS filesystem in
// production, a MemMapFs in tests.
type FSStorage struct {
	fs afero.Fs
}

// NewFSStorage wraps the given filesystem.
func NewFSStorage(fsys afero.Fs) *FSStorage {
	return &FSStorage{fs: fsys}
}

// Save writes the blob to a temporary file and renames it into place so a
// failed write never leaves a partial blob at path.
func (s *FSStorage) Save(ctx context.Context, p string, r io.Reader) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fs.MkdirAll(path.Dir(p), 0o750); err != nil {
		return fmt.Errorf("failed to create blob directory: %w", err)
	}

	tmp := p + ".part"
	f, err := s.fs.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create blob: %w", err)
	}
	defer func() {
		if err != nil {
			_ = s.fs.Remove(tmp)
		}
	}()

	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write blob: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close blob: %w", err)
	}
	if err = s.fs.Rename(tmp, p); err != nil {
		return fmt.Errorf("failed to move blob into place: %w", err)
	}
	return nil
}

// Open returns the blob at p.
func (s *FSStorage) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.fs.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return f, nil
}

// Delete removes the blob at p.
func (s *FSStorage) Delete(ctx context.Context, p string) error {
	if err := s.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
