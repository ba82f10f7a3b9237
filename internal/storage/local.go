package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// LocalStorage writes objects below a root directory on an afero filesystem.
type LocalStorage struct {
	fs   afero.Fs
	root string
}

func NewLocalStorage(root string) *LocalStorage {
	if root == "" {
		root = "."
	}
	return NewLocalStorageWithFs(afero.NewOsFs(), root)
}

// NewLocalStorageWithFs is used by tests with an afero.MemMapFs.
func NewLocalStorageWithFs(fsys afero.Fs, root string) *LocalStorage {
	return &LocalStorage{fs: fsys, root: root}
}

func (s *LocalStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	full, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := s.fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := s.fs.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	written, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr != nil {
		_ = s.fs.Remove(full)
		return "", fmt.Errorf("failed to write file: %w", copyErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to close file: %w", closeErr)
	}
	if size >= 0 && written != size {
		_ = s.fs.Remove(full)
		return "", fmt.Errorf("short write: %d of %d bytes", written, size)
	}

	return full, nil
}

// Ping reports whether the root directory is usable. A missing root is
// fine since Put creates directories on demand.
func (s *LocalStorage) Ping(ctx context.Context) error {
	info, err := s.fs.Stat(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("storage root %q is not a directory", s.root)
	}
	return nil
}

// resolve rejects keys that would escape the root.
func (s *LocalStorage) resolve(key string) (string, error) {
	clean := path.Clean("/" + filepath.ToSlash(key))
	if clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
