package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	catalogapp "github.com/fliamecomm/storefront/internal/application/catalog"
	"github.com/fliamecomm/storefront/internal/domain/shared"
)

// LocalObjectStorage keeps images on the local filesystem under a root directory
type LocalObjectStorage struct {
	root string
}

// Ensure LocalObjectStorage implements ImageStorage
var _ catalogapp.ImageStorage = (*LocalObjectStorage)(nil)

// NewLocalObjectStorage creates the root directory if needed
func NewLocalObjectStorage(root string) (*LocalObjectStorage, error) {
	if root == "" {
		return nil, errors.New("local storage directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalObjectStorage{root: root}, nil
}

func (s *LocalObjectStorage) path(key string) (string, string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", "", err
	}
	return cleaned, filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

// Put writes the object through a temp file so readers never see a partial image
func (s *LocalObjectStorage) Put(_ context.Context, key string, data []byte, _ string) error {
	_, target, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to store object: %w", err)
	}
	return nil
}

// Get opens a stored object for reading
func (s *LocalObjectStorage) Get(_ context.Context, key string) (io.ReadCloser, *catalogapp.StoredObject, error) {
	cleaned, target, err := s.path(key)
	if err != nil {
		return nil, nil, shared.ErrNotFound
	}

	f, err := os.Open(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, shared.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to open object: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to stat object: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, nil, shared.ErrNotFound
	}

	contentType := mime.TypeByExtension(filepath.Ext(target))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return f, &catalogapp.StoredObject{Key: cleaned, ContentType: contentType, Size: info.Size()}, nil
}

// Delete removes a stored object
func (s *LocalObjectStorage) Delete(_ context.Context, key string) error {
	_, target, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
