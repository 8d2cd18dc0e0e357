// Package storage provides product image storage backends and image processing.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	catalogapp "github.com/fliamecomm/storefront/internal/application/catalog"
	infraconfig "github.com/fliamecomm/storefront/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New creates the image storage backend selected by cfg.Type
func New(ctx context.Context, cfg *infraconfig.StorageConfig, logger *zap.Logger) (catalogapp.ImageStorage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalObjectStorage(cfg.LocalDir)
	case "s3":
		s, err := NewS3ObjectStorage(ctx, cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}

// cleanKey normalises an object key and rejects keys that escape the storage root
func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("storage key is required")
	}
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(key, "/") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return cleaned, nil
}
