package catalog

import (
	"context"
	"io"
)

// StoredObject describes an object read back from image storage
type StoredObject struct {
	Key         string
	ContentType string
	Size        int64
}

// ImageStorage stores product images under opaque keys.
// Implemented by the infrastructure layer (local disk or S3).
type ImageStorage interface {
	// Put writes data under key, replacing any existing object
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get opens the object stored under key; a missing key yields shared.ErrNotFound
	Get(ctx context.Context, key string) (io.ReadCloser, *StoredObject, error)

	// Delete removes the object; a missing key is not an error
	Delete(ctx context.Context, key string) error
}

// ProcessedImage is an upload normalised for storage
type ProcessedImage struct {
	Data        []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
}

// ImageProcessor decodes an uploaded image and prepares it for storage
type ImageProcessor interface {
	Process(r io.Reader) (*ProcessedImage, error)
}
