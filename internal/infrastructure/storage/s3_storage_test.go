package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/fliamecomm/storefront/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(ctx, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(ctx, &config.StorageConfig{S3AccessKey: "k", S3SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(ctx, &config.StorageConfig{S3Bucket: "b", S3SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(ctx, &config.StorageConfig{S3Bucket: "b", S3AccessKey: "k"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("valid config creates storage", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Type:        "s3",
			S3Bucket:    "product-images",
			S3AccessKey: "minio",
			S3SecretKey: "minio123",
			S3Endpoint:  "localhost:9000",
			S3PathStyle: true,
		}
		s, err := NewS3ObjectStorage(ctx, cfg, WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, "product-images", s.Bucket())
	})
}

func TestS3ObjectStorage_RejectsBadKeys(t *testing.T) {
	s, err := NewS3ObjectStorage(context.Background(), &config.StorageConfig{
		S3Bucket: "b", S3AccessKey: "k", S3SecretKey: "s", S3Endpoint: "http://127.0.0.1:1",
	})
	require.NoError(t, err)

	err = s.Put(context.Background(), "../escape.jpg", []byte("x"), "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage key")
}

func TestIsS3NotFound(t *testing.T) {
	assert.True(t, isS3NotFound(&types.NoSuchKey{}))
	assert.True(t, isS3NotFound(&types.NotFound{}))
	assert.True(t, isS3NotFound(errors.New("api error NoSuchKey: missing")))
	assert.False(t, isS3NotFound(errors.New("connection refused")))
}
