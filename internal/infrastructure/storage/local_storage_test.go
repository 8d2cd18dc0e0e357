package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/fliamecomm/storefront/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalObjectStorage_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewLocalObjectStorage(root)
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "products/abc.jpg", []byte("jpeg-bytes"), "image/jpeg"))
	assert.FileExists(t, filepath.Join(root, "products", "abc.jpg"))

	rc, obj, err := s.Get(ctx, "products/abc.jpg")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(body))
	assert.Equal(t, "image/jpeg", obj.ContentType)
	assert.EqualValues(t, 10, obj.Size)

	require.NoError(t, s.Delete(ctx, "products/abc.jpg"))
	_, _, err = s.Get(ctx, "products/abc.jpg")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// deleting twice is fine
	require.NoError(t, s.Delete(ctx, "products/abc.jpg"))
}

func TestLocalObjectStorage_Overwrite(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalObjectStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "a.png", []byte("one"), "image/png"))
	require.NoError(t, s.Put(ctx, "a.png", []byte("two"), "image/png"))

	rc, _, err := s.Get(ctx, "a.png")
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "two", string(body))
}

func TestLocalObjectStorage_Traversal(t *testing.T) {
	ctx := context.Background()
	parent := t.TempDir()
	root := filepath.Join(parent, "media")
	s, err := NewLocalObjectStorage(root)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("x"), 0o600))

	_, _, err = s.Get(ctx, "../secret.txt")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = s.Put(ctx, "../evil.jpg", []byte("x"), "image/jpeg")
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(parent, "evil.jpg"))
}

func TestLocalObjectStorage_DirectoryIsNotAnObject(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalObjectStorage(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "products/x.jpg", []byte("x"), "image/jpeg"))

	_, _, err = s.Get(ctx, "products")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "products/a.jpg", want: "products/a.jpg"},
		{key: "/products/a.jpg", want: "products/a.jpg"},
		{key: "", wantErr: true},
		{key: "../a.jpg", wantErr: true},
		{key: "products/../../a.jpg", wantErr: true},
		{key: "products//a.jpg", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := cleanKey(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_SelectsBackend(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, &config.StorageConfig{LocalDir: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LocalObjectStorage{}, s)

	_, err = New(ctx, &config.StorageConfig{Type: "ftp"}, zap.NewNop())
	assert.Error(t, err)
}
