package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestJPEGProcessor_ShrinksWideImages(t *testing.T) {
	p := NewJPEGProcessor(100, 80)

	out, err := p.Process(bytes.NewReader(pngOf(t, 400, 200)))
	require.NoError(t, err)
	assert.Equal(t, 100, out.Width)
	assert.Equal(t, 50, out.Height)
	assert.Equal(t, "image/jpeg", out.ContentType)
	assert.Equal(t, ".jpg", out.Extension)

	decoded, err := jpeg.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())
}

func TestJPEGProcessor_KeepsSmallImages(t *testing.T) {
	p := NewJPEGProcessor(800, 0)

	out, err := p.Process(bytes.NewReader(pngOf(t, 64, 32)))
	require.NoError(t, err)
	assert.Equal(t, 64, out.Width)
	assert.Equal(t, 32, out.Height)
}

func TestJPEGProcessor_RejectsNonImages(t *testing.T) {
	p := NewJPEGProcessor(0, 0)

	_, err := p.Process(strings.NewReader("definitely not an image"))
	require.Error(t, err)
	domainErr, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "INVALID_IMAGE", domainErr.Code)
}
