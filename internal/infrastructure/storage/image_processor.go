package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	catalogapp "github.com/fliamecomm/storefront/internal/application/catalog"
	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/nfnt/resize"
)

// MaxSourcePixels bounds the decoded size of an upload
const MaxSourcePixels = 40_000_000

// ErrInvalidImage is returned for uploads that are not a decodable JPEG or PNG
var ErrInvalidImage = shared.NewDomainError("INVALID_IMAGE", "Image must be a JPEG or PNG file")

// JPEGProcessor downsizes uploads to a maximum width and re-encodes them as JPEG
type JPEGProcessor struct {
	maxWidth uint
	quality  int
}

// Ensure JPEGProcessor implements ImageProcessor
var _ catalogapp.ImageProcessor = (*JPEGProcessor)(nil)

// NewJPEGProcessor creates a processor; zero values fall back to 800px and quality 85
func NewJPEGProcessor(maxWidth uint, quality int) *JPEGProcessor {
	if maxWidth == 0 {
		maxWidth = 800
	}
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &JPEGProcessor{maxWidth: maxWidth, quality: quality}
}

// Process decodes r, shrinks it to the maximum width keeping the aspect ratio, and encodes JPEG
func (p *JPEGProcessor) Process(r io.Reader) (*catalogapp.ProcessedImage, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil || (format != "jpeg" && format != "png") {
		return nil, ErrInvalidImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > MaxSourcePixels {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Image dimensions are too large")
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrInvalidImage
	}

	if uint(img.Bounds().Dx()) > p.maxWidth {
		img = resize.Resize(p.maxWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &catalogapp.ProcessedImage{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Extension:   ".jpg",
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}, nil
}
