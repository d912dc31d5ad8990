package analyzer

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageAnalyzer reads image metadata without decoding pixel data
type ImageAnalyzer struct {
	config Config
}

// Config holds configuration for the image analyzer
type Config struct {
	SupportedFormats []string
}

// DefaultFormats are the decoder names accepted by New
var DefaultFormats = []string{"jpeg", "png", "gif", "bmp", "tiff", "webp"}

// New creates a new ImageAnalyzer with default configuration
func New() *ImageAnalyzer {
	return &ImageAnalyzer{
		config: Config{SupportedFormats: DefaultFormats},
	}
}

// NewWithConfig creates a new ImageAnalyzer with custom configuration
func NewWithConfig(config Config) *ImageAnalyzer {
	return &ImageAnalyzer{config: config}
}

// ImageInfo contains basic image metadata
type ImageInfo struct {
	Width  int
	Height int
	Format string
}

// Probe returns the dimensions and format of the image at path by reading
// its header only.
func (a *ImageAnalyzer) Probe(path string) (ImageInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	return a.ProbeReader(file)
}

// ProbeReader is Probe for an already opened image
func (a *ImageAnalyzer) ProbeReader(r io.ReadSeeker) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		// Fallback: explicit WebP header parse
		if _, serr := r.Seek(0, io.SeekStart); serr != nil {
			return ImageInfo{}, fmt.Errorf("failed to decode image header: %w", err)
		}
		wcfg, werr := webp.DecodeConfig(r)
		if werr != nil {
			return ImageInfo{}, fmt.Errorf("failed to decode image header: %w", err)
		}
		cfg, format = wcfg, "webp"
	}

	if !a.isFormatSupported(format) {
		return ImageInfo{}, fmt.Errorf("unsupported image format: %s", format)
	}

	return ImageInfo{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// GetImageInfo returns basic information about a decoded image
func (a *ImageAnalyzer) GetImageInfo(img image.Image) ImageInfo {
	bounds := img.Bounds()
	return ImageInfo{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
}

func (a *ImageAnalyzer) isFormatSupported(format string) bool {
	for _, supported := range a.config.SupportedFormats {
		if strings.EqualFold(format, supported) {
			return true
		}
	}
	return false
}
