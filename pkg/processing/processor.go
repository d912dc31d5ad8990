package processing

import (
	"fmt"
	"image"
	"os"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/cutout/internal/utils"
	"github.com/menta2k/cutout/pkg/analyzer"
	"github.com/menta2k/cutout/pkg/cropper"
	"github.com/menta2k/cutout/pkg/types"
)

// Config holds per-run output settings
type Config struct {
	// Quality is the JPEG and lossy WebP quality, 1-100
	Quality int
	// Lossless selects lossless WebP output
	Lossless bool
	// Verbose logs decode and crop+save timings for every image
	Verbose bool
}

// DefaultConfig returns the settings used by NewProcessor
func DefaultConfig() Config {
	return Config{Quality: 95}
}

// Processor decodes one image at a time, crops every capture out of it and
// writes the results next to the input.
type Processor struct {
	config   Config
	analyzer *analyzer.ImageAnalyzer
	log      zerolog.Logger
}

// NewProcessor creates a processor with default settings and no logging
func NewProcessor() *Processor {
	return NewWithConfig(DefaultConfig(), zerolog.Nop())
}

// NewWithConfig creates a processor with custom settings
func NewWithConfig(config Config, log zerolog.Logger) *Processor {
	if config.Quality <= 0 || config.Quality > 100 {
		config.Quality = DefaultConfig().Quality
	}
	return &Processor{
		config:   config,
		analyzer: analyzer.New(),
		log:      log,
	}
}

// LoadImage loads an image from a file path with WebP support
func (p *Processor) LoadImage(path string) (image.Image, error) {
	// Try imaging.Open (registered decoders)
	img, err := imaging.Open(path)
	if err == nil {
		return img, nil
	}
	if utils.GetFileExtension(path) != "webp" {
		return nil, err
	}

	// Fallback: explicit WebP decode
	f, ferr := os.Open(path)
	if ferr != nil {
		return nil, ferr
	}
	defer f.Close()
	if wimg, werr := webp.Decode(f); werr == nil {
		return wimg, nil
	}
	return nil, err
}

// SaveImage writes img to path in the format implied by the path's extension
func (p *Processor) SaveImage(img image.Image, path string) error {
	if utils.GetFileExtension(path) == "webp" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		opts := &webp.Options{Lossless: p.config.Lossless, Quality: float32(p.config.Quality)}
		// the encoder expects 8-bit pixels at a zero origin
		if err := webp.Encode(f, imaging.Clone(img), opts); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return imaging.Save(img, path, imaging.JPEGQuality(p.config.Quality))
}

// ProcessImage decodes the image at path and writes one crop per spec, in
// order. The first failing spec aborts the image; files already written for
// earlier specs are left in place.
func (p *Processor) ProcessImage(path string, origin types.Origin, specs []types.CaptureSpec) error {
	start := time.Now()
	img, err := p.LoadImage(path)
	if err != nil {
		return fmt.Errorf("unable to open image %q: %w", path, err)
	}
	decodeTime := time.Since(start)

	c := cropper.NewWithOrigin(origin)
	cropStart := time.Now()
	for _, spec := range specs {
		out, rect, err := c.Crop(img, spec)
		if err != nil {
			return fmt.Errorf("invalid capture %q for image %q: %w", spec.Name, path, err)
		}

		outPath, err := utils.OutputPath(path, spec.Name)
		if err != nil {
			return err
		}

		if err := p.SaveImage(out, outPath); err != nil {
			return fmt.Errorf("unable to save image to %q: %w", outPath, err)
		}

		p.log.Debug().
			Str("input", path).
			Str("capture", spec.Name).
			Uint32("x", rect.X).
			Uint32("y", rect.Y).
			Uint32("width", rect.Width).
			Uint32("height", rect.Height).
			Str("output", outPath).
			Msg("wrote capture")
	}

	if p.config.Verbose {
		p.log.Info().
			Str("input", path).
			Int64("decode_ms", decodeTime.Milliseconds()).
			Int64("crop_save_ms", time.Since(cropStart).Milliseconds()).
			Msg("processed")
	}

	return nil
}

// PlanImage decodes the image at path and validates every spec against it
// without writing anything. It returns the outputs a real run would write, so
// an image that plans cleanly is one ProcessImage can open.
func (p *Processor) PlanImage(path string, origin types.Origin, specs []types.CaptureSpec) (analyzer.ImageInfo, []types.Planned, error) {
	img, err := p.LoadImage(path)
	if err != nil {
		return analyzer.ImageInfo{}, nil, fmt.Errorf("unable to open image %q: %w", path, err)
	}
	info := p.analyzer.GetImageInfo(img)
	if probed, err := p.analyzer.Probe(path); err == nil {
		info.Format = probed.Format
	}

	c := cropper.NewWithOrigin(origin)
	planned := make([]types.Planned, 0, len(specs))
	for _, spec := range specs {
		rect, err := c.Rect(spec, info.Width, info.Height)
		if err != nil {
			return info, planned, fmt.Errorf("invalid capture %q for image %q: %w", spec.Name, path, err)
		}

		outPath, err := utils.OutputPath(path, spec.Name)
		if err != nil {
			return info, planned, err
		}
		planned = append(planned, types.Planned{Capture: spec.Name, Rect: rect, OutputPath: outPath})
	}
	return info, planned, nil
}
