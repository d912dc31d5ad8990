// Package cutout extracts named rectangular regions ("captures") from
// batches of images and writes each one next to its source.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"log"
//
//		"github.com/menta2k/cutout"
//		"github.com/menta2k/cutout/pkg/types"
//	)
//
//	func main() {
//		specs, err := cutout.ParseSpecs([]string{"left:200x300:1200x1850"})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		c := cutout.New()
//		if _, err := c.Run(context.Background(), []string{"page1.jpg", "page2.jpg"}, types.TopLeft, specs); err != nil {
//			log.Fatal(err)
//		}
//		// writes page1_left.jpg and page2_left.jpg
//	}
//
// The package consists of these components:
//
// 1. Capture (pkg/capture): parses <name>:<x>x<y>:<width>x<height> specs
// 2. Cropper (pkg/cropper): converts specs to top-left rectangles with checked bounds and crops
// 3. Processing (pkg/processing): decodes one image, crops every spec and saves by extension
// 4. Batch (pkg/batch): runs the processor over many images in parallel, or validates them in a dry run
//
// Specs may use a top-left origin (y grows downward) or a bottom-left origin
// (y grows upward from the bottom edge). Input formats are JPEG, PNG, GIF,
// BMP, TIFF and WebP; each crop is written in the format of its input's
// extension, or PNG when the input has none.
package cutout

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/menta2k/cutout/pkg/batch"
	"github.com/menta2k/cutout/pkg/capture"
	"github.com/menta2k/cutout/pkg/processing"
	"github.com/menta2k/cutout/pkg/types"
)

// Version of the cutout library
const Version = "1.0.0"

// Cutout provides a high-level interface over the processor and orchestrator
type Cutout struct {
	processor    *processing.Processor
	orchestrator *batch.Orchestrator
}

// New creates a Cutout with default configuration and no logging
func New() *Cutout {
	return NewWithConfig(processing.DefaultConfig(), batch.Config{}, zerolog.Nop())
}

// NewWithConfig creates a Cutout with custom configuration
func NewWithConfig(processingConfig processing.Config, batchConfig batch.Config, log zerolog.Logger) *Cutout {
	processor := processing.NewWithConfig(processingConfig, log)
	return &Cutout{
		processor:    processor,
		orchestrator: batch.NewWithConfig(processor, batchConfig, log),
	}
}

// ParseSpecs parses capture spec strings in order
func ParseSpecs(specs []string) ([]types.CaptureSpec, error) {
	return capture.ParseAll(specs)
}

// Workers returns how many images are processed concurrently
func (c *Cutout) Workers() int {
	return c.orchestrator.Workers()
}

// ProcessImage crops every spec out of a single image
func (c *Cutout) ProcessImage(path string, origin types.Origin, specs []types.CaptureSpec) error {
	return c.processor.ProcessImage(path, origin, specs)
}

// Run crops every spec out of every input, in parallel
func (c *Cutout) Run(ctx context.Context, inputs []string, origin types.Origin, specs []types.CaptureSpec) (batch.Summary, error) {
	return c.orchestrator.Run(ctx, batch.Job{Inputs: inputs, Origin: origin, Specs: specs})
}

// DryRun validates every spec against every input and reports the planned
// outputs to w without writing any file
func (c *Cutout) DryRun(ctx context.Context, inputs []string, origin types.Origin, specs []types.CaptureSpec, w io.Writer) error {
	return c.orchestrator.DryRun(ctx, batch.Job{Inputs: inputs, Origin: origin, Specs: specs}, w)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
