// Package batch runs capture extraction over many input images in parallel.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"golang.org/x/sync/errgroup"

	"github.com/menta2k/cutout/pkg/analyzer"
	"github.com/menta2k/cutout/pkg/types"
)

// ImageProcessor is the per-image work the orchestrator fans out.
// *processing.Processor implements it.
type ImageProcessor interface {
	ProcessImage(path string, origin types.Origin, specs []types.CaptureSpec) error
	PlanImage(path string, origin types.Origin, specs []types.CaptureSpec) (analyzer.ImageInfo, []types.Planned, error)
}

// Job is one invocation: every spec is applied to every input.
// Origin and Specs are shared read-only by all workers.
type Job struct {
	Inputs []string
	Origin types.Origin
	Specs  []types.CaptureSpec
}

// Config holds orchestrator settings
type Config struct {
	// Workers caps how many images are processed at once; <= 0 means one per logical CPU
	Workers int
}

// Summary reports the outcome of Run
type Summary struct {
	Processed int
	Failed    int
	Skipped   int
	Elapsed   time.Duration
}

// Orchestrator dispatches one task per input image
type Orchestrator struct {
	proc    ImageProcessor
	workers int
	log     zerolog.Logger
}

// New creates an orchestrator sized to the available hardware concurrency
func New(proc ImageProcessor, log zerolog.Logger) *Orchestrator {
	return NewWithConfig(proc, Config{}, log)
}

// NewWithConfig creates an orchestrator with custom settings
func NewWithConfig(proc ImageProcessor, config Config, log zerolog.Logger) *Orchestrator {
	workers := config.Workers
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	return &Orchestrator{proc: proc, workers: workers, log: log}
}

// Workers returns the parallelism limit
func (o *Orchestrator) Workers() int {
	return o.workers
}

// DefaultWorkers returns the number of logical CPUs
func DefaultWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Run processes every input with at most Workers images in flight. A failing
// image never stops its siblings and nothing already written is rolled back.
// The returned error joins every per-image failure in input order.
//
// Cancelling ctx stops new images from being dispatched; images already
// started run to completion.
func (o *Orchestrator) Run(ctx context.Context, job Job) (Summary, error) {
	start := time.Now()
	errs := make([]error, len(job.Inputs))

	// slots is the worker limit; waiting on it also watches ctx so nothing is
	// dispatched once the run is cancelled
	slots := make(chan struct{}, o.workers)
	var g errgroup.Group

	var summary Summary
	for i, input := range job.Inputs {
		if ctx.Err() == nil {
			select {
			case slots <- struct{}{}:
				g.Go(func() error {
					defer func() { <-slots }()
					if err := o.proc.ProcessImage(input, job.Origin, job.Specs); err != nil {
						o.log.Error().Err(err).Str("input", input).Msg("image failed")
						errs[i] = err
					}
					return nil
				})
				continue
			case <-ctx.Done():
			}
		}
		errs[i] = fmt.Errorf("input image %q not processed: %w", input, context.Cause(ctx))
		summary.Skipped++
	}
	_ = g.Wait()

	for i := range job.Inputs {
		if errs[i] == nil {
			summary.Processed++
		}
	}
	summary.Failed = len(job.Inputs) - summary.Processed - summary.Skipped
	summary.Elapsed = time.Since(start)

	o.log.Info().
		Int("processed", summary.Processed).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Int("workers", o.workers).
		Dur("elapsed", summary.Elapsed).
		Msg("batch finished")

	return summary, errors.Join(errs...)
}

// DryRun validates every spec against every input, one image at a time,
// and writes the output paths a real run would produce to w. It stops at the
// first failure and never writes image files.
func (o *Orchestrator) DryRun(ctx context.Context, job Job, w io.Writer) error {
	for _, input := range job.Inputs {
		if err := ctx.Err(); err != nil {
			return err
		}

		info, planned, err := o.proc.PlanImage(input, job.Origin, job.Specs)
		if info.Width > 0 || info.Height > 0 {
			fmt.Fprintf(w, "Validating %s (%dx%d)\n", input, info.Width, info.Height)
		}
		for _, p := range planned {
			fmt.Fprintf(w, "  '%s' -> %s\n", p.Capture, p.OutputPath)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
