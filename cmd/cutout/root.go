package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/menta2k/cutout"
	"github.com/menta2k/cutout/internal/config"
	"github.com/menta2k/cutout/internal/logger"
	"github.com/menta2k/cutout/pkg/batch"
	"github.com/menta2k/cutout/pkg/capture"
	"github.com/menta2k/cutout/pkg/processing"
	"github.com/menta2k/cutout/pkg/types"
)

type options struct {
	cfgFile   string
	origin    types.Origin
	captures  []string
	verbose   bool
	dryRun    bool
	workers   int
	quality   int
	lossless  bool
	logLevel  string
	logFormat string
	noColor   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "cutout [flags] <inputs...>",
		Short: "cutout: extract rectangular regions from images",
		Long: `cutout crops every capture spec out of every input image and writes each
crop next to its input as <stem>_<name>.<ext>.

Capture specs have the form ` + capture.Format + `, e.g. left:200x300:1200x1850.`,
		Example: `  cutout -c left:200x300:1200x1850 -c right:1400x300:1200x1850 scans/*.jpg
  cutout --origin bl --dry-run -c plot:80x60:640x480 figure.png`,
		Version: cutout.Version,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd, opts, args)
		},
		SilenceErrors: true,
	}

	f := cmd.Flags()
	f.Var(&opts.origin, "origin", "Coordinate origin: tl (top-left) or bl (bottom-left)")
	f.StringArrayVarP(&opts.captures, "capture", "c", nil, "Capture spec: "+capture.Format+". Can be repeated.")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output with timing information")
	f.BoolVar(&opts.dryRun, "dry-run", false, "Validate capture specifications without writing any image")
	f.IntVar(&opts.workers, "workers", 0, "Images processed in parallel (0 = one per logical CPU)")
	f.StringVar(&opts.cfgFile, "config", "", "YAML config file with origin, captures and output settings")
	f.IntVar(&opts.quality, "quality", 95, "JPEG/WebP output quality (1-100)")
	f.BoolVar(&opts.lossless, "lossless", false, "Write WebP crops losslessly")
	f.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	f.StringVar(&opts.logFormat, "log-format", "console", "Log format: console or json")
	f.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	return cmd
}

// loadConfig layers explicitly set flags over the config file (or defaults)
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.cfgFile != "" {
		var err error
		if cfg, err = config.LoadFromFile(opts.cfgFile); err != nil {
			return nil, err
		}
	}

	f := cmd.Flags()
	if f.Changed("origin") {
		cfg.Origin = opts.origin.String()
	}
	cfg.Captures = append(cfg.Captures, opts.captures...)
	if f.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if f.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if f.Changed("quality") {
		cfg.Output.Quality = opts.quality
	}
	if f.Changed("lossless") {
		cfg.Output.Lossless = opts.lossless
	}
	if f.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if f.Changed("log-format") {
		cfg.Log.Format = opts.logFormat
	}

	if len(cfg.Captures) == 0 {
		return nil, errors.New("at least one --capture is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Verbose && logger.ParseLevel(cfg.Log.Level) > zerolog.InfoLevel {
		cfg.Log.Level = "info"
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts *options, inputs []string) error {
	if opts.noColor {
		color.NoColor = true
	}
	stderr := cmd.ErrOrStderr()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	origin, specs, err := cfg.Resolve()
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  stderr,
		NoColor: opts.noColor,
	})

	c := cutout.NewWithConfig(
		processing.Config{Quality: cfg.Output.Quality, Lossless: cfg.Output.Lossless, Verbose: cfg.Verbose},
		batch.Config{Workers: cfg.Workers},
		log,
	)

	if opts.dryRun {
		fmt.Fprintf(stderr, "Dry run mode: validating %d capture specs against %d images\n", len(specs), len(inputs))
		for _, s := range specs {
			fmt.Fprintf(stderr, "  Capture '%s': %dx%d at (%d, %d)\n", s.Name, s.Width, s.Height, s.X, s.Y)
		}
		fmt.Fprintln(stderr)

		if err := c.DryRun(cmd.Context(), inputs, origin, specs, stderr); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintln(stderr, "Validation successful. All capture specifications are valid.")
		return nil
	}

	log.Debug().
		Str("origin", origin.String()).
		Int("captures", len(specs)).
		Int("inputs", len(inputs)).
		Int("workers", c.Workers()).
		Msg("starting batch")

	summary, err := c.Run(cmd.Context(), inputs, origin, specs)
	if err != nil {
		return fmt.Errorf("%d of %d images failed: %w", summary.Failed+summary.Skipped, len(inputs), err)
	}
	return nil
}
