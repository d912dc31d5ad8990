package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/menta2k/cutout/pkg/capture"
	"github.com/menta2k/cutout/pkg/types"
)

// Config holds the application configuration
type Config struct {
	Origin   string       `yaml:"origin"`
	Captures []string     `yaml:"captures"`
	Workers  int          `yaml:"workers"`
	Verbose  bool         `yaml:"verbose"`
	Output   OutputConfig `yaml:"output"`
	Log      LogConfig    `yaml:"log"`
}

// OutputConfig holds encoder settings for written crops
type OutputConfig struct {
	Quality  int  `yaml:"quality"`
	Lossless bool `yaml:"lossless"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Origin:  "tl",
		Workers: 0,
		Output: OutputConfig{
			Quality:  95,
			Lossless: false,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// LoadFromFile loads configuration from a YAML file on top of Default()
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := types.ParseOrigin(c.Origin); err != nil {
		return fmt.Errorf("origin: %w", err)
	}

	if len(c.Captures) == 0 {
		return fmt.Errorf("at least one capture is required")
	}

	if _, err := capture.ParseAll(c.Captures); err != nil {
		return err
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json")
	}

	return nil
}

// Resolve parses the origin and captures into their typed forms
func (c *Config) Resolve() (types.Origin, []types.CaptureSpec, error) {
	origin, err := types.ParseOrigin(c.Origin)
	if err != nil {
		return types.TopLeft, nil, err
	}
	specs, err := capture.ParseAll(c.Captures)
	if err != nil {
		return origin, nil, err
	}
	return origin, specs, nil
}
