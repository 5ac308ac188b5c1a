package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/andromoze/internal/andromoney"
	"github.com/cleared-dev/andromoze/internal/moze"
	"github.com/cleared-dev/andromoze/internal/transform"
)

const (
	// DefaultInputFile is the file name AndroMoney gives its CSV export.
	DefaultInputFile = "AndroMoney - AndroMoney.csv"
	// DefaultOutputFile is the converted MOZE import file.
	DefaultOutputFile = "MOZE.csv"
	// DefaultFileName is the config file written by `andromoze init`.
	DefaultFileName = "andromoze.yaml"
)

// Config represents the top-level andromoze.yaml configuration.
type Config struct {
	Files   FilesConfig   `yaml:"files"`
	Source  SourceConfig  `yaml:"source"`
	Target  TargetConfig  `yaml:"target"`
	Display DisplayConfig `yaml:"display"`
}

// FilesConfig holds default paths, overridden by command-line flags.
type FilesConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// SourceConfig describes the AndroMoney export.
type SourceConfig struct {
	SystemCategory string `yaml:"system_category"`
	TitleRows      int    `yaml:"title_rows"`
}

// TargetConfig describes the MOZE vocabulary.
type TargetConfig struct {
	Labels              moze.Labels `yaml:"labels"`
	TransferOutCategory string      `yaml:"transfer_out_category"`
	TransferInCategory  string      `yaml:"transfer_in_category"`
	CarryProject        bool        `yaml:"carry_project"`
}

// DisplayConfig controls console output.
type DisplayConfig struct {
	Locale string `yaml:"locale"` // BCP 47 tag used to order names
}

// Load reads an andromoze.yaml file from disk. Missing keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration for a stock AndroMoney to MOZE conversion.
func Default() *Config {
	opts := transform.DefaultOptions()
	return &Config{
		Files: FilesConfig{
			Input:  DefaultInputFile,
			Output: DefaultOutputFile,
		},
		Source: SourceConfig{
			SystemCategory: opts.SystemCategory,
			TitleRows:      andromoney.DefaultTitleRows,
		},
		Target: TargetConfig{
			Labels:              moze.DefaultLabels(),
			TransferOutCategory: opts.TransferOutCategory,
			TransferInCategory:  opts.TransferInCategory,
		},
		Display: DisplayConfig{
			Locale: "zh-Hant",
		},
	}
}

// Validate checks values that would otherwise fail deep inside a conversion.
func (c *Config) Validate() error {
	if c.Source.SystemCategory == "" {
		return fmt.Errorf("source.system_category must not be empty")
	}
	if c.Source.TitleRows < 0 {
		return fmt.Errorf("source.title_rows must not be negative")
	}
	if err := c.Target.Labels.Check(); err != nil {
		return fmt.Errorf("target.labels: %w", err)
	}
	return nil
}

// TransformOptions returns the options for transform.Transform.
func (c *Config) TransformOptions() transform.Options {
	return transform.Options{
		SystemCategory:      c.Source.SystemCategory,
		TransferOutCategory: c.Target.TransferOutCategory,
		TransferInCategory:  c.Target.TransferInCategory,
		CarryProject:        c.Target.CarryProject,
	}
}

// Parser returns an AndroMoney parser for the configured layout.
func (c *Config) Parser() *andromoney.Parser {
	return &andromoney.Parser{TitleRows: c.Source.TitleRows}
}
