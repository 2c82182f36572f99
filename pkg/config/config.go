// Package config loads solsca's configuration from a layered TOML/YAML/JSON
// file on top of typed defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for solsca.
type Config struct {
	Detectors DetectorConfig `koanf:"detectors" toml:"detectors"`
	Compiler  CompilerConfig `koanf:"compiler" toml:"compiler"`
	Exclude   ExcludeConfig  `koanf:"exclude" toml:"exclude"`
	Output    OutputConfig   `koanf:"output" toml:"output"`
}

// DetectorConfig toggles individual reference detectors on or off by id.
// A detector id absent from Disabled runs by default.
type DetectorConfig struct {
	Disabled    []string `koanf:"disabled" toml:"disabled"`
	MaxFileSize int64    `koanf:"max_file_size" toml:"max_file_size"` // bytes, 0 = no limit
}

// CompilerConfig controls how the Compiler Adapter locates and invokes solc.
type CompilerConfig struct {
	// BinaryPath overrides automatic solc discovery with an explicit binary.
	BinaryPath string `koanf:"binary_path" toml:"binary_path"`

	// SearchPaths are directories probed (in order) for a solc-compatible
	// binary named "solc-<version>" or "solc" when BinaryPath is empty or
	// does not answer a --version probe.
	SearchPaths []string `koanf:"search_paths" toml:"search_paths"`

	// InstallCommand, if set, is invoked as `<cmd> <version>` to fetch a
	// missing compiler version. Empty means installation is unavailable and
	// an unresolved version always falls back to text-only analysis.
	InstallCommand string `koanf:"install_command" toml:"install_command"`

	// Timeout bounds one Parse call as a whole: binary probing, installation
	// and compilation share this single deadline.
	Timeout time.Duration `koanf:"timeout" toml:"timeout"`
}

// ExcludeConfig defines file exclusion patterns using gitignore-style syntax.
type ExcludeConfig struct {
	Patterns  []string `koanf:"patterns" toml:"patterns"`
	Gitignore bool     `koanf:"gitignore" toml:"gitignore"`
}

// OutputConfig controls report emission defaults.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // json, slither-json, sarif, junit, html
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// DefaultConfig returns solsca's built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Detectors: DetectorConfig{
			Disabled:    []string{},
			MaxFileSize: 10 * 1024 * 1024,
		},
		Compiler: CompilerConfig{
			SearchPaths:    []string{"/usr/local/bin", "/usr/bin"},
			InstallCommand: "",
			Timeout:        60 * time.Second,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"node_modules/",
				"lib/",
				"out/",
				"artifacts/",
				"cache/",
				".git/",
			},
			Gitignore: true,
		},
		Output: OutputConfig{
			Format:  "json",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load reads a configuration file, merging it over DefaultConfig. The parser
// is chosen by file extension (.toml, .yaml/.yml, .json), defaulting to TOML.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile searches standard locations for a solsca config file.
func FindConfigFile() string {
	for _, name := range []string{"solsca.toml", "solsca.yaml", "solsca.yml", "solsca.json"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// LoadOption configures LoadConfig.
type LoadOption func(*loadOptions)

type loadOptions struct {
	path string
}

// WithPath specifies an explicit config file path.
func WithPath(path string) LoadOption {
	return func(o *loadOptions) { o.path = path }
}

// LoadResult is the outcome of LoadConfig.
type LoadResult struct {
	Config *Config
	Source string // path to the config file, empty when defaults were used
}

// LoadConfig loads configuration with the given options, searching standard
// locations when no explicit path is given, and validates the result.
func LoadConfig(opts ...LoadOption) (*LoadResult, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	var cfg *Config
	var source string
	var err error

	if o.path != "" {
		if _, statErr := os.Stat(o.path); os.IsNotExist(statErr) {
			return nil, fmt.Errorf("config file not found: %s", o.path)
		}
		cfg, err = Load(o.path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", o.path, err)
		}
		source = o.path
	} else {
		source = FindConfigFile()
		if source == "" {
			cfg = DefaultConfig()
		} else {
			cfg, err = Load(source)
			if err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", source, err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &LoadResult{Config: cfg, Source: source}, nil
}

// IsDetectorEnabled reports whether the given detector id is enabled.
func (c *Config) IsDetectorEnabled(id string) bool {
	for _, d := range c.Detectors.Disabled {
		if d == id {
			return false
		}
	}
	return true
}

// ErrFileTooLarge is returned when a file exceeds the configured size limit.
var ErrFileTooLarge = errors.New("file exceeds maximum size limit")

// IsFileTooLarge reports whether size exceeds the configured maximum. A
// maxSize of 0 disables the limit.
func IsFileTooLarge(size int64, maxSize int64) bool {
	if maxSize <= 0 {
		return false
	}
	return size > maxSize
}

// Validate checks that configuration values are internally consistent.
func (c *Config) Validate() error {
	var errs []error

	if c.Detectors.MaxFileSize < 0 {
		errs = append(errs, errors.New("detectors.max_file_size must be non-negative"))
	}
	if c.Compiler.Timeout < 0 {
		errs = append(errs, errors.New("compiler.timeout must be non-negative"))
	}
	switch c.Output.Format {
	case "json", "slither-json", "sarif", "junit", "html":
	default:
		errs = append(errs, fmt.Errorf("output.format %q is not one of json, slither-json, sarif, junit, html", c.Output.Format))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
