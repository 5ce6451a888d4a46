package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up in the working directory.
const FileName = ".autofrom.yaml"

// Config holds the generator settings.
type Config struct {
	Version   string       `yaml:"version"`
	Directive string       `yaml:"directive"`
	Output    OutputConfig `yaml:"output"`
	Naming    NamingConfig `yaml:"naming"`
	// Dispatcher enables the type-switch function; nil means enabled.
	Dispatcher *bool     `yaml:"dispatcher,omitempty"`
	BuildTags  []string  `yaml:"build_tags,omitempty"`
	Tests      bool      `yaml:"tests,omitempty"`
	Log        LogConfig `yaml:"log"`
}

// OutputConfig controls generated file names.
type OutputConfig struct {
	// Suffix replaces ".go" in the source file name.
	Suffix string `yaml:"suffix"`
}

// NamingConfig holds text/template patterns for generated identifiers.
// Templates see .Union, .Variant and .Type.
type NamingConfig struct {
	Constructor string `yaml:"constructor"`
	Dispatcher  string `yaml:"dispatcher"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults.
const (
	DefaultVersion     = "1"
	DefaultDirective   = "autofrom:union"
	DefaultSuffix      = "_autofrom.go"
	DefaultConstructor = "{{.Union}}From{{.Variant}}"
	DefaultDispatcher  = "{{.Union}}From"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// DispatcherEnabled reports whether the type-switch function is generated.
func (c *Config) DispatcherEnabled() bool {
	return c.Dispatcher == nil || *c.Dispatcher
}

// Load reads path, or FileName inside dir when path is empty. A missing
// FileName is not an error; a missing explicit path is.
func Load(path, dir string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}

	cfg, err := LoadFile(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// LoadFile loads and parses a YAML settings file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse parses YAML data into a Config and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}

	cfg.Directive = strings.TrimPrefix(cfg.Directive, "//")
	if cfg.Directive == "" {
		cfg.Directive = DefaultDirective
	}

	if cfg.Output.Suffix == "" {
		cfg.Output.Suffix = DefaultSuffix
	}

	if cfg.Naming.Constructor == "" {
		cfg.Naming.Constructor = DefaultConstructor
	}

	if cfg.Naming.Dispatcher == "" {
		cfg.Naming.Dispatcher = DefaultDispatcher
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}

	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

// Validate checks a defaulted Config.
func (c *Config) Validate() error {
	var errs []error

	if c.Version != DefaultVersion {
		errs = append(errs, fmt.Errorf("unsupported config version %q", c.Version))
	}

	if strings.ContainsAny(c.Directive, " \t\n") {
		errs = append(errs, fmt.Errorf("directive %q must not contain blanks", c.Directive))
	}

	if err := validateSuffix(c.Output.Suffix); err != nil {
		errs = append(errs, err)
	}

	if _, err := template.New("constructor").Parse(c.Naming.Constructor); err != nil {
		errs = append(errs, fmt.Errorf("naming.constructor: %w", err))
	}

	if _, err := template.New("dispatcher").Parse(c.Naming.Dispatcher); err != nil {
		errs = append(errs, fmt.Errorf("naming.dispatcher: %w", err))
	}

	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log level %q must be one of %v", c.Log.Level, logLevels))
	}

	if !slices.Contains(logFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log format %q must be one of %v", c.Log.Format, logFormats))
	}

	return errors.Join(errs...)
}

// validateSuffix keeps generated files apart from sources: the suffix needs a
// stem, so "x.go" never maps onto itself, and must not turn outputs into
// test files.
func validateSuffix(suffix string) error {
	stem, ok := strings.CutSuffix(suffix, ".go")

	switch {
	case !ok || strings.ContainsRune(suffix, filepath.Separator) || strings.ContainsRune(suffix, '/'):
		return fmt.Errorf("output suffix %q must be a file name ending in .go", suffix)
	case stem == "":
		return fmt.Errorf("output suffix %q needs a name before .go", suffix)
	case strings.HasSuffix(stem, "_test"):
		return fmt.Errorf("output suffix %q must not end in _test.go", suffix)
	}

	return nil
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
