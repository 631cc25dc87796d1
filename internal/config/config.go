package config

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"codec-generator/internal/compiler"
	"codec-generator/internal/gen"
)

// DefaultPath is the configuration file looked up when none is named.
const DefaultPath = "codegen.yaml"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the generator configuration.
type Config struct {
	Package              string `yaml:"package,omitempty"`
	OutputDir            string `yaml:"output_dir,omitempty"`
	RuntimeImport        string `yaml:"runtime_import,omitempty"`
	FileSuffix           string `yaml:"file_suffix,omitempty"`
	GenerateComments     bool   `yaml:"generate_comments,omitempty"`
	AllowMapEntryOverlap bool   `yaml:"allow_map_entry_overlap,omitempty"`
	Concurrency          int    `yaml:"concurrency,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		OutputDir:     ".",
		RuntimeImport: gen.DefaultRuntimeImport,
		FileSuffix:    gen.DefaultFileSuffix,
		Concurrency:   compiler.DefaultOptions().Concurrency,
	}
}

// Load reads the configuration at path. Keys missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// LoadOrDefault is Load, falling back to Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Parse parses YAML configuration data and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// Validate checks the values that would otherwise fail late, during
// generation.
func (c *Config) Validate() error {
	var errs []error

	if c.Package != "" && !token.IsIdentifier(c.Package) {
		errs = append(errs, fmt.Errorf("%w: package %q is not a Go identifier", ErrInvalidConfig, c.Package))
	}

	if c.RuntimeImport == "" {
		errs = append(errs, fmt.Errorf("%w: runtime_import must not be empty", ErrInvalidConfig))
	}

	if !strings.HasSuffix(c.FileSuffix, ".go") {
		errs = append(errs, fmt.Errorf("%w: file_suffix %q must end in .go", ErrInvalidConfig, c.FileSuffix))
	}

	if strings.HasSuffix(c.FileSuffix, "_test.go") {
		errs = append(errs, fmt.Errorf("%w: file_suffix %q names a test file", ErrInvalidConfig, c.FileSuffix))
	}

	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("%w: concurrency must not be negative", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// CompilerOptions returns the compile options c selects.
func (c *Config) CompilerOptions(logger *slog.Logger) compiler.Options {
	return compiler.Options{
		AllowMapEntryOverlap: c.AllowMapEntryOverlap,
		Concurrency:          c.Concurrency,
		Logger:               logger,
	}
}

// GeneratorConfig returns the generator configuration c selects. source is
// recorded in the header of generated files.
func (c *Config) GeneratorConfig(source string, logger *slog.Logger) gen.GeneratorConfig {
	return gen.GeneratorConfig{
		PackageName:      c.Package,
		OutputDir:        c.OutputDir,
		FileSuffix:       c.FileSuffix,
		RuntimeImport:    c.RuntimeImport,
		Source:           source,
		GenerateComments: c.GenerateComments,
		Logger:           logger,
	}
}
