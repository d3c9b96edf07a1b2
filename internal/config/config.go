// =============================================================================
// Ledger Cleaner - Configuration Module
// =============================================================================
//
// This module loads the optional run configuration file. Every setting has a
// default, so the tool works without any file at all.
//
// CONFIGURATION FILE (ledgerclean.yaml):
//   log_level: info
//   preview_limit: 20
//   output_suffix: _cleaned
//   delimiter: ","
//   quote_char: "\""
//   report_subtotal_rows: true
//   sheet: ""
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "ledgerclean.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the settings for one ledgerclean invocation.
type Config struct {
	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// PreviewLimit caps how many diagnostics the run summary prints.
	// The remainder is summarized by count.
	// Default: 20
	PreviewLimit int `yaml:"preview_limit"`

	// OutputSuffix is inserted before the extension of the input file name
	// when no output file is given.
	// Default: "_cleaned"
	OutputSuffix string `yaml:"output_suffix"`

	// Delimiter separates fields in both the input and the output.
	// Common values: "," (comma), ";" (semicolon), "tab"
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// QuoteChar wraps fields that contain the delimiter.
	// Default: '"'
	QuoteChar string `yaml:"quote_char"`

	// ReportSubtotalRows records a warning whenever a sales row without a
	// company is skipped as a month subtotal.
	// Default: true
	ReportSubtotalRows *bool `yaml:"report_subtotal_rows"`

	// Sheet selects the worksheet when the input is a workbook.
	// Default: "" (first sheet)
	Sheet string `yaml:"sheet"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration file at path.
//
// PARAMETERS:
//   - path: The path to the YAML file.
//   - required: When false, a missing file yields the defaults instead of
//     an error. This is the case for the implicit DefaultPath.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed or validated.
func Load(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.PreviewLimit == 0 {
		cfg.PreviewLimit = 20
	}
	if cfg.OutputSuffix == "" {
		cfg.OutputSuffix = "_cleaned"
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = ","
	}
	if cfg.QuoteChar == "" {
		cfg.QuoteChar = "\""
	}
	if cfg.ReportSubtotalRows == nil {
		on := true
		cfg.ReportSubtotalRows = &on
	}
}

// validate checks the values that cannot be defaulted away.
func validate(cfg *Config) error {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}

	if cfg.PreviewLimit < 0 {
		return fmt.Errorf("preview_limit must not be negative")
	}

	if _, err := DelimiterRune(cfg.Delimiter); err != nil {
		return err
	}

	if len([]rune(cfg.QuoteChar)) != 1 {
		return fmt.Errorf("quote_char must be a single character")
	}
	if cfg.QuoteChar == cfg.Delimiter {
		return fmt.Errorf("quote_char and delimiter must differ")
	}

	return nil
}

// DelimiterRune converts the configured delimiter name to a rune.
func DelimiterRune(delimiter string) (rune, error) {
	switch delimiter {
	case "\\t", "tab", "TAB":
		return '\t', nil
	case "pipe", "PIPE":
		return '|', nil
	case "semicolon":
		return ';', nil
	}

	runes := []rune(delimiter)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
	}
	return runes[0], nil
}

// Comma returns the configured delimiter as a rune.
// The delimiter is validated on load, so the fallback is never hit for a
// loaded configuration.
func (c *Config) Comma() rune {
	r, err := DelimiterRune(c.Delimiter)
	if err != nil {
		return ','
	}
	return r
}

// Quote returns the configured quote character as a rune.
func (c *Config) Quote() rune {
	runes := []rune(c.QuoteChar)
	if len(runes) != 1 {
		return '"'
	}
	return runes[0]
}

// SubtotalWarnings reports whether skipped subtotal rows produce warnings.
func (c *Config) SubtotalWarnings() bool {
	return c.ReportSubtotalRows == nil || *c.ReportSubtotalRows
}
