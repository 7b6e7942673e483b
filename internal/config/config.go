// Package config loads assay settings from .assay.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/unbound-force/assay/internal/compat"
	"github.com/unbound-force/assay/internal/taxonomy"
)

// FileName is the config file looked up in the working directory.
const FileName = ".assay.yaml"

// Config holds all assay settings.
type Config struct {
	Rules  RulesConfig  `yaml:"rules"`
	Oracle OracleConfig `yaml:"oracle"`
	Report ReportConfig `yaml:"report"`
}

// RulesConfig selects the rules that run.
type RulesConfig struct {
	// Disable lists rule IDs whose findings are dropped.
	Disable []string `yaml:"disable"`
}

// OracleConfig tunes the compatibility oracle.
type OracleConfig struct {
	// NonConstant is "lenient" or "strict".
	NonConstant string `yaml:"non_constant"`
}

// ReportConfig controls output and exit status.
type ReportConfig struct {
	// Format is "text" or "json".
	Format string `yaml:"format"`

	// FailOn is the finding count at which check exits non-zero.
	// Zero never fails.
	FailOn int `yaml:"fail_on"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Oracle: OracleConfig{NonConstant: compat.NonConstantLenient.String()},
		Report: ReportConfig{Format: "text", FailOn: 1},
	}
}

// Load reads the config file at path over the defaults. An empty path
// looks for FileName in the working directory and falls back to the
// defaults when it does not exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	var errs []error
	for _, r := range c.Rules.Disable {
		if _, ok := taxonomy.Lookup(taxonomy.Rule(r)); !ok {
			errs = append(errs, fmt.Errorf("rules.disable: unknown rule %q", r))
		}
	}
	if _, err := compat.ParseNonConstantMode(c.Oracle.NonConstant); err != nil {
		errs = append(errs, fmt.Errorf("oracle.non_constant: %w", err))
	}
	switch c.Report.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("report.format: invalid format %q: must be 'text' or 'json'", c.Report.Format))
	}
	if c.Report.FailOn < 0 {
		errs = append(errs, fmt.Errorf("report.fail_on: must be >= 0, got %d", c.Report.FailOn))
	}
	return errors.Join(errs...)
}

// NonConstantMode returns the parsed oracle mode. It assumes Validate
// has passed.
func (c *Config) NonConstantMode() compat.NonConstantMode {
	m, _ := compat.ParseNonConstantMode(c.Oracle.NonConstant)
	return m
}

// DisabledRules returns the disabled rule IDs.
func (c *Config) DisabledRules() []taxonomy.Rule {
	out := make([]taxonomy.Rule, 0, len(c.Rules.Disable))
	for _, r := range c.Rules.Disable {
		out = append(out, taxonomy.Rule(r))
	}
	return out
}
