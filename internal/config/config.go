// Package config provides configuration management for paxflow.
//
// Config file locations (priority order):
//  1. $PAXFLOW_CONFIG
//  2. ./paxflow.yaml
//  3. $XDG_CONFIG_HOME/paxflow/config.yaml
//  4. ~/.config/paxflow/config.yaml
//  5. /etc/paxflow/config.yaml
//
// Command line flags override file values; Validate runs after overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"paxflow/internal/core/flowgraph"
)

var sqlIdentPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("sqlident", func(fl validator.FieldLevel) bool {
		return sqlIdentPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("config: register sqlident validation: %v", err))
	}
	return v
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns defaults matching the SFO passenger statistics export
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Anchor == "" {
		c.Anchor = flowgraph.DefaultAnchor
	}
	if c.Source.Kind == "" {
		c.Source.Kind = SourceCSV
	}
	if c.Source.Kind == SourceSQLite && c.Source.Table == "" {
		c.Source.Table = "activity"
	}
	if c.Source.Columns.Region == "" {
		c.Source.Columns.Region = "geo_region"
	}
	if c.Source.Columns.ActivityType == "" {
		c.Source.Columns.ActivityType = "activity_type"
	}
	if c.Source.Columns.PassengerCount == "" {
		c.Source.Columns.PassengerCount = "passenger_count"
	}
	if c.Source.Columns.ActivityPeriod == "" {
		c.Source.Columns.ActivityPeriod = "activity_period"
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
}

// Validate checks the config after defaults and overrides are applied
func (c *Config) Validate() error {
	// kind may have been overridden after load
	c.applyDefaults()

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Anchor: %s, Source: %s (%s)", c.Anchor, c.Source.Kind, c.Source.Path)
	if c.Source.Kind == SourceSQLite {
		summary += fmt.Sprintf(" table %s", c.Source.Table)
	}
	summary += fmt.Sprintf(", Output: %s", c.Output.Format)
	if c.Forecast.ClampNegative {
		summary += ", clamping negative forecasts"
	}
	return summary
}
