package config

import (
	"time"
)

// SourceKind selects the record source implementation
type SourceKind string

const (
	SourceCSV    SourceKind = "csv"
	SourceSQLite SourceKind = "sqlite"
)

// Output formats understood by the codec package
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Anchor   string         `yaml:"anchor" validate:"required"`
	Source   SourceConfig   `yaml:"source"`
	Forecast ForecastConfig `yaml:"forecast"`
	Output   OutputConfig   `yaml:"output"`
}

// SourceConfig describes where activity records come from
type SourceConfig struct {
	Kind    SourceKind   `yaml:"kind" validate:"oneof=csv sqlite"`
	Path    string       `yaml:"path" validate:"required"`
	Table   string       `yaml:"table,omitempty" validate:"omitempty,sqlident"`
	Timeout *Duration    `yaml:"timeout,omitempty"`
	Columns ColumnConfig `yaml:"columns"`
}

// ColumnConfig names the four input columns
type ColumnConfig struct {
	Region         string `yaml:"region" validate:"required"`
	ActivityType   string `yaml:"activity_type" validate:"required"`
	PassengerCount string `yaml:"passenger_count" validate:"required"`
	ActivityPeriod string `yaml:"activity_period" validate:"required"`
}

// ForecastConfig controls trend extrapolation
type ForecastConfig struct {
	// ClampNegative reports negative predictions as zero
	ClampNegative bool `yaml:"clamp_negative"`
}

// OutputConfig controls how results are written
type OutputConfig struct {
	Format      string `yaml:"format" validate:"oneof=text json yaml"`
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
