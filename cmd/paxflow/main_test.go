package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"paxflow/internal/config"
	"paxflow/internal/domain"
	"paxflow/internal/repository"
	"paxflow/internal/repository/csvfile"
)

const sample = `Activity Period,GEO Region,Activity Type Code,Passenger Count
202301,Asia,Enplaned,100
202302,Asia,Deplaned,50
`

func isolateConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Chdir(dir)
}

func TestLoadConfigOverrides(t *testing.T) {
	isolateConfig(t)

	cfg, err := loadConfig(flags{
		input:      "flights.db",
		sourceKind: "sqlite",
		format:     "json",
		anchor:     "CA",
		clamp:      true,
	})
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.Source.Kind != config.SourceSQLite || cfg.Source.Path != "flights.db" {
		t.Errorf("unexpected source %+v", cfg.Source)
	}
	if cfg.Source.Table != "activity" {
		t.Errorf("Table = %s, want activity", cfg.Source.Table)
	}
	if cfg.Anchor != "CA" || cfg.Output.Format != "json" || !cfg.Forecast.ClampNegative {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadConfigRequiresInput(t *testing.T) {
	isolateConfig(t)

	if _, err := loadConfig(flags{}); err == nil {
		t.Error("expected validation error without a source path")
	}
}

func TestStageRecords(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "air_traffic.csv")
	if err := os.WriteFile(csvPath, []byte(sample), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	cfg := config.DefaultConfig()
	src := csvfile.New(csvPath, repository.DefaultColumns())

	staged, err := stageRecords(context.Background(), src, filepath.Join(dir, "stage.db"), cfg)
	if err != nil {
		t.Fatalf("stageRecords() error: %v", err)
	}
	defer staged.Close()

	records, err := staged.Records(context.Background())
	if err != nil {
		t.Fatalf("Records() error: %v", err)
	}
	if len(records) != 2 || records[0].ActivityType != domain.ActivityEnplaned {
		t.Errorf("unexpected staged records %+v", records)
	}
}

func TestRunWritesMetrics(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "air_traffic.csv")
	if err := os.WriteFile(csvPath, []byte(sample), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	metricsPath := filepath.Join(dir, "paxflow.prom")

	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open devnull: %v", err)
	}
	stdout := os.Stdout
	os.Stdout = devnull
	defer func() {
		os.Stdout = stdout
		devnull.Close()
	}()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	code := run(context.Background(), flags{input: csvPath, format: "json", metricsFile: metricsPath}, logger)
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	if _, err := os.Stat(metricsPath); err != nil {
		t.Errorf("expected metrics file: %v", err)
	}
}

func TestRunRejectsOversizedCounts(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "air_traffic.csv")
	data := `Activity Period,GEO Region,Activity Type Code,Passenger Count
202301,Asia,Enplaned,18446744073709551615
202301,Asia,Enplaned,2
202302,Asia,Enplaned,5
`
	if err := os.WriteFile(csvPath, []byte(data), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if code := run(context.Background(), flags{input: csvPath, format: "json"}, logger); code != 6 {
		t.Errorf("run() = %d, want 6", code)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&domain.MalformedPeriodError{Value: "x"}, 3},
		{fmt.Errorf("forecast: %w", &domain.InsufficientDataError{Observed: 1, Required: 2}), 4},
		{&domain.DegenerateRegressionError{}, 4},
		{fmt.Errorf("score centrality: %w", &domain.UndefinedCentralityError{Nodes: 1}), 5},
		{fmt.Errorf("line 2: %w", &domain.CountOverflowError{Key: "record", Add: 1 << 40}), 6},
		{fmt.Errorf("disk on fire"), 1},
	}

	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
