package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paxflow/internal/codec"
	"paxflow/internal/config"
	"paxflow/internal/domain"
	"paxflow/internal/metrics"
	"paxflow/internal/repository"
	"paxflow/internal/repository/csvfile"
	"paxflow/internal/repository/sqlite"
	"paxflow/internal/service"
)

type flags struct {
	configPath  string
	input       string
	sourceKind  string
	table       string
	format      string
	anchor      string
	clamp       bool
	metricsFile string
	stageDB     string
	initConfig  bool
	verbose     bool
}

func main() {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "Config file path (default: $PAXFLOW_CONFIG, ./paxflow.yaml, XDG locations)")
	flag.StringVar(&f.input, "input", "", "Record source path, CSV file or SQLite database")
	flag.StringVar(&f.sourceKind, "source", "", "Record source kind: csv or sqlite")
	flag.StringVar(&f.table, "table", "", "SQLite table holding activity records")
	flag.StringVar(&f.format, "format", "", "Output format: text, json or yaml")
	flag.StringVar(&f.anchor, "anchor", "", "Domestic anchor node label")
	flag.BoolVar(&f.clamp, "clamp-negative", false, "Report negative forecasts as zero")
	flag.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	flag.StringVar(&f.stageDB, "stage-db", "", "Copy loaded records into this SQLite database before analysis")
	flag.BoolVar(&f.initConfig, "init-config", false, "Write a default config file and exit")
	flag.BoolVar(&f.verbose, "v", false, "Verbose logging")
	flag.Parse()

	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, f, logger))
}

func run(ctx context.Context, f flags, logger *slog.Logger) int {
	if f.initConfig {
		path := config.DefaultConfigPath()
		if err := config.DefaultConfig().Save(path); err != nil {
			logger.Error("failed to write config", "path", path, "error", err)
			return 1
		}
		logger.Info("wrote default config", "path", path)
		return 0
	}

	cfg, err := loadConfig(f)
	if err != nil {
		logger.Error("configuration error", "error", err)
		return 2
	}
	logger.Debug("configuration loaded", "summary", cfg.Summary())

	exporter, err := codec.ForFormat(cfg.Output.Format)
	if err != nil {
		logger.Error("configuration error", "error", err)
		return 2
	}

	src, err := openSource(cfg)
	if err != nil {
		logger.Error("failed to open record source", "error", err)
		return 1
	}
	defer src.Close()

	if cfg.Source.Timeout != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Source.Timeout.Duration())
		defer cancel()
	}

	reg := metrics.NewRegistry()
	eventBus := service.NewEventBus()
	eventChan := make(chan service.Event, 32)
	eventBus.Subscribe(eventChan)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range eventChan {
			logger.Debug("event", "type", event.Type, "run_id", event.RunID, "payload", event.Payload)
		}
	}()
	defer func() {
		close(eventChan)
		<-done
	}()

	svc := service.NewAnalysisService(service.Options{
		Anchor:        cfg.Anchor,
		ClampNegative: cfg.Forecast.ClampNegative,
	}, reg, eventBus, logger)

	if f.stageDB != "" {
		src, err = stageRecords(ctx, src, f.stageDB, cfg)
		if err != nil {
			logger.Error("failed to stage records", "db", f.stageDB, "error", err)
			return 1
		}
		defer src.Close()
		logger.Info("records staged", "db", f.stageDB, "table", stageTable(cfg))
	}

	start := time.Now()
	report, err := svc.Analyze(ctx, src)
	reg.ObserveStage("total", time.Since(start))
	writeMetrics(cfg, reg, logger)
	if err != nil {
		logger.Error("analysis failed", "error", err, "kind", domain.ErrorKind(err))
		return exitCode(err)
	}

	if err := exporter.Export(report, os.Stdout); err != nil {
		logger.Error("failed to write report", "error", err)
		return 1
	}

	return 0
}

func loadConfig(f flags) (*config.Config, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if f.configPath != "" {
		cfg, path, err = config.LoadFromPath(f.configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if path != "" {
		slog.Debug("using config file", "path", path)
	}

	if f.input != "" {
		cfg.Source.Path = f.input
	}
	if f.sourceKind != "" {
		cfg.Source.Kind = config.SourceKind(f.sourceKind)
	}
	if f.table != "" {
		cfg.Source.Table = f.table
	}
	if f.format != "" {
		cfg.Output.Format = f.format
	}
	if f.anchor != "" {
		cfg.Anchor = f.anchor
	}
	if f.clamp {
		cfg.Forecast.ClampNegative = true
	}
	if f.metricsFile != "" {
		cfg.Output.MetricsFile = f.metricsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func columns(cfg *config.Config) repository.Columns {
	return repository.Columns{
		Region:         cfg.Source.Columns.Region,
		ActivityType:   cfg.Source.Columns.ActivityType,
		PassengerCount: cfg.Source.Columns.PassengerCount,
		ActivityPeriod: cfg.Source.Columns.ActivityPeriod,
	}
}

func openSource(cfg *config.Config) (repository.Source, error) {
	switch cfg.Source.Kind {
	case config.SourceCSV:
		return csvfile.New(cfg.Source.Path, columns(cfg)), nil
	case config.SourceSQLite:
		return sqlite.New(cfg.Source.Path, cfg.Source.Table, columns(cfg))
	default:
		return nil, fmt.Errorf("unsupported source kind %q", cfg.Source.Kind)
	}
}

func stageTable(cfg *config.Config) string {
	if cfg.Source.Table != "" {
		return cfg.Source.Table
	}
	return "activity"
}

// stageRecords replaces the SQLite staging table with every record from src and returns
// that table as the new source
func stageRecords(ctx context.Context, src repository.Source, dbPath string, cfg *config.Config) (repository.Source, error) {
	records, err := src.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	repo, err := sqlite.New(dbPath, stageTable(cfg), repository.DefaultColumns())
	if err != nil {
		return nil, err
	}
	if err := repo.ReplaceRecords(ctx, records); err != nil {
		repo.Close()
		return nil, err
	}
	return repo, nil
}

func writeMetrics(cfg *config.Config, reg *metrics.Registry, logger *slog.Logger) {
	if cfg.Output.MetricsFile == "" {
		return
	}
	if err := reg.WriteTextfile(cfg.Output.MetricsFile); err != nil {
		logger.Warn("failed to write metrics", "path", cfg.Output.MetricsFile, "error", err)
	}
}

// exitCode maps typed analysis failures to distinct exit statuses
func exitCode(err error) int {
	var (
		malformed    *domain.MalformedPeriodError
		insufficient *domain.InsufficientDataError
		degenerate   *domain.DegenerateRegressionError
		undefined    *domain.UndefinedCentralityError
		overflow     *domain.CountOverflowError
	)
	switch {
	case errors.As(err, &malformed):
		return 3
	case errors.As(err, &insufficient), errors.As(err, &degenerate):
		return 4
	case errors.As(err, &undefined):
		return 5
	case errors.As(err, &overflow):
		return 6
	default:
		return 1
	}
}
