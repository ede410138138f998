package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"paxflow/internal/core/flowgraph"
	"paxflow/internal/core/forecast"
	"paxflow/internal/domain"
	"paxflow/internal/metrics"
	"paxflow/internal/repository"
)

// Options configures an AnalysisService
type Options struct {
	Anchor        string
	ClampNegative bool
}

// AnalysisService runs the flow graph and forecast pipelines over a record set
type AnalysisService struct {
	builder    *flowgraph.Builder
	forecaster *forecast.Forecaster
	metrics    *metrics.Registry
	eventBus   *EventBus
	logger     *slog.Logger
	now        func() time.Time
}

// NewAnalysisService creates a new analysis service. metrics and eventBus may be nil.
func NewAnalysisService(opts Options, reg *metrics.Registry, eventBus *EventBus, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	if eventBus == nil {
		eventBus = NewEventBus()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &AnalysisService{
		builder:    flowgraph.NewBuilder(opts.Anchor),
		forecaster: &forecast.Forecaster{ClampNegative: opts.ClampNegative},
		metrics:    reg,
		eventBus:   eventBus,
		logger:     logger,
		now:        time.Now,
	}
}

// Anchor returns the domestic anchor label in use
func (s *AnalysisService) Anchor() string {
	return s.builder.Anchor
}

// Analyze loads records from src and runs both pipelines
func (s *AnalysisService) Analyze(ctx context.Context, src repository.Source) (*domain.Report, error) {
	start := s.now()
	records, err := src.Records(ctx)
	if err != nil {
		s.metrics.RecordFailure("load", domain.ErrorKind(err))
		return nil, fmt.Errorf("load records: %w", err)
	}
	s.metrics.ObserveStage("load", s.now().Sub(start))

	runID := uuid.NewString()
	s.logger.Info("records loaded", "run_id", runID, "count", len(records))
	s.eventBus.Publish(Event{
		Type:    EventRecordsLoaded,
		RunID:   runID,
		Payload: map[string]any{"records": len(records)},
	})

	return s.run(ctx, runID, records)
}

// Run builds the flow graph with centrality and the monthly forecast
// concurrently. The two branches share only the read-only record slice.
func (s *AnalysisService) Run(ctx context.Context, records []domain.ActivityRecord) (*domain.Report, error) {
	return s.run(ctx, uuid.NewString(), records)
}

func (s *AnalysisService) run(ctx context.Context, runID string, records []domain.ActivityRecord) (*domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := s.logger.With("run_id", runID)

	report := &domain.Report{
		RunID:       runID,
		GeneratedAt: s.now().UTC(),
		Anchor:      s.builder.Anchor,
		Stats:       domain.RecordStats{Total: len(records)},
	}

	for _, rec := range records {
		s.metrics.RecordIngest(string(rec.ActivityType))
	}
	s.eventBus.Publish(Event{
		Type:    EventRunStarted,
		RunID:   runID,
		Payload: map[string]any{"records": len(records)},
	})
	log.Info("analysis started", "records", len(records), "anchor", s.builder.Anchor)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		return s.runGraph(runID, log, records, report)
	})

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		return s.runForecast(runID, log, records, report)
	})

	if err := g.Wait(); err != nil {
		log.Error("analysis failed", "error", err, "kind", domain.ErrorKind(err))
		s.eventBus.Publish(Event{
			Type:    EventRunFailed,
			RunID:   runID,
			Payload: map[string]any{"error": err.Error(), "kind": domain.ErrorKind(err)},
		})
		return nil, err
	}

	s.eventBus.Publish(Event{Type: EventRunCompleted, RunID: runID})
	log.Info("analysis completed", "nodes", len(report.Nodes), "edges", len(report.Edges), "forecast_months", len(report.Forecast))

	return report, nil
}

// runGraph fills the graph fields of report. It writes only fields the
// forecast branch never touches.
func (s *AnalysisService) runGraph(runID string, log *slog.Logger, records []domain.ActivityRecord, report *domain.Report) error {
	start := s.now()

	built, err := s.builder.Build(records)
	if err != nil {
		s.metrics.RecordFailure("graph", domain.ErrorKind(err))
		return fmt.Errorf("build flow graph: %w", err)
	}
	graph := built.Graph

	centrality, err := flowgraph.Score(graph)
	if err != nil {
		s.metrics.RecordFailure("graph", domain.ErrorKind(err))
		return fmt.Errorf("score centrality: %w", err)
	}

	s.metrics.RecordGraph(graph.NodeCount(), graph.EdgeCount(), built.Skipped, graph.TotalWeight())
	s.metrics.ObserveStage("graph", s.now().Sub(start))

	report.Stats.GraphSkipped = built.Skipped
	report.Nodes = make([]domain.ReportNode, 0, graph.NodeCount())
	for _, n := range graph.Nodes() {
		report.Nodes = append(report.Nodes, domain.ReportNode{ID: int(n.ID), Label: n.Label})
	}
	report.Edges = make([]domain.ReportEdge, 0, graph.EdgeCount())
	for _, e := range graph.Edges() {
		report.Edges = append(report.Edges, domain.ReportEdge{
			Source:      graph.Label(e.From),
			Destination: graph.Label(e.To),
			Weight:      e.Weight,
		})
	}
	report.Centrality = centrality

	log.Info("flow graph built",
		"nodes", graph.NodeCount(),
		"edges", graph.EdgeCount(),
		"skipped", built.Skipped,
	)
	s.eventBus.Publish(Event{
		Type:    EventGraphBuilt,
		RunID:   runID,
		Payload: map[string]any{"nodes": graph.NodeCount(), "edges": graph.EdgeCount(), "skipped": built.Skipped},
	})

	return nil
}

// runForecast fills the monthly, trend and forecast fields of report
func (s *AnalysisService) runForecast(runID string, log *slog.Logger, records []domain.ActivityRecord, report *domain.Report) error {
	start := s.now()

	result, err := s.forecaster.Forecast(records)
	if err != nil {
		s.metrics.RecordFailure("forecast", domain.ErrorKind(err))
		return fmt.Errorf("forecast: %w", err)
	}

	s.metrics.RecordForecast(result.Monthly.Len(), result.Slope)
	s.metrics.ObserveStage("forecast", s.now().Sub(start))

	report.Monthly = result.Monthly.Totals()
	report.Trend = domain.Trend{Slope: result.Slope, Intercept: result.Intercept}
	report.Forecast = result.Forecast

	log.Info("forecast built",
		"months", result.Monthly.Len(),
		"slope", result.Slope,
		"intercept", result.Intercept,
	)
	s.eventBus.Publish(Event{
		Type:    EventForecastBuilt,
		RunID:   runID,
		Payload: map[string]any{"months": result.Monthly.Len(), "slope": result.Slope},
	})

	return nil
}
