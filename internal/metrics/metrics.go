// Package metrics exposes run statistics for the analysis pipeline as
// Prometheus collectors on a private registry.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for one process
type Registry struct {
	RecordsTotal     *prometheus.CounterVec
	RecordsSkipped   prometheus.Counter
	GraphNodes       prometheus.Gauge
	GraphEdges       prometheus.Gauge
	GraphPassengers  prometheus.Gauge
	ForecastMonths   prometheus.Gauge
	ForecastSlope    prometheus.Gauge
	RunDuration      *prometheus.HistogramVec
	RunFailuresTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every collector registered
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	factory := promauto.With(r.registry)

	r.RecordsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paxflow_records_total",
			Help: "Activity records ingested, by activity type",
		},
		[]string{"activity_type"},
	)
	r.RecordsSkipped = factory.NewCounter(prometheus.CounterOpts{
		Name: "paxflow_graph_records_skipped_total",
		Help: "Records left out of the flow graph because of an unknown activity type",
	})
	r.GraphNodes = factory.NewGauge(prometheus.GaugeOpts{
		Name: "paxflow_graph_nodes",
		Help: "Distinct nodes in the last built flow graph",
	})
	r.GraphEdges = factory.NewGauge(prometheus.GaugeOpts{
		Name: "paxflow_graph_edges",
		Help: "Distinct origin/destination edges in the last built flow graph",
	})
	r.GraphPassengers = factory.NewGauge(prometheus.GaugeOpts{
		Name: "paxflow_graph_passengers",
		Help: "Sum of edge weights in the last built flow graph",
	})
	r.ForecastMonths = factory.NewGauge(prometheus.GaugeOpts{
		Name: "paxflow_forecast_observed_months",
		Help: "Distinct calendar months used to fit the last trend",
	})
	r.ForecastSlope = factory.NewGauge(prometheus.GaugeOpts{
		Name: "paxflow_forecast_slope",
		Help: "Passengers per month of the last fitted trend",
	})
	r.RunDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paxflow_stage_duration_seconds",
			Help:    "Duration of each pipeline stage in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"stage"},
	)
	r.RunFailuresTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paxflow_failures_total",
			Help: "Pipeline failures by stage and error kind",
		},
		[]string{"stage", "kind"},
	)

	return r
}

// RecordIngest counts one record of the given activity type
func (r *Registry) RecordIngest(activityType string) {
	r.RecordsTotal.WithLabelValues(activityType).Inc()
}

// RecordGraph updates graph gauges after a build
func (r *Registry) RecordGraph(nodes, edges, skipped int, passengers uint64) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
	r.GraphPassengers.Set(float64(passengers))
	r.RecordsSkipped.Add(float64(skipped))
}

// RecordForecast updates forecast gauges after a fit
func (r *Registry) RecordForecast(months int, slope float64) {
	r.ForecastMonths.Set(float64(months))
	r.ForecastSlope.Set(slope)
}

// ObserveStage records how long a stage took
func (r *Registry) ObserveStage(stage string, d time.Duration) {
	r.RunDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordFailure counts a failed stage
func (r *Registry) RecordFailure(stage, kind string) {
	r.RunFailuresTotal.WithLabelValues(stage, kind).Inc()
}

// Gatherer exposes the underlying registry
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes every metric to path in the node_exporter textfile format
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
