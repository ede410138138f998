package domain

import "time"

// Report is the combined output of one analysis run, handed to exporters
type Report struct {
	RunID       string             `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time          `json:"generated_at" yaml:"generated_at"`
	Anchor      string             `json:"anchor" yaml:"anchor"`
	Stats       RecordStats        `json:"stats" yaml:"stats"`
	Nodes       []ReportNode       `json:"nodes" yaml:"nodes"`
	Edges       []ReportEdge       `json:"edges" yaml:"edges"`
	Centrality  map[string]float64 `json:"centrality" yaml:"centrality"`
	Monthly     []MonthlyTotal     `json:"monthly" yaml:"monthly"`
	Trend       Trend              `json:"trend" yaml:"trend"`
	Forecast    []ForecastPoint    `json:"forecast" yaml:"forecast"`
}

// RecordStats counts the records that went into a run
type RecordStats struct {
	Total        int `json:"total" yaml:"total"`
	GraphSkipped int `json:"graph_skipped" yaml:"graph_skipped"`
}

// ReportNode is a graph node with its interned id
type ReportNode struct {
	ID    int    `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// ReportEdge is a weighted origin -> destination flow
type ReportEdge struct {
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
	Weight      uint64 `json:"weight" yaml:"weight"`
}

// MonthlyTotal is the aggregated passenger count for one "YYYY-MM" period
type MonthlyTotal struct {
	Period     string `json:"period" yaml:"period"`
	Passengers uint64 `json:"passengers" yaml:"passengers"`
}

// Trend holds the fitted regression line
type Trend struct {
	Slope     float64 `json:"slope" yaml:"slope"`
	Intercept float64 `json:"intercept" yaml:"intercept"`
}

// ForecastPoint is a predicted passenger count for a future period.
// Passengers may be negative unless clamping is enabled.
type ForecastPoint struct {
	Period     string `json:"period" yaml:"period"`
	Passengers int64  `json:"passengers" yaml:"passengers"`
}
