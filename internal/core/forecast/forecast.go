// Package forecast aggregates passenger counts by calendar month and
// extrapolates the following year with a least-squares trend line.
package forecast

import (
	"fmt"
	"math"

	"paxflow/internal/domain"
)

// Horizon is the number of months predicted, one calendar year
const Horizon = 12

// Forecaster fits a monthly trend and predicts the next calendar year
type Forecaster struct {
	// ClampNegative replaces negative predictions with zero. When false,
	// negative extrapolations are reported unchanged.
	ClampNegative bool
}

// Result holds the aggregate, the fitted line and the predictions
type Result struct {
	Monthly   *MonthlyAggregate
	Slope     float64
	Intercept float64
	Forecast  []domain.ForecastPoint
}

// Table returns predictions keyed by "YYYY-MM"
func (r *Result) Table() map[string]int64 {
	table := make(map[string]int64, len(r.Forecast))
	for _, fp := range r.Forecast {
		table[fp.Period] = fp.Passengers
	}
	return table
}

// Forecast aggregates records of every activity type, unknown included, and
// predicts the twelve months after the last observed year. Month m of that
// year is predicted at x = (lastYear+1)*12 + m, the same Year*12+Month index
// the line was fitted on. Predictions truncate toward zero and saturate at
// the int64 range.
func (f *Forecaster) Forecast(records []domain.ActivityRecord) (*Result, error) {
	agg, err := Aggregate(records)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	if agg.Len() < 2 {
		return nil, &domain.InsufficientDataError{Observed: agg.Len(), Required: 2}
	}

	x := make([]float64, 0, agg.Len())
	y := make([]float64, 0, agg.Len())
	for _, key := range agg.Keys() {
		p := agg.periods[key]
		x = append(x, float64(p.Index()))
		y = append(y, float64(agg.totals[key]))
	}

	slope, intercept, err := LinearRegression(x, y)
	if err != nil {
		return nil, fmt.Errorf("fit trend: %w", err)
	}

	periods := agg.Chronological()
	nextYear := periods[len(periods)-1].Year + 1

	points := make([]domain.ForecastPoint, 0, Horizon)
	for month := 1; month <= Horizon; month++ {
		p := domain.Period{Year: nextYear, Month: month}
		predicted := truncate(slope*float64(p.Index()) + intercept)
		if f.ClampNegative && predicted < 0 {
			predicted = 0
		}
		points = append(points, domain.ForecastPoint{Period: p.Key(), Passengers: predicted})
	}

	return &Result{
		Monthly:   agg,
		Slope:     slope,
		Intercept: intercept,
		Forecast:  points,
	}, nil
}

// truncate converts v toward zero, saturating where int64 cannot hold it
func truncate(v float64) int64 {
	switch {
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return int64(math.Trunc(v))
}
