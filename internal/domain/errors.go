package domain

import (
	"errors"
	"fmt"
)

// MalformedPeriodError reports an activity_period that cannot be parsed
type MalformedPeriodError struct {
	Value  string
	Reason string
}

func (e *MalformedPeriodError) Error() string {
	return fmt.Sprintf("malformed activity period %q: %s", e.Value, e.Reason)
}

// InsufficientDataError reports too few distinct months to fit a regression
type InsufficientDataError struct {
	Observed int
	Required int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d distinct months observed, need at least %d", e.Observed, e.Required)
}

// DegenerateRegressionError reports zero variance in the regression predictor
type DegenerateRegressionError struct {
	X float64
}

func (e *DegenerateRegressionError) Error() string {
	return fmt.Sprintf("degenerate regression: every x equals %g", e.X)
}

// UndefinedCentralityError reports a graph too small to normalize centrality
type UndefinedCentralityError struct {
	Nodes int
}

func (e *UndefinedCentralityError) Error() string {
	return fmt.Sprintf("centrality undefined for graph with %d node", e.Nodes)
}

// CountOverflowError reports a passenger count or running total outside the
// supported range
type CountOverflowError struct {
	Key   string
	Total uint64
	Add   uint64
}

func (e *CountOverflowError) Error() string {
	if e.Total == 0 {
		return fmt.Sprintf("passenger count %d for %s exceeds maximum %d", e.Add, e.Key, MaxPassengerCount)
	}
	return fmt.Sprintf("passenger total for %s overflows: %d + %d", e.Key, e.Total, e.Add)
}

// ErrorKind returns a short stable name for a typed domain error, or "other"
func ErrorKind(err error) string {
	var (
		malformed    *MalformedPeriodError
		insufficient *InsufficientDataError
		degenerate   *DegenerateRegressionError
		undefined    *UndefinedCentralityError
		overflow     *CountOverflowError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &malformed):
		return "malformed_period"
	case errors.As(err, &insufficient):
		return "insufficient_data"
	case errors.As(err, &degenerate):
		return "degenerate_regression"
	case errors.As(err, &undefined):
		return "undefined_centrality"
	case errors.As(err, &overflow):
		return "count_overflow"
	default:
		return "other"
	}
}
