package domain

import (
	"fmt"
	"testing"
)

func TestParseActivityType(t *testing.T) {
	tests := []struct {
		input string
		want  ActivityType
	}{
		{"Enplaned", ActivityEnplaned},
		{"deplaned", ActivityDeplaned},
		{"Thru / Transit", ActivityThruTransit},
		{"Thru/Transit", ActivityThruTransit},
		{"ThruTransit", ActivityThruTransit},
		{"  ENPLANED ", ActivityEnplaned},
		{"Transfer", ActivityUnknown},
		{"", ActivityUnknown},
	}

	for _, tt := range tests {
		if got := ParseActivityType(tt.input); got != tt.want {
			t.Errorf("ParseActivityType(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestActivityTypeKnown(t *testing.T) {
	if ActivityUnknown.Known() {
		t.Error("expected unknown to be unknown")
	}
	for _, at := range []ActivityType{ActivityEnplaned, ActivityDeplaned, ActivityThruTransit} {
		if !at.Known() {
			t.Errorf("expected %s to be known", at)
		}
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&MalformedPeriodError{Value: "x"}, "malformed_period"},
		{fmt.Errorf("wrapped: %w", &InsufficientDataError{Observed: 1, Required: 2}), "insufficient_data"},
		{&DegenerateRegressionError{}, "degenerate_regression"},
		{&UndefinedCentralityError{Nodes: 1}, "undefined_centrality"},
		{fmt.Errorf("edge: %w", &CountOverflowError{Key: "US->Asia", Total: 1, Add: 2}), "count_overflow"},
		{fmt.Errorf("boom"), "other"},
	}

	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.want {
			t.Errorf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
