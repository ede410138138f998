package forecast

import (
	"errors"
	"testing"

	"paxflow/internal/domain"
)

func TestLinearRegression(t *testing.T) {
	tests := []struct {
		name          string
		x, y          []float64
		slope, interc float64
	}{
		{"positive slope", []float64{1, 2, 3, 4, 5}, []float64{2, 4, 6, 8, 10}, 2.0, 0.0},
		{"negative slope", []float64{1, 2, 3, 4, 5}, []float64{10, 8, 6, 4, 2}, -2.0, 12.0},
		{"flat line", []float64{1, 2, 3}, []float64{7, 7, 7}, 0.0, 7.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slope, intercept, err := LinearRegression(tt.x, tt.y)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if slope != tt.slope {
				t.Errorf("slope = %v, want %v", slope, tt.slope)
			}
			if intercept != tt.interc {
				t.Errorf("intercept = %v, want %v", intercept, tt.interc)
			}
		})
	}
}

func TestLinearRegressionErrors(t *testing.T) {
	t.Run("single point is insufficient", func(t *testing.T) {
		_, _, err := LinearRegression([]float64{1}, []float64{1})
		var insufficient *domain.InsufficientDataError
		if !errors.As(err, &insufficient) {
			t.Fatalf("expected InsufficientDataError, got %v", err)
		}
	})

	t.Run("identical x is degenerate", func(t *testing.T) {
		_, _, err := LinearRegression([]float64{3, 3, 3}, []float64{1, 2, 3})
		var degenerate *domain.DegenerateRegressionError
		if !errors.As(err, &degenerate) {
			t.Fatalf("expected DegenerateRegressionError, got %v", err)
		}
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, _, err := LinearRegression([]float64{1, 2, 3}, []float64{1, 2})
		if err == nil {
			t.Fatal("expected error for mismatched lengths")
		}
	})
}
