package forecast

import (
	"fmt"

	"paxflow/internal/domain"
)

// LinearRegression fits y = slope*x + intercept by ordinary least squares
func LinearRegression(x, y []float64) (slope, intercept float64, err error) {
	if len(x) != len(y) {
		return 0, 0, fmt.Errorf("regression input length mismatch: %d x, %d y", len(x), len(y))
	}
	n := len(x)
	if n < 2 {
		return 0, 0, &domain.InsufficientDataError{Observed: n, Required: 2}
	}

	var xSum, ySum float64
	for i := 0; i < n; i++ {
		xSum += x[i]
		ySum += y[i]
	}
	xMean := xSum / float64(n)
	yMean := ySum / float64(n)

	var num, denom float64
	for i := 0; i < n; i++ {
		dx := x[i] - xMean
		num += dx * (y[i] - yMean)
		denom += dx * dx
	}
	if denom == 0 {
		return 0, 0, &domain.DegenerateRegressionError{X: x[0]}
	}

	slope = num / denom
	intercept = yMean - slope*xMean
	return slope, intercept, nil
}
