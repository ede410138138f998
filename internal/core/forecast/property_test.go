package forecast

import (
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"paxflow/internal/domain"
)

func TestForecastInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("exact lines are recovered", prop.ForAll(
		func(slope, intercept int, n int) bool {
			x := make([]float64, n)
			y := make([]float64, n)
			for i := range x {
				x[i] = float64(i + 1)
				y[i] = float64(slope)*x[i] + float64(intercept)
			}

			gotSlope, gotIntercept, err := LinearRegression(x, y)
			if err != nil {
				return false
			}
			return math.Abs(gotSlope-float64(slope)) < 1e-6 &&
				math.Abs(gotIntercept-float64(intercept)) < 1e-6
		},
		gen.IntRange(-1000, 1000),
		gen.IntRange(-1000, 1000),
		gen.IntRange(2, 60),
	))

	properties.Property("aggregate total equals record total", prop.ForAll(
		func(counts []uint32) bool {
			records := make([]domain.ActivityRecord, len(counts))
			var sum uint64
			for i, c := range counts {
				period := fmt.Sprintf("2023%02d", i%12+1)
				records[i] = rec(domain.ActivityEnplaned, uint64(c), period)
				sum += uint64(c)
			}

			agg, err := Aggregate(records)
			if err != nil {
				return false
			}
			var total uint64
			for _, mt := range agg.Totals() {
				total += mt.Passengers
			}
			return total == sum
		},
		gen.SliceOf(gen.UInt32()),
	))

	properties.Property("forecast always spans the next calendar year", prop.ForAll(
		func(year int, months int) bool {
			records := make([]domain.ActivityRecord, months)
			for i := range records {
				records[i] = rec(domain.ActivityDeplaned, uint64(1000+i*10), fmt.Sprintf("%04d%02d", year, i+1))
			}

			result, err := (&Forecaster{}).Forecast(records)
			if err != nil || len(result.Forecast) != Horizon {
				return false
			}
			for i, fp := range result.Forecast {
				if fp.Period != fmt.Sprintf("%04d-%02d", year+1, i+1) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1990, 2030),
		gen.IntRange(2, 12),
	))

	properties.TestingRun(t)
}
