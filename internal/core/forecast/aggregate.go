package forecast

import (
	"fmt"
	"math/bits"
	"sort"

	"paxflow/internal/domain"
)

// MonthlyAggregate sums passenger counts per calendar month. Keys keep the
// order in which they first appeared.
type MonthlyAggregate struct {
	totals  map[string]uint64
	periods map[string]domain.Period
	order   []string
}

// NewMonthlyAggregate creates an empty aggregate
func NewMonthlyAggregate() *MonthlyAggregate {
	return &MonthlyAggregate{
		totals:  make(map[string]uint64),
		periods: make(map[string]domain.Period),
	}
}

// Aggregate sums every record by period regardless of activity type
func Aggregate(records []domain.ActivityRecord) (*MonthlyAggregate, error) {
	agg := NewMonthlyAggregate()
	for i, rec := range records {
		if err := agg.Add(rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return agg, nil
}

// Add parses the record's period and adds its passenger count. A monthly
// total that would wrap returns *domain.CountOverflowError and leaves the
// aggregate unchanged.
func (a *MonthlyAggregate) Add(rec domain.ActivityRecord) error {
	p, err := domain.ParsePeriod(rec.ActivityPeriod)
	if err != nil {
		return err
	}

	key := p.Key()
	sum, carry := bits.Add64(a.totals[key], rec.PassengerCount, 0)
	if carry != 0 {
		return &domain.CountOverflowError{Key: key, Total: a.totals[key], Add: rec.PassengerCount}
	}

	if _, ok := a.periods[key]; !ok {
		a.periods[key] = p
		a.order = append(a.order, key)
	}
	a.totals[key] = sum
	return nil
}

// Len returns the number of distinct months
func (a *MonthlyAggregate) Len() int {
	return len(a.order)
}

// Total returns the sum for a "YYYY-MM" key
func (a *MonthlyAggregate) Total(key string) (uint64, bool) {
	v, ok := a.totals[key]
	return v, ok
}

// Keys returns keys in first-appearance order
func (a *MonthlyAggregate) Keys() []string {
	keys := make([]string, len(a.order))
	copy(keys, a.order)
	return keys
}

// Chronological returns periods sorted oldest first
func (a *MonthlyAggregate) Chronological() []domain.Period {
	periods := make([]domain.Period, 0, len(a.order))
	for _, key := range a.order {
		periods = append(periods, a.periods[key])
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Before(periods[j])
	})
	return periods
}

// Totals returns the aggregate as chronologically ordered report rows
func (a *MonthlyAggregate) Totals() []domain.MonthlyTotal {
	periods := a.Chronological()
	totals := make([]domain.MonthlyTotal, len(periods))
	for i, p := range periods {
		totals[i] = domain.MonthlyTotal{Period: p.Key(), Passengers: a.totals[p.Key()]}
	}
	return totals
}
