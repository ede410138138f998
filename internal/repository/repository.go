package repository

import (
	"context"

	"paxflow/internal/domain"
)

// Source supplies already-parsed activity records
type Source interface {
	Records(ctx context.Context) ([]domain.ActivityRecord, error)
	Close() error
}

// Columns names the four fields read from a tabular source
type Columns struct {
	Region         string
	ActivityType   string
	PassengerCount string
	ActivityPeriod string
}

// DefaultColumns returns the snake_case column names
func DefaultColumns() Columns {
	return Columns{
		Region:         "geo_region",
		ActivityType:   "activity_type",
		PassengerCount: "passenger_count",
		ActivityPeriod: "activity_period",
	}
}

// Names returns the column names in region, type, count, period order
func (c Columns) Names() []string {
	return []string{c.Region, c.ActivityType, c.PassengerCount, c.ActivityPeriod}
}
