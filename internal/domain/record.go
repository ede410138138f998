package domain

import (
	"math"
	"strings"
)

// MaxPassengerCount bounds a single record's passenger count. Sources reject
// larger values.
const MaxPassengerCount uint64 = math.MaxUint32

// ActivityType classifies the direction of passenger movement in a record
type ActivityType string

const (
	ActivityEnplaned    ActivityType = "enplaned"
	ActivityDeplaned    ActivityType = "deplaned"
	ActivityThruTransit ActivityType = "thru_transit"
	ActivityUnknown     ActivityType = "unknown"
)

// ParseActivityType maps a raw activity label to an ActivityType.
// Unrecognized labels map to ActivityUnknown, never to an error.
func ParseActivityType(s string) ActivityType {
	norm := strings.ToLower(strings.Join(strings.Fields(s), ""))
	switch norm {
	case "enplaned":
		return ActivityEnplaned
	case "deplaned":
		return ActivityDeplaned
	case "thru/transit", "thrutransit", "thru_transit":
		return ActivityThruTransit
	default:
		return ActivityUnknown
	}
}

// Known reports whether the activity type takes part in flow graph construction
func (t ActivityType) Known() bool {
	switch t {
	case ActivityEnplaned, ActivityDeplaned, ActivityThruTransit:
		return true
	}
	return false
}

// ActivityRecord is one row of flight activity as supplied by a record source
type ActivityRecord struct {
	GeoRegion      string       `json:"geo_region" yaml:"geo_region"`
	ActivityType   ActivityType `json:"activity_type" yaml:"activity_type"`
	PassengerCount uint64       `json:"passenger_count" yaml:"passenger_count"`
	ActivityPeriod string       `json:"activity_period" yaml:"activity_period"`
}

// CheckPassengerCount rejects a single count above MaxPassengerCount
func CheckPassengerCount(count uint64) error {
	if count > MaxPassengerCount {
		return &CountOverflowError{Key: "record", Add: count}
	}
	return nil
}

// NewActivityRecord creates a record, classifying the raw activity label
func NewActivityRecord(region, activity string, count uint64, period string) ActivityRecord {
	return ActivityRecord{
		GeoRegion:      region,
		ActivityType:   ParseActivityType(activity),
		PassengerCount: count,
		ActivityPeriod: period,
	}
}
