package domain

import (
	"fmt"
	"strconv"
)

// Period is a calendar month parsed from an activity_period value
type Period struct {
	Year  int
	Month int
}

// ParsePeriod parses a YYYYMM value. The first four characters are the year
// and the remainder is the month, so "20231" and "202301" are the same period.
func ParsePeriod(s string) (Period, error) {
	if len(s) < 5 {
		return Period{}, &MalformedPeriodError{Value: s, Reason: "shorter than 5 characters"}
	}

	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return Period{}, &MalformedPeriodError{Value: s, Reason: "year is not an integer"}
	}
	month, err := strconv.Atoi(s[4:])
	if err != nil {
		return Period{}, &MalformedPeriodError{Value: s, Reason: "month is not an integer"}
	}
	if month < 1 || month > 12 {
		return Period{}, &MalformedPeriodError{Value: s, Reason: fmt.Sprintf("month %d out of range", month)}
	}

	return Period{Year: year, Month: month}, nil
}

// Key returns the canonical "YYYY-MM" form
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Index returns the month index Year*12 + Month used as the regression predictor.
// Month is 1-based, which shifts every index by one but keeps spacing linear.
func (p Period) Index() int {
	return p.Year*12 + p.Month
}

// Before reports whether p is chronologically earlier than other
func (p Period) Before(other Period) bool {
	return p.Index() < other.Index()
}

func (p Period) String() string {
	return p.Key()
}
