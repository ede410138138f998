// Package csvfile reads activity records from a CSV export with a header row.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"paxflow/internal/domain"
	"paxflow/internal/repository"
)

// headerAliases maps each field to the header names used by the SFO export
var headerAliases = map[string][]string{
	"region":          {"GEO Region", "geo_region"},
	"activity_type":   {"Activity Type Code", "activity_type"},
	"passenger_count": {"Passenger Count", "passenger_count"},
	"activity_period": {"Activity Period", "activity_period"},
}

// File is a repository.Source backed by a CSV file on disk
type File struct {
	path    string
	columns repository.Columns
}

// New creates a CSV source for path
func New(path string, columns repository.Columns) *File {
	return &File{path: path, columns: columns}
}

// Records reads every row of the file
func (f *File) Records(ctx context.Context) ([]domain.ActivityRecord, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	records, err := Parse(ctx, file, f.columns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	return records, nil
}

// Close is a no-op; the file is closed after each read
func (f *File) Close() error {
	return nil
}

// Parse reads a header row followed by data rows from r
func Parse(ctx context.Context, r io.Reader, columns repository.Columns) ([]domain.ActivityRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := resolveColumns(headers, columns)
	if err != nil {
		return nil, err
	}

	var records []domain.ActivityRecord
	for line := 2; ; line++ {
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		vals, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := idx.record(vals)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

type columnIndex struct {
	region, activity, count, period int
}

func (c columnIndex) record(vals []string) (domain.ActivityRecord, error) {
	raw := strings.TrimSpace(vals[c.count])
	count, err := strconv.ParseUint(strings.ReplaceAll(raw, ",", ""), 10, 64)
	if err != nil {
		return domain.ActivityRecord{}, fmt.Errorf("passenger count %q: not a non-negative integer", raw)
	}
	if err := domain.CheckPassengerCount(count); err != nil {
		return domain.ActivityRecord{}, err
	}

	return domain.NewActivityRecord(
		strings.TrimSpace(vals[c.region]),
		vals[c.activity],
		count,
		strings.TrimSpace(vals[c.period]),
	), nil
}

func resolveColumns(headers []string, columns repository.Columns) (columnIndex, error) {
	find := func(field, configured string) (int, error) {
		candidates := append([]string{configured}, headerAliases[field]...)
		for _, want := range candidates {
			for i, h := range headers {
				if strings.EqualFold(strings.TrimSpace(h), want) {
					return i, nil
				}
			}
		}
		return -1, fmt.Errorf("column %q not found in header", configured)
	}

	var idx columnIndex
	var err error
	if idx.region, err = find("region", columns.Region); err != nil {
		return idx, err
	}
	if idx.activity, err = find("activity_type", columns.ActivityType); err != nil {
		return idx, err
	}
	if idx.count, err = find("passenger_count", columns.PassengerCount); err != nil {
		return idx, err
	}
	if idx.period, err = find("activity_period", columns.ActivityPeriod); err != nil {
		return idx, err
	}
	return idx, nil
}
