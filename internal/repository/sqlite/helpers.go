package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"paxflow/internal/domain"
	"paxflow/internal/repository"
)

// quoteIdent quotes a table or column name for SQLite
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quotedColumns(columns repository.Columns) []string {
	names := columns.Names()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	return quoted
}

func selectQuery(table string, columns repository.Columns) string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid",
		strings.Join(quotedColumns(columns), ", "), quoteIdent(table))
}

func createTableQuery(table string, columns repository.Columns) string {
	q := quotedColumns(columns)
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		%s TEXT NOT NULL,
		%s TEXT NOT NULL,
		%s INTEGER NOT NULL CHECK (%s >= 0),
		%s TEXT NOT NULL
	)`, quoteIdent(table), q[0], q[1], q[2], q[2], q[3])
}

func insertQuery(table string, columns repository.Columns) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?)",
		quoteIdent(table), strings.Join(quotedColumns(columns), ", "))
}

// recordRow holds the raw scan target for one record
type recordRow struct {
	region   sql.NullString
	activity sql.NullString
	count    sql.NullInt64
	period   sql.NullString
}

func (r *recordRow) scanArgs() []interface{} {
	return []interface{}{&r.region, &r.activity, &r.count, &r.period}
}

func (r *recordRow) toDomain() (domain.ActivityRecord, error) {
	if !r.count.Valid {
		return domain.ActivityRecord{}, fmt.Errorf("passenger count is NULL")
	}
	if r.count.Int64 < 0 {
		return domain.ActivityRecord{}, fmt.Errorf("passenger count %d is negative", r.count.Int64)
	}
	if err := domain.CheckPassengerCount(uint64(r.count.Int64)); err != nil {
		return domain.ActivityRecord{}, err
	}

	return domain.NewActivityRecord(
		strings.TrimSpace(nullToString(r.region)),
		nullToString(r.activity),
		uint64(r.count.Int64),
		strings.TrimSpace(nullToString(r.period)),
	), nil
}

func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// activityLabel renders an activity type in the form ParseActivityType reads back
func activityLabel(t domain.ActivityType) string {
	switch t {
	case domain.ActivityEnplaned:
		return "Enplaned"
	case domain.ActivityDeplaned:
		return "Deplaned"
	case domain.ActivityThruTransit:
		return "Thru / Transit"
	default:
		return "Unknown"
	}
}

func recordInsertArgs(rec domain.ActivityRecord) ([]interface{}, error) {
	if err := domain.CheckPassengerCount(rec.PassengerCount); err != nil {
		return nil, err
	}
	return []interface{}{
		rec.GeoRegion,
		activityLabel(rec.ActivityType),
		int64(rec.PassengerCount),
		rec.ActivityPeriod,
	}, nil
}
