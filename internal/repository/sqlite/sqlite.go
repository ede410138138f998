package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"paxflow/internal/domain"
	"paxflow/internal/repository"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Source over a SQLite table
type Repository struct {
	db      *sql.DB
	table   string
	columns repository.Columns
}

// New opens the SQLite database at dbPath and reads records from table
func New(dbPath, table string, columns repository.Columns) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Repository{db: db, table: table, columns: columns}, nil
}

// Records reads every row of the configured table in rowid order
func (r *Repository) Records(ctx context.Context) ([]domain.ActivityRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectQuery(r.table, r.columns))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", r.table, err)
	}
	defer rows.Close()

	var records []domain.ActivityRecord
	for rows.Next() {
		var row recordRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table, err)
		}
		rec, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", r.table, len(records)+1, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", r.table, err)
	}

	return records, nil
}

// EnsureSchema creates the records table if it does not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createTableQuery(r.table, r.columns))
	if err != nil {
		return fmt.Errorf("create table %s: %w", r.table, err)
	}
	return nil
}

// ImportRecords appends records to the table in a single transaction
func (r *Repository) ImportRecords(ctx context.Context, records []domain.ActivityRecord) error {
	return r.importRecords(ctx, records, false)
}

// ReplaceRecords replaces the table contents with records in a single transaction
func (r *Repository) ReplaceRecords(ctx context.Context, records []domain.ActivityRecord) error {
	return r.importRecords(ctx, records, true)
}

func (r *Repository) importRecords(ctx context.Context, records []domain.ActivityRecord, replace bool) error {
	if err := r.EnsureSchema(ctx); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if replace {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+quoteIdent(r.table)); err != nil {
			return fmt.Errorf("clear %s: %w", r.table, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, insertQuery(r.table, r.columns))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		args, err := recordInsertArgs(rec)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
