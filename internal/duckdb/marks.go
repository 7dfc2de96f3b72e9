package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
)

// Mark is one student mark attached to a licence.
type Mark struct {
	Licence    string
	Identifier string
	Value      float64
}

// Summary holds the aggregates of a set of marks. StdDev is the sample
// standard deviation and is invalid for fewer than two marks.
type Summary struct {
	Licence string
	Count   int
	Mean    float64
	Median  float64
	StdDev  sql.NullFloat64
	Min     float64
	Max     float64
}

// Engine wraps an in-memory database holding the marks table.
type Engine struct {
	db *sql.DB
}

const summaryColumns = `count(*), avg(mark), median(mark), stddev_samp(mark), min(mark), max(mark)`

// Open creates an in-memory database with the schema applied.
func Open(ctx context.Context) (*Engine, error) {
	if ctx == nil {
		return nil, errors.New("duckdb: context is nil")
	}
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Engine{db: db}, nil
}

// DB exposes the underlying connection.
func (e *Engine) DB() *sql.DB {
	return e.db
}

// Close releases the database.
func (e *Engine) Close() error {
	if e == nil || e.db == nil {
		return nil
	}
	return e.db.Close()
}

// Load inserts marks in a single transaction.
func (e *Engine) Load(ctx context.Context, marks []Mark) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO marks (licence, identifier, mark) VALUES (?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare load: %w", err)
	}
	for _, mark := range marks {
		if _, err := stmt.ExecContext(ctx, mark.Licence, mark.Identifier, mark.Value); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("insert mark %s: %w", mark.Identifier, err)
		}
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("close load statement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	return nil
}

// Overall summarizes every mark. The boolean is false when the table is empty.
func (e *Engine) Overall(ctx context.Context) (Summary, bool, error) {
	row := e.db.QueryRowContext(ctx, `SELECT `+summaryColumns+` FROM marks`)
	summary, err := scanSummary(row, false)
	if err != nil {
		return Summary{}, false, fmt.Errorf("overall summary: %w", err)
	}
	return summary, summary.Count > 0, nil
}

// ByLicence summarizes marks per licence, ordered by licence name.
func (e *Engine) ByLicence(ctx context.Context) ([]Summary, error) {
	rows, err := e.db.QueryContext(ctx, `SELECT licence, `+summaryColumns+` FROM marks GROUP BY licence ORDER BY licence`)
	if err != nil {
		return nil, fmt.Errorf("licence summary: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		summary, err := scanSummary(rows, true)
		if err != nil {
			return nil, fmt.Errorf("licence summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("licence summary: %w", err)
	}
	return summaries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner, withLicence bool) (Summary, error) {
	var (
		summary                  Summary
		count                    int64
		mean, median, minV, maxV sql.NullFloat64
	)
	dest := []any{&count, &mean, &median, &summary.StdDev, &minV, &maxV}
	if withLicence {
		dest = append([]any{&summary.Licence}, dest...)
	}
	if err := row.Scan(dest...); err != nil {
		return Summary{}, err
	}
	summary.Count = int(count)
	summary.Mean = mean.Float64
	summary.Median = median.Float64
	summary.Min = minV.Float64
	summary.Max = maxV.Float64
	return summary, nil
}
