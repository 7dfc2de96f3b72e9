// Package duckdb computes descriptive statistics over exam marks with an
// in-memory DuckDB database.
package duckdb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaDDL string

// SchemaDDL returns the DDL of the marks table.
func SchemaDDL() string {
	return schemaDDL
}

// EnsureSchema creates the marks table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("create marks table: %w", err)
	}
	return nil
}
