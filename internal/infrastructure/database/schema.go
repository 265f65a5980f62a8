package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed migrations/schema.sql
var schemaSQL string

// EnsureSchema creates every table the API needs.
// Safe to call on every startup; all statements use IF NOT EXISTS.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}
	if _, err := db.Pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Schema returns the DDL applied by EnsureSchema
func Schema() string {
	return schemaSQL
}
