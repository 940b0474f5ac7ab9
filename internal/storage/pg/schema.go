package pg

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the runs and result_rows tables when missing.
func EnsureSchema(ctx context.Context, pool *ConnectionPool) error {
	if _, err := pool.conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
