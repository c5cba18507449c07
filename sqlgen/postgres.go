package sqlgen

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/boynton/tableql"
)

// ApplyPostgres creates the schema's tables over a single PostgreSQL
// connection, one statement per timeout window.
func ApplyPostgres(ctx context.Context, schema *tableql.SchemaFile, connString string) error {
	stmts, err := Statements(schema, Postgres)
	if err != nil {
		return err
	}
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close(ctx)
	for _, stmt := range stmts {
		if err := execOne(ctx, conn, stmt); err != nil {
			return err
		}
	}
	return nil
}

func execOne(ctx context.Context, conn *pgx.Conn, stmt string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if _, err := conn.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("cannot execute %q: %w", firstLine(stmt), err)
	}
	return nil
}
