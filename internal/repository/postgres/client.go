package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// schema creates the document table on first use, the way Mongo creates a
// collection on first insert.
const schema = `
	CREATE TABLE IF NOT EXISTS events (
		id         UUID PRIMARY KEY,
		doc        JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// Connect opens a pool for dsn, pings it within timeout and ensures the events table exists.
func Connect(ctx context.Context, dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := initDB(ctx, db, timeout); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func initDB(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure events table: %w", err)
	}
	return nil
}
