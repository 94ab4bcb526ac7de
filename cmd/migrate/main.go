package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rechargbatt/backend/internal/logging"
)

// schema is the full DDL for the requests table. One table, so no
// versioned migration files; the statements are idempotent.
const schema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS requests (
    id           uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    created_at   timestamptz NOT NULL DEFAULT now(),
    request_type text NOT NULL,
    full_name    text,
    phone        text NOT NULL,
    quartier     text,
    message      text,
    info         jsonb,
    price        numeric,
    status       text NOT NULL DEFAULT 'new',
    note         text
);

CREATE INDEX IF NOT EXISTS idx_requests_created_at ON requests (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_requests_type_status ON requests (request_type, status);
`

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   apply the schema (idempotent)
  reset       drop the requests table and recreate it`)
	os.Exit(1)
}

func main() {
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")
	logging.Setup()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logging.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "":
	case "reset":
		if _, err := pool.Exec(ctx, `DROP TABLE IF EXISTS requests`); err != nil {
			logging.Fatal("drop failed", "error", err)
		}
		slog.Info("dropped table", "table", "requests")
	default:
		usage()
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		logging.Fatal("migration failed", "error", err)
	}
	slog.Info("schema applied")
}
