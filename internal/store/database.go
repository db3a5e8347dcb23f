package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Database is an optional Postgres mirror of H2H.json
type Database struct {
	conn *sql.DB
}

// NewDatabase opens a Postgres connection and fails unless it answers a ping
func NewDatabase(ctx context.Context, dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A sync run needs one connection at a time
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	database := NewFromDB(db)
	if err := database.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return database, nil
}

// NewFromDB wraps an already open *sql.DB
func NewFromDB(conn *sql.DB) *Database {
	return &Database{conn: conn}
}

// Close closes the database connection
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries
func (db *Database) DB() *sql.DB {
	return db.conn
}

const schema = `
	CREATE TABLE IF NOT EXISTS h2h_games (
		id         BIGSERIAL PRIMARY KEY,
		season     INTEGER NOT NULL,
		week       INTEGER NOT NULL,
		game_date  DATE NOT NULL,
		team_a     TEXT NOT NULL,
		team_b     TEXT NOT NULL,
		score_a    NUMERIC(8,2) NOT NULL,
		score_b    NUMERIC(8,2) NOT NULL,
		round      TEXT NOT NULL DEFAULT '',
		game_type  TEXT NOT NULL,
		team_low   TEXT NOT NULL,
		team_high  TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (season, week, team_low, team_high)
	)
`

// EnsureSchema creates the h2h_games table if it does not exist
func (db *Database) EnsureSchema(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create h2h_games: %w", err)
	}
	return nil
}

// HealthCheck performs a health check on the database
func (db *Database) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return db.conn.PingContext(ctx)
}
