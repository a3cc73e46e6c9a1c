package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/example/recallbot/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the configured database, applies pool settings and creates the schema.
func Connect(cfg config.DBConfig) (*sqlx.DB, error) {
	if cfg.Driver == "sqlite3" && cfg.DSN != ":memory:" {
		if dir := filepath.Dir(cfg.DSN); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	}

	db, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed open db connect: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifeTime)
	if cfg.Driver == "sqlite3" {
		// SQLite doesn't support multiple writers, and each :memory: connection is its own database.
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed db ping: %w", err)
	}

	if err := initializeSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS words (
		word TEXT PRIMARY KEY,
		meaning TEXT NOT NULL,
		pronunciation TEXT NOT NULL DEFAULT '',
		example TEXT NOT NULL DEFAULT '',
		translation TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		telegram_id INTEGER PRIMARY KEY,
		username TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL DEFAULT '',
		notification_enabled BOOLEAN NOT NULL DEFAULT true,
		notification_hour INTEGER NOT NULL DEFAULT 9,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_progress (
		user_id INTEGER NOT NULL,
		word TEXT NOT NULL,
		state TEXT NOT NULL,
		stability REAL NOT NULL,
		difficulty REAL NOT NULL,
		retrievability REAL NOT NULL,
		elapsed_days INTEGER NOT NULL,
		scheduled_days INTEGER NOT NULL,
		reps INTEGER NOT NULL,
		lapses INTEGER NOT NULL,
		last_review INTEGER NOT NULL,
		due INTEGER NOT NULL,
		last_rating TEXT,
		correct_count INTEGER NOT NULL,
		wrong_count INTEGER NOT NULL,
		total_study_time_sec REAL NOT NULL,
		PRIMARY KEY (user_id, word)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_progress_due ON user_progress (user_id, due)`,
	`CREATE TABLE IF NOT EXISTS study_logs (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		word TEXT NOT NULL,
		reviewed_at INTEGER NOT NULL,
		rating TEXT NOT NULL,
		time_spent_sec REAL NOT NULL,
		state TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_study_logs_user_time ON study_logs (user_id, reviewed_at)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS words (
		word TEXT PRIMARY KEY,
		meaning TEXT NOT NULL,
		pronunciation TEXT NOT NULL DEFAULT '',
		example TEXT NOT NULL DEFAULT '',
		translation TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		telegram_id BIGINT PRIMARY KEY,
		username TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL DEFAULT '',
		notification_enabled BOOLEAN NOT NULL DEFAULT true,
		notification_hour INTEGER NOT NULL DEFAULT 9,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_progress (
		user_id BIGINT NOT NULL,
		word TEXT NOT NULL,
		state TEXT NOT NULL,
		stability DOUBLE PRECISION NOT NULL,
		difficulty DOUBLE PRECISION NOT NULL,
		retrievability DOUBLE PRECISION NOT NULL,
		elapsed_days INTEGER NOT NULL,
		scheduled_days INTEGER NOT NULL,
		reps INTEGER NOT NULL,
		lapses INTEGER NOT NULL,
		last_review BIGINT NOT NULL,
		due BIGINT NOT NULL,
		last_rating TEXT,
		correct_count INTEGER NOT NULL,
		wrong_count INTEGER NOT NULL,
		total_study_time_sec DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (user_id, word)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_progress_due ON user_progress (user_id, due)`,
	`CREATE TABLE IF NOT EXISTS study_logs (
		id TEXT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		word TEXT NOT NULL,
		reviewed_at BIGINT NOT NULL,
		rating TEXT NOT NULL,
		time_spent_sec DOUBLE PRECISION NOT NULL,
		state TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_study_logs_user_time ON study_logs (user_id, reviewed_at)`,
}

// initializeSchema creates necessary tables if they don't exist.
func initializeSchema(ctx context.Context, db *sqlx.DB) error {
	schema := sqliteSchema
	if db.DriverName() == "postgres" {
		schema = postgresSchema
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
