package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
	log zerolog.Logger
}

func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	var log zerolog.Logger
	if logger != nil {
		log = logger.With().Str("component", "database").Logger()
	}
	log.Info().Str("path", path).Msg("database initialized")

	return &DB{DB: db, log: log}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS rooms (
            id INTEGER PRIMARY KEY,
            name TEXT NOT NULL,
            name_ko TEXT NOT NULL DEFAULT '',
            name_en TEXT NOT NULL DEFAULT '',
            description TEXT NOT NULL DEFAULT '',
            description_ko TEXT NOT NULL DEFAULT '',
            description_en TEXT NOT NULL DEFAULT '',
            price_per_night INTEGER NOT NULL,
            capacity INTEGER NOT NULL,
            bed_type TEXT NOT NULL DEFAULT '',
            amenities TEXT NOT NULL DEFAULT '[]',
            images TEXT NOT NULL DEFAULT '[]',
            is_bookable BOOLEAN NOT NULL DEFAULT 1,
            sort_order INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE TABLE IF NOT EXISTS reservations (
            id TEXT PRIMARY KEY,
            room_id INTEGER NOT NULL,
            room_name TEXT NOT NULL,
            guest_name TEXT NOT NULL,
            guest_email TEXT NOT NULL,
            guest_phone TEXT NOT NULL DEFAULT '',
            guest_country TEXT NOT NULL DEFAULT '',
            check_in TEXT NOT NULL,
            check_out TEXT NOT NULL,
            adults INTEGER NOT NULL DEFAULT 1,
            children INTEGER NOT NULL DEFAULT 0,
            total_price INTEGER NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            special_request TEXT NOT NULL DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE TABLE IF NOT EXISTS blocked_dates (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            room_id INTEGER NOT NULL,
            date TEXT NOT NULL,
            reason TEXT NOT NULL DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            UNIQUE(room_id, date)
        )`,

		`CREATE TABLE IF NOT EXISTS sync_queue (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            task_type TEXT NOT NULL,
            reservation_id TEXT NOT NULL,
            payload TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'pending',
            retry_count INTEGER NOT NULL DEFAULT 0,
            last_error TEXT NOT NULL DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            processed_at DATETIME,
            next_retry_at DATETIME
        )`,

		`CREATE INDEX IF NOT EXISTS idx_reservations_status ON reservations(status)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_room_id ON reservations(room_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_check_in ON reservations(check_in)`,
		`CREATE INDEX IF NOT EXISTS idx_blocked_dates_date ON blocked_dates(date)`,
		`CREATE INDEX IF NOT EXISTS idx_sync_queue_status ON sync_queue(status)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}
