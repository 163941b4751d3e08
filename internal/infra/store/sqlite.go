package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/vitalog/vita/internal/domain"
)

// SQLiteKV is the durable backing store: a SQLite database in WAL mode
// holding the state blob in a KV table and the activity history in an
// append-only events table. Write-then-read consistency holds because every
// write commits before returning.
type SQLiteKV struct {
	db *sql.DB
}

// OpenSQLite creates or opens the database at dir/state.db.
func OpenSQLite(dir string) (*SQLiteKV, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	k := &SQLiteKV{db: db}
	if err := k.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return k, nil
}

// Close cleanly shuts down the database.
func (k *SQLiteKV) Close() error {
	return k.db.Close()
}

func (k *SQLiteKV) migrate() error {
	if _, err := k.db.Exec(`CREATE TABLE IF NOT EXISTS app_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		return err
	}
	_, err := k.db.Exec(`CREATE TABLE IF NOT EXISTS events (
		id          TEXT PRIMARY KEY,
		domain      TEXT NOT NULL,
		value       REAL NOT NULL,
		category    TEXT NOT NULL,
		occurred_at TEXT NOT NULL
	)`)
	return err
}

// Get retrieves a value. ok is false when the key has never been written.
func (k *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := k.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set upserts a value.
func (k *SQLiteKV) Set(ctx context.Context, key, value string) error {
	_, err := k.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// AppendEvent records one activity event in the history table. Event IDs are
// the primary key, so a replayed append is a no-op.
func (k *SQLiteKV) AppendEvent(ctx context.Context, e domain.ActivityEvent) error {
	_, err := k.db.ExecContext(ctx,
		`INSERT INTO events (id, domain, value, category, occurred_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		e.ID, string(e.Domain), e.Value, e.Category,
		e.OccurredAt.Format(time.RFC3339Nano),
	)
	return err
}

// Events returns the full activity history in occurrence order. Rows with an
// unparseable timestamp are skipped and logged, never fatal.
func (k *SQLiteKV) Events(ctx context.Context) ([]domain.ActivityEvent, error) {
	rows, err := k.db.QueryContext(ctx,
		`SELECT id, domain, value, category, occurred_at FROM events ORDER BY occurred_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.ActivityEvent
	for rows.Next() {
		var e domain.ActivityEvent
		var dom, at string
		if err := rows.Scan(&e.ID, &dom, &e.Value, &e.Category, &at); err != nil {
			return nil, err
		}
		e.Domain = domain.ActivityDomain(dom)
		e.OccurredAt, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			log.Printf("store: dropping event %q: bad timestamp %q", e.ID, at)
			continue
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
