package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/sakura-comic/backend/internal/metrics"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when an insert violates a UNIQUE constraint.
	ErrConflict = errors.New("unique constraint violation")
)

type Database struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite opens (creating if needed) the database at path and applies the schema.
// Write transactions use BEGIN IMMEDIATE so concurrent writers wait on the busy
// timeout instead of failing on lock upgrade.
func NewSQLite(path string) (*Database, error) {
	sqlDB, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, err
	}
	d := &Database{db: sqlDB, now: func() time.Time { return time.Now().UTC() }}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return d, nil
}

func (d *Database) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS videos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		cover_url TEXT NOT NULL DEFAULT '',
		video_url TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		release_year INTEGER NOT NULL DEFAULT 0,
		views INTEGER NOT NULL DEFAULT 0,
		update_time DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_videos_update_time ON videos(update_time);
	CREATE INDEX IF NOT EXISTS idx_videos_category ON videos(category);

	CREATE TABLE IF NOT EXISTS comments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		video_id INTEGER NOT NULL,
		content TEXT NOT NULL,
		parent_id INTEGER,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (parent_id) REFERENCES comments(id)
	);
	CREATE INDEX IF NOT EXISTS idx_comments_video_parent ON comments(video_id, parent_id);
	CREATE INDEX IF NOT EXISTS idx_comments_parent ON comments(parent_id);

	CREATE TABLE IF NOT EXISTS collections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		video_id INTEGER NOT NULL,
		collected_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (video_id) REFERENCES videos(id),
		UNIQUE(user_id, video_id)
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

// withTx runs fn in a transaction, rolling back on any error.
func (d *Database) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// observe records the duration of op. Not-found and conflict results are expected
// outcomes and are not counted as errors.
func observe(op string, start time.Time, err error) {
	failed := err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrConflict)
	metrics.ObserveQuery(op, start, failed)
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

func (d *Database) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *Database) Close() error {
	return d.db.Close()
}

// DB returns the underlying sql.DB for use by other packages (e.g., tests)
func (d *Database) DB() *sql.DB {
	return d.db
}

// SetClock overrides the timestamp source used for created/updated columns.
func (d *Database) SetClock(now func() time.Time) {
	d.now = now
}
