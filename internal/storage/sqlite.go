package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/moodmate/companion/internal/model/mood"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS mood_entries (
	id TEXT PRIMARY KEY,
	mood TEXT NOT NULL DEFAULT '',
	journal TEXT NOT NULL DEFAULT '',
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mood_entries_timestamp ON mood_entries(timestamp DESC, id DESC);
`

// SQLiteStorage stores entries in a local SQLite file. Timestamps are kept as Unix nanoseconds.
type SQLiteStorage struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// NewSQLiteStorage opens (or creates) the database file and its schema.
func NewSQLiteStorage(ctx context.Context, path string, logger *zap.Logger) (*SQLiteStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db, path: path, logger: logger}, nil
}

func (s *SQLiteStorage) Insert(ctx context.Context, entry *mood.Entry) error {
	if entry.ID == "" {
		id, err := newEntryID()
		if err != nil {
			return err
		}
		entry.ID = id
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mood_entries (id, mood, journal, timestamp) VALUES (?, ?, ?, ?)`,
		entry.ID, entry.Mood, entry.Journal, entry.Timestamp.UnixNano())
	if err != nil {
		s.logger.Error("failed to insert mood entry", zap.Error(err))
		return fmt.Errorf("failed to insert mood entry: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) List(ctx context.Context) ([]mood.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mood, journal, timestamp FROM mood_entries ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	defer rows.Close()

	entries := make([]mood.Entry, 0)
	for rows.Next() {
		var (
			e  mood.Entry
			ts int64
		)
		if err := rows.Scan(&e.ID, &e.Mood, &e.Journal, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		e.Timestamp = time.Unix(0, ts).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mood entries: %w", err)
	}
	return entries, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

var _ MoodRepository = (*SQLiteStorage)(nil)
