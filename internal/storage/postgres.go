package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/moodmate/companion/internal/model/mood"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS mood_entries (
	id TEXT PRIMARY KEY,
	mood TEXT NOT NULL DEFAULT '',
	journal TEXT NOT NULL DEFAULT '',
	timestamp TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_mood_entries_timestamp ON mood_entries(timestamp DESC, id DESC);
`

// PostgresStorage stores entries in a single postgres table.
type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresStorage connects, pings and creates the table when missing.
func NewPostgresStorage(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create mood_entries table: %w", err)
	}

	logger.Info("postgres mood storage ready")
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Insert(ctx context.Context, entry *mood.Entry) error {
	if entry.ID == "" {
		id, err := newEntryID()
		if err != nil {
			return err
		}
		entry.ID = id
	}

	_, err := p.pool.Exec(ctx,
		`INSERT INTO mood_entries (id, mood, journal, timestamp) VALUES ($1, $2, $3, $4)`,
		entry.ID, entry.Mood, entry.Journal, entry.Timestamp)
	if err != nil {
		p.logger.Error("failed to insert mood entry", zap.Error(err))
		return fmt.Errorf("failed to insert mood entry: %w", err)
	}
	return nil
}

func (p *PostgresStorage) List(ctx context.Context) ([]mood.Entry, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, mood, journal, timestamp FROM mood_entries ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		p.logger.Error("failed to query mood entries", zap.Error(err))
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	defer rows.Close()

	entries := make([]mood.Entry, 0)
	for rows.Next() {
		var e mood.Entry
		if err := rows.Scan(&e.ID, &e.Mood, &e.Journal, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		e.Timestamp = e.Timestamp.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mood entries: %w", err)
	}
	return entries, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

var _ MoodRepository = (*PostgresStorage)(nil)
