// Package mood records mood entries and derives trends from them.
package mood

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/moodmate/companion/internal/model/mood"
	"github.com/moodmate/companion/internal/storage"
)

// Service adds and lists mood entries on top of a repository.
type Service struct {
	repo   storage.MoodRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wraps repo. A nil logger disables logging.
func NewService(repo storage.MoodRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Add stores one entry. A zero timestamp is replaced by the current time.
// Timestamps are kept at millisecond precision, the resolution clients send.
func (s *Service) Add(ctx context.Context, in mood.Input) (mood.Entry, error) {
	ts := in.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}

	entry := mood.Entry{
		Mood:      in.Mood,
		Journal:   in.Journal,
		Timestamp: ts.UTC().Truncate(time.Millisecond),
	}
	if err := s.repo.Insert(ctx, &entry); err != nil {
		return mood.Entry{}, fmt.Errorf("add mood entry: %w", err)
	}

	s.logger.Debug("mood entry saved", zap.String("id", entry.ID), zap.String("mood", entry.Mood))
	return entry, nil
}

// List returns every entry, newest first.
func (s *Service) List(ctx context.Context) ([]mood.Entry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	if entries == nil {
		entries = []mood.Entry{}
	}
	return entries, nil
}
