// Package journal keeps journal entries and tags each one with a keyword sentiment.
package journal

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/moodmate/companion/internal/analysis/sentiment"
	"github.com/moodmate/companion/internal/catalog"
	"github.com/moodmate/companion/internal/model/journal"
)

var (
	ErrEmptyContent  = errors.New("journal content is required")
	ErrEntryNotFound = errors.New("journal entry not found")
)

// Service stores entries in memory.
type Service struct {
	mu         sync.RWMutex
	entries    map[string]journal.Entry
	classifier *sentiment.Classifier
	delay      time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewService builds the service. delay simulates analysis time before an entry is saved.
func NewService(content catalog.JournalContent, delay time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		entries:    make(map[string]journal.Entry),
		classifier: sentiment.NewClassifier(content),
		delay:      delay,
		logger:     logger,
		now:        time.Now,
	}
}

// Analyze classifies text without storing it.
func (s *Service) Analyze(text string) (sentiment.Result, error) {
	if strings.TrimSpace(text) == "" {
		return sentiment.Result{}, ErrEmptyContent
	}
	return s.classifier.Classify(text), nil
}

// Create analyzes and stores a new entry after the analysis delay.
func (s *Service) Create(ctx context.Context, content string) (journal.Entry, error) {
	result, err := s.Analyze(content)
	if err != nil {
		return journal.Entry{}, err
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return journal.Entry{}, ctx.Err()
		case <-timer.C:
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return journal.Entry{}, err
	}

	entry := journal.Entry{
		ID:        id.String(),
		Content:   strings.TrimSpace(content),
		Sentiment: string(result.Sentiment),
		Analysis:  result.Analysis,
		Date:      s.now().UTC(),
	}

	s.mu.Lock()
	s.entries[entry.ID] = entry
	s.mu.Unlock()

	s.logger.Debug("journal entry saved", zap.String("id", entry.ID), zap.String("sentiment", entry.Sentiment))
	return entry, nil
}

// List returns all entries, newest first. Entries sharing a date keep insertion order, newest first.
func (s *Service) List(_ context.Context) []journal.Entry {
	s.mu.RLock()
	out := make([]journal.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// Delete removes an entry.
func (s *Service) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return ErrEntryNotFound
	}
	delete(s.entries, id)
	return nil
}
