package storage

import (
	"context"
	"sync"

	"github.com/moodmate/companion/internal/model/mood"
)

// MemoryStorage keeps entries in process memory.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries []mood.Entry
}

// NewMemoryStorage returns an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make([]mood.Entry, 0, 32)}
}

func (s *MemoryStorage) Insert(_ context.Context, entry *mood.Entry) error {
	if entry.ID == "" {
		id, err := newEntryID()
		if err != nil {
			return err
		}
		entry.ID = id
	}

	s.mu.Lock()
	s.entries = append(s.entries, *entry)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStorage) List(_ context.Context) ([]mood.Entry, error) {
	s.mu.RLock()
	out := make([]mood.Entry, len(s.entries))
	copy(out, s.entries)
	s.mu.RUnlock()

	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryStorage) load(entries []mood.Entry) {
	s.mu.Lock()
	s.entries = append(s.entries[:0], entries...)
	s.mu.Unlock()
}

func (s *MemoryStorage) Close() error { return nil }

var _ MoodRepository = (*MemoryStorage)(nil)
