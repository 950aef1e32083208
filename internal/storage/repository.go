// Package storage persists mood entries. Every backend inserts one document per entry and
// lists the whole collection newest first.
package storage

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/moodmate/companion/internal/model/mood"
)

// ErrUnknownDriver is returned by Open for an unsupported STORAGE_DRIVER.
var ErrUnknownDriver = errors.New("storage: unknown driver")

// MoodRepository stores mood entries.
type MoodRepository interface {
	// Insert stores the entry, assigning entry.ID when empty.
	Insert(ctx context.Context, entry *mood.Entry) error
	// List returns every entry ordered by timestamp descending, newest insert first on ties.
	List(ctx context.Context) ([]mood.Entry, error)
	Close() error
}

// newEntryID returns a time-ordered id so that equal timestamps still sort by insertion.
func newEntryID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func sortNewestFirst(entries []mood.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		}
		return entries[i].ID > entries[j].ID
	})
}
