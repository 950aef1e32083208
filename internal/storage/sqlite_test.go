package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/moodmate/companion/internal/model/mood"
)

func TestSQLiteStorage_InsertAndList(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "moods.db")

	s, err := NewSQLiteStorage(ctx, path, nil)
	require.NoError(t, err)
	require.Equal(t, path, s.Path())

	ts := time.Date(2024, 1, 1, 9, 30, 0, 123000000, time.UTC)
	first := &mood.Entry{Mood: "anxious", Journal: "exam", Timestamp: ts}
	second := &mood.Entry{Mood: "content", Timestamp: ts}
	third := &mood.Entry{Mood: "happy", Timestamp: ts.Add(24 * time.Hour)}
	for _, e := range []*mood.Entry{first, second, third} {
		require.NoError(t, s.Insert(ctx, e))
	}

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "happy", entries[0].Mood)
	require.Equal(t, "content", entries[1].Mood)
	require.Equal(t, "anxious", entries[2].Mood)
	require.Equal(t, "exam", entries[2].Journal)
	require.True(t, entries[2].Timestamp.Equal(ts))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStorage(ctx, path, nil)
	require.NoError(t, err)
	defer reopened.Close()
	entries, err = reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestSQLiteStorage_DuplicateID(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStorage(ctx, ":memory:", nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Insert(ctx, &mood.Entry{ID: "fixed", Mood: "sad", Timestamp: time.Now().UTC()}))
	require.Error(t, s.Insert(ctx, &mood.Entry{ID: "fixed", Mood: "sad", Timestamp: time.Now().UTC()}))
}

func TestSQLiteStorage_EmptyList(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStorage(ctx, ":memory:", nil)
	require.NoError(t, err)
	defer s.Close()

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}
