package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/moodmate/companion/internal/model/mood"
)

func TestFileStorage_MissingFileStartsEmpty(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "nested", "moods.json")
	s, err := NewFileStorage(path, nil)
	require.NoError(t, err)

	entries, err := s.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, entries)
	require.NoError(t, s.Close())
}

func TestFileStorage_CloseFlushesAndReloads(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "moods.json")
	ctx := context.Background()
	ts := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)

	s, err := NewFileStorage(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Insert(ctx, &mood.Entry{Mood: "happy", Journal: "walk", Timestamp: ts}))
	require.NoError(t, s.Insert(ctx, &mood.Entry{Mood: "tired", Timestamp: ts.Add(time.Minute)}))
	require.NoError(t, s.Close())
	// second close is a no-op
	require.NoError(t, s.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk []map[string]any
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	require.Len(t, onDisk, 2)
	require.Contains(t, onDisk[0], "_id")

	reopened, err := NewFileStorage(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "tired", entries[0].Mood)
	require.Equal(t, "walk", entries[1].Journal)
	require.True(t, entries[1].Timestamp.Equal(ts))
}

func TestFileStorage_DebouncedSave(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "moods.json")
	s, err := NewFileStorage(path, nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Insert(context.Background(), &mood.Entry{Mood: "calm", Timestamp: time.Now().UTC()}))

	require.Eventually(t, func() bool {
		raw, err := os.ReadFile(path)
		return err == nil && len(raw) > 0
	}, 3*time.Second, 20*time.Millisecond)
}

func TestFileStorage_EmptyFileIsEmptyStore(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "moods.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s, err := NewFileStorage(path, nil)
	require.NoError(t, err)
	defer s.Close()

	entries, err := s.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestFileStorage_CorruptFile(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "moods.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStorage(path, nil)
	require.Error(t, err)
}
