package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/moodmate/companion/internal/model/mood"
)

// exerciseRepository runs the shared contract against a live backend.
func exerciseRepository(t *testing.T, repo MoodRepository) {
	t.Helper()
	ctx := context.Background()

	ts := time.Now().UTC().Truncate(time.Millisecond)
	first := &mood.Entry{Mood: "integration-a", Journal: "first", Timestamp: ts}
	second := &mood.Entry{Mood: "integration-b", Timestamp: ts}
	require.NoError(t, repo.Insert(ctx, first))
	require.NoError(t, repo.Insert(ctx, second))
	require.NotEmpty(t, first.ID)

	entries, err := repo.List(ctx)
	require.NoError(t, err)

	var got []mood.Entry
	for _, e := range entries {
		if e.ID == first.ID || e.ID == second.ID {
			got = append(got, e)
		}
	}
	require.Len(t, got, 2)
	require.Equal(t, second.ID, got[0].ID)
	require.Equal(t, "first", got[1].Journal)
	require.True(t, got[1].Timestamp.Equal(ts))
}

func TestPostgresStorage_Integration(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	repo, err := NewPostgresStorage(context.Background(), dsn, nil)
	require.NoError(t, err)
	defer repo.Close()
	exerciseRepository(t, repo)
}

func TestMongoStorage_Integration(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	repo, err := NewMongoStorage(context.Background(), uri, "moodmate_test", "moodentries", nil)
	require.NoError(t, err)
	defer repo.Close()
	exerciseRepository(t, repo)
}
