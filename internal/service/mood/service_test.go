package mood

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/moodmate/companion/internal/model/mood"
	"github.com/moodmate/companion/internal/storage"
)

type failingRepo struct {
	storage.MoodRepository
	err error
}

func (f failingRepo) Insert(context.Context, *mood.Entry) error  { return f.err }
func (f failingRepo) List(context.Context) ([]mood.Entry, error) { return nil, f.err }

func newTestService(now time.Time) *Service {
	svc := NewService(storage.NewMemoryStorage(), nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestParseInput(t *testing.T) {
	ts := time.Date(2024, 4, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		body    map[string]any
		want    mood.Input
		wantErr string
	}{
		{name: "empty object", body: map[string]any{}, want: mood.Input{}},
		{name: "strings", body: map[string]any{"mood": "Happy", "journal": "sunny"}, want: mood.Input{Mood: "Happy", Journal: "sunny"}},
		{name: "extra fields dropped", body: map[string]any{"mood": "ok", "color": "blue"}, want: mood.Input{Mood: "ok"}},
		{name: "number cast", body: map[string]any{"mood": float64(7)}, want: mood.Input{Mood: "7"}},
		{name: "bool cast", body: map[string]any{"journal": true}, want: mood.Input{Journal: "true"}},
		{name: "null ignored", body: map[string]any{"mood": nil}, want: mood.Input{}},
		{name: "rfc3339 timestamp", body: map[string]any{"timestamp": "2024-04-01T10:30:00+02:00"}, want: mood.Input{Timestamp: ts}},
		{name: "unix ms timestamp", body: map[string]any{"timestamp": float64(ts.UnixMilli())}, want: mood.Input{Timestamp: ts}},
		{name: "object mood", body: map[string]any{"mood": map[string]any{"a": 1.0}}, wantErr: "mood"},
		{name: "array journal", body: map[string]any{"journal": []any{"x"}}, wantErr: "journal"},
		{name: "bad timestamp", body: map[string]any{"timestamp": "yesterday"}, wantErr: "timestamp"},
		{name: "bool timestamp", body: map[string]any{"timestamp": true}, wantErr: "timestamp"},
		{name: "timestamp before year 0", body: map[string]any{"timestamp": float64(-1e14)}, wantErr: "timestamp"},
		{name: "timestamp after year 9999", body: map[string]any{"timestamp": "300000000000000"}, wantErr: "timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInput(tt.body)
			if tt.wantErr != "" {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				require.Equal(t, tt.wantErr, vErr.Field)
				require.Contains(t, err.Error(), "validation failed")
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected input (-want +got):\n%s", diff)
			}
		})
	}
}

func TestServiceAddDefaultsTimestamp(t *testing.T) {
	now := time.Date(2024, 4, 1, 8, 30, 0, 123456789, time.UTC)
	svc := newTestService(now)

	entry, err := svc.Add(context.Background(), mood.Input{Mood: "calm"})
	require.NoError(t, err)
	require.NotEmpty(t, entry.ID)
	require.Equal(t, now.Truncate(time.Millisecond), entry.Timestamp)
}

func TestServiceAddKeepsClientTimestamp(t *testing.T) {
	svc := newTestService(time.Now())
	ts := time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC)

	entry, err := svc.Add(context.Background(), mood.Input{Mood: "tired", Timestamp: ts})
	require.NoError(t, err)
	require.Equal(t, ts, entry.Timestamp)
}

func TestServiceListNewestFirst(t *testing.T) {
	svc := newTestService(time.Now())
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Add(ctx, mood.Input{Mood: "a", Timestamp: base})
	require.NoError(t, err)
	_, err = svc.Add(ctx, mood.Input{Mood: "b", Timestamp: base.Add(2 * time.Hour)})
	require.NoError(t, err)
	_, err = svc.Add(ctx, mood.Input{Mood: "c", Timestamp: base.Add(time.Hour)})
	require.NoError(t, err)

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	got := []string{entries[0].Mood, entries[1].Mood, entries[2].Mood}
	require.Equal(t, []string{"b", "c", "a"}, got)
}

func TestServiceStorageErrors(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(failingRepo{err: boom}, nil)

	_, err := svc.Add(context.Background(), mood.Input{Mood: "x"})
	require.ErrorIs(t, err, boom)

	_, err = svc.List(context.Background())
	require.ErrorIs(t, err, boom)

	_, err = svc.Trends(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestComputeTrends(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2024, 3, d, h, 0, 0, 0, time.UTC) }
	entries := []mood.Entry{
		{Mood: "Happy", Timestamp: day(10, 9)},
		{Mood: "happy", Timestamp: day(10, 20)},
		{Mood: "Sad", Timestamp: day(9, 8)},
		{Mood: "calm", Timestamp: day(5, 8)},
		{Mood: "calm", Timestamp: day(4, 8)},
		{Mood: "calm", Timestamp: day(3, 8)},
		{Mood: "", Timestamp: day(1, 8)},
	}

	got := ComputeTrends(entries, day(11, 12))
	require.Equal(t, 7, got.Total)
	require.Equal(t, map[string]int{"happy": 2, "sad": 1, "calm": 3}, got.Distribution)
	require.Equal(t, 3, got.LongestStreak)
	require.Equal(t, 2, got.CurrentStreak)
	require.NotNil(t, got.LastEntryAt)
	require.Equal(t, day(10, 20), *got.LastEntryAt)

	stale := ComputeTrends(entries, day(12, 0))
	require.Equal(t, 0, stale.CurrentStreak)
	require.Equal(t, 3, stale.LongestStreak)
}

func TestComputeTrendsEmpty(t *testing.T) {
	got := ComputeTrends(nil, time.Now())
	require.Equal(t, 0, got.Total)
	require.NotNil(t, got.Distribution)
	require.Nil(t, got.LastEntryAt)
}
