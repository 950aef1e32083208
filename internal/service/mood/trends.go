package mood

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/moodmate/companion/internal/model/mood"
)

// Trends summarizes the stored history.
type Trends struct {
	Total         int            `json:"total"`
	Distribution  map[string]int `json:"distribution"`
	CurrentStreak int            `json:"currentStreak"`
	LongestStreak int            `json:"longestStreak"`
	LastEntryAt   *time.Time     `json:"lastEntryAt"`
}

// Trends computes the mood distribution and daily check-in streaks (UTC days).
func (s *Service) Trends(ctx context.Context) (Trends, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return Trends{}, err
	}
	return ComputeTrends(entries, s.now()), nil
}

// ComputeTrends is the pure part of Trends. The current streak only counts when the
// latest entry day is today or yesterday relative to now.
func ComputeTrends(entries []mood.Entry, now time.Time) Trends {
	t := Trends{Total: len(entries), Distribution: make(map[string]int)}
	if len(entries) == 0 {
		return t
	}

	days := make(map[time.Time]struct{})
	var last time.Time
	for _, e := range entries {
		if label := strings.ToLower(strings.TrimSpace(e.Mood)); label != "" {
			t.Distribution[label]++
		}
		days[utcDay(e.Timestamp)] = struct{}{}
		if e.Timestamp.After(last) {
			last = e.Timestamp
		}
	}
	lastCopy := last.UTC()
	t.LastEntryAt = &lastCopy

	sorted := make([]time.Time, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	run := 1
	t.LongestStreak = 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Sub(sorted[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > t.LongestStreak {
			t.LongestStreak = run
		}
	}

	today := utcDay(now)
	latest := sorted[len(sorted)-1]
	if latest.Equal(today) || latest.Equal(today.Add(-24*time.Hour)) {
		t.CurrentStreak = run
	}
	return t
}

func utcDay(ts time.Time) time.Time {
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
