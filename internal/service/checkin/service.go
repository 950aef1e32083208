// Package checkin handles the guided mood check-in and records it as a mood entry.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/moodmate/companion/internal/catalog"
	"github.com/moodmate/companion/internal/model/mood"
)

var ErrUnknownMood = errors.New("unknown mood")

// Recorder persists the check-in. *mood.Service from the mood service package satisfies it.
type Recorder interface {
	Add(ctx context.Context, in mood.Input) (mood.Entry, error)
}

// Result is returned after a successful check-in.
type Result struct {
	Mood     catalog.Mood `json:"mood"`
	Feedback string       `json:"feedback"`
	Entry    mood.Entry   `json:"entry"`
}

type Service struct {
	cat      *catalog.Catalog
	recorder Recorder
}

func NewService(cat *catalog.Catalog, recorder Recorder) *Service {
	return &Service{cat: cat, recorder: recorder}
}

// Moods lists the selectable moods.
func (s *Service) Moods() []catalog.Mood {
	return s.cat.Checkin.Moods
}

// Feedback returns the sentence for a mood's tone.
func (s *Service) Feedback(m catalog.Mood) string {
	return s.cat.Checkin.Feedback[m.Tone]
}

// CheckIn records the selected mood with optional notes.
func (s *Service) CheckIn(ctx context.Context, label, notes string) (Result, error) {
	m, ok := s.cat.FindMood(label)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownMood, label)
	}

	entry, err := s.recorder.Add(ctx, mood.Input{
		Mood:    strings.ToLower(m.Label),
		Journal: strings.TrimSpace(notes),
	})
	if err != nil {
		return Result{}, fmt.Errorf("record check-in: %w", err)
	}

	return Result{Mood: m, Feedback: s.Feedback(m), Entry: entry}, nil
}
