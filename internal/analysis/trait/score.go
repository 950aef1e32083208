// Package trait turns Likert quiz answers into 0-100 trait scores.
package trait

import (
	"errors"
	"fmt"
	"strings"

	"github.com/moodmate/companion/internal/catalog"
)

// ErrInvalidAnswer is returned for answer values outside the Likert range.
var ErrInvalidAnswer = errors.New("answer must be between 1 and 5, or 0 to skip")

const (
	minValue = 1
	maxValue = 5
	// scale maps a 1-5 average onto the 0-100 display range.
	scale = 20
)

// Score is the result for one trait.
type Score struct {
	Trait       string  `json:"trait"`
	Label       string  `json:"label"`
	Color       string  `json:"color"`
	Score       float64 `json:"score"`
	Answered    int     `json:"answered"`
	Level       int     `json:"level"`
	Description string  `json:"description"`
}

// Result lists trait scores in catalog order plus a profile summary.
type Result struct {
	Traits  []Score `json:"traits"`
	Summary string  `json:"summary"`
}

// ByTrait indexes the scores by trait id.
func (r Result) ByTrait() map[string]float64 {
	out := make(map[string]float64, len(r.Traits))
	for _, s := range r.Traits {
		out[s.Trait] = s.Score
	}
	return out
}

// Compute averages the answered values of every trait and scales by 20.
// A zero value means the question was skipped; unknown question ids are ignored.
func Compute(quiz catalog.QuizContent, answers map[string]int) (Result, error) {
	for _, q := range quiz.Questions {
		v := answers[q.ID]
		if v == 0 {
			continue
		}
		if v < minValue || v > maxValue {
			return Result{}, fmt.Errorf("question %s: %w", q.ID, ErrInvalidAnswer)
		}
	}

	type tally struct{ sum, count int }
	tallies := make(map[string]*tally, len(quiz.Traits))
	for _, t := range quiz.Traits {
		tallies[t.ID] = &tally{}
	}

	for _, q := range quiz.Questions {
		v, ok := answers[q.ID]
		if !ok || v == 0 {
			continue
		}
		if t, ok := tallies[q.Trait]; ok {
			t.sum += v
			t.count++
		}
	}

	result := Result{Traits: make([]Score, 0, len(quiz.Traits))}
	for _, t := range quiz.Traits {
		tl := tallies[t.ID]
		score := 0.0
		if tl.count > 0 {
			score = float64(tl.sum) / float64(tl.count) * scale
		}
		level := Level(score)
		description := ""
		if level < len(t.Descriptions) {
			description = t.Descriptions[level]
		}
		result.Traits = append(result.Traits, Score{
			Trait:       t.ID,
			Label:       t.Label,
			Color:       t.Color,
			Score:       score,
			Answered:    tl.count,
			Level:       level,
			Description: description,
		})
	}

	result.Summary = Summary(result.ByTrait())
	return result, nil
}

// Level buckets a score: above 60 is high (2), above 40 medium (1), otherwise low (0).
func Level(score float64) int {
	switch {
	case score > 60:
		return 2
	case score > 40:
		return 1
	default:
		return 0
	}
}

// Summary builds the profile sentence from openness, extraversion and anxiety.
func Summary(scores map[string]float64) string {
	var b strings.Builder
	b.WriteString("Based on your profile, you appear to be ")

	switch openness := scores["openness"]; {
	case openness > 60:
		b.WriteString("creative and open to new experiences")
	case openness < 40:
		b.WriteString("practical and conventional")
	default:
		b.WriteString("balanced between tradition and novelty")
	}

	b.WriteString(". You tend to be ")
	switch extraversion := scores["extraversion"]; {
	case extraversion > 60:
		b.WriteString("outgoing and social")
	case extraversion < 40:
		b.WriteString("introspective and reserved")
	default:
		b.WriteString("adaptable in social situations")
	}
	b.WriteString(".")

	switch anxiety := scores["anxiety"]; {
	case anxiety > 60:
		b.WriteString(" Your anxiety levels suggest you might benefit from relaxation techniques and mindfulness practices.")
	case anxiety > 40:
		b.WriteString(" You experience moderate anxiety which is normal, but practicing mindfulness could still be beneficial.")
	default:
		b.WriteString(" You seem to manage stress well, which is a great strength.")
	}

	return b.String()
}
