// Package sentiment tags journal text by counting lexicon hits.
package sentiment

import (
	"strings"

	"github.com/moodmate/companion/internal/catalog"
)

// Label is the tone assigned to a journal entry.
type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// Result carries the label, the hit counts behind it and the canned analysis text.
type Result struct {
	Sentiment    Label  `json:"sentiment"`
	Analysis     string `json:"analysis"`
	PositiveHits int    `json:"positiveHits"`
	NegativeHits int    `json:"negativeHits"`
}

// Classifier compares positive and negative lexicon hits.
type Classifier struct {
	positive []string
	negative []string
	analysis map[Label]string
}

// NewClassifier builds a classifier from the journal lexicon.
func NewClassifier(content catalog.JournalContent) *Classifier {
	analysis := make(map[Label]string, len(content.Analysis))
	for k, v := range content.Analysis {
		analysis[Label(k)] = v
	}
	return &Classifier{
		positive: lower(content.Positive),
		negative: lower(content.Negative),
		analysis: analysis,
	}
}

// Classify counts each lexicon word at most once. Equal counts, including zero, are neutral.
func (c *Classifier) Classify(text string) Result {
	normalized := strings.ToLower(text)
	pos := countHits(normalized, c.positive)
	neg := countHits(normalized, c.negative)

	label := Neutral
	switch {
	case pos > neg:
		label = Positive
	case neg > pos:
		label = Negative
	}

	return Result{
		Sentiment:    label,
		Analysis:     c.analysis[label],
		PositiveHits: pos,
		NegativeHits: neg,
	}
}

func countHits(text string, words []string) int {
	hits := 0
	for _, w := range words {
		if w != "" && strings.Contains(text, w) {
			hits++
		}
	}
	return hits
}

func lower(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(strings.TrimSpace(w))
	}
	return out
}
