package quiz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moodmate/companion/internal/analysis/trait"
	"github.com/moodmate/companion/internal/catalog"
)

func TestQuestionnaire(t *testing.T) {
	svc := NewService(catalog.MustLoad().Quiz)
	q := svc.Questionnaire()

	require.Len(t, q.Questions, 10)
	require.Len(t, q.Traits, 6)
	for _, question := range q.Questions {
		require.Len(t, question.Options, 5, question.ID)
	}
}

func TestScore(t *testing.T) {
	svc := NewService(catalog.MustLoad().Quiz)

	res, err := svc.Score(map[string]int{})
	require.NoError(t, err)
	for _, s := range res.Traits {
		require.Zero(t, s.Score, s.Trait)
	}

	_, err = svc.Score(map[string]int{"q1": 6})
	require.ErrorIs(t, err, trait.ErrInvalidAnswer)
}
