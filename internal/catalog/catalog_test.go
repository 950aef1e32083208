package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedContent(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Len(t, c.Chat.Rules, 8)
	assert.Equal(t, "greeting", c.Chat.Rules[0].ID)
	assert.Equal(t, "farewell", c.Chat.Rules[len(c.Chat.Rules)-1].ID)
	assert.Len(t, c.Quiz.Questions, 10)
	assert.Len(t, c.Quiz.Traits, 6)
	assert.Len(t, c.Checkin.Moods, 8)
	assert.Len(t, c.Avatar.Features, 7)
	assert.Len(t, c.Avatar.Colors, 14)
}

func TestReversedQuestionOptions(t *testing.T) {
	c := MustLoad()

	var q9 Question
	for _, q := range c.Quiz.Questions {
		if q.ID == "q9" {
			q9 = q
		}
	}
	require.Len(t, q9.Options, 5)
	assert.Equal(t, Option{Value: 5, Text: "Strongly Disagree"}, q9.Options[0])
	assert.Equal(t, Option{Value: 1, Text: "Strongly Agree"}, q9.Options[4])

	q1 := c.Quiz.Questions[0]
	assert.Equal(t, 1, q1.Options[0].Value)
	assert.Equal(t, 5, q1.Options[4].Value)
}

func TestFindMoodIgnoresCase(t *testing.T) {
	c := MustLoad()

	mood, ok := c.FindMood("  anxious ")
	require.True(t, ok)
	assert.Equal(t, "Anxious", mood.Label)
	assert.Equal(t, "negative", mood.Tone)

	_, ok = c.FindMood("ecstatic")
	assert.False(t, ok)
}

func TestSuggestionsGetPlaceholderImage(t *testing.T) {
	c := MustLoad()

	s, ok := c.FindSuggestion("a2")
	require.True(t, ok)
	assert.Equal(t, defaultImageURL, s.ImageURL)
	assert.Empty(t, s.Link)
}
