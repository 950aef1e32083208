package suggestion

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moodmate/companion/internal/catalog"
)

func TestList(t *testing.T) {
	svc := NewService(catalog.MustLoad().Suggestions)

	all, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, c := range all {
		require.Len(t, c.Items, 3, c.ID)
		for _, item := range c.Items {
			require.NotEmpty(t, item.ImageURL)
		}
	}

	music, err := svc.List(" Music ")
	require.NoError(t, err)
	require.Len(t, music, 1)
	require.Equal(t, "Listen", music[0].Action)

	_, err = svc.List("podcasts")
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestToggleLike(t *testing.T) {
	svc := NewService(catalog.MustLoad().Suggestions)

	liked, err := svc.ToggleLike("v2")
	require.NoError(t, err)
	require.True(t, liked)

	videos, err := svc.List("videos")
	require.NoError(t, err)
	require.True(t, videos[0].Items[1].Liked)
	require.False(t, videos[0].Items[0].Liked)

	liked, err = svc.ToggleLike("v2")
	require.NoError(t, err)
	require.False(t, liked)

	_, err = svc.ToggleLike("zz")
	require.ErrorIs(t, err, ErrSuggestionNotFound)
}
