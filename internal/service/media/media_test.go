package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeTrack struct{ stopped int }

func (f *fakeTrack) Stop() { f.stopped++ }

func granted(track *fakeTrack) Acquirer {
	return func(context.Context) (Track, error) { return track, nil }
}

func failing(err error) Acquirer {
	return func(context.Context) (Track, error) { return nil, err }
}

func TestToggleOnOffReleasesTrack(t *testing.T) {
	banners := NewBanners(5 * time.Second)
	toggle := NewToggle(Camera, banners)
	track := &fakeTrack{}

	on, err := toggle.Toggle(context.Background(), granted(track))
	require.NoError(t, err)
	require.True(t, on)
	require.True(t, toggle.On())
	require.Same(t, track, toggle.Track())

	on, err = toggle.Toggle(context.Background(), granted(&fakeTrack{}))
	require.NoError(t, err)
	require.False(t, on)
	require.False(t, toggle.On())
	require.Equal(t, 1, track.stopped)
}

func TestToggleDeniedStaysOff(t *testing.T) {
	banners := NewBanners(5 * time.Second)
	toggle := NewToggle(Microphone, banners)

	on, err := toggle.Toggle(context.Background(), failing(FromBrowserError("NotAllowedError")))
	require.Error(t, err)
	require.False(t, on)
	require.False(t, toggle.On())

	banner, ok := banners.Current()
	require.True(t, ok)
	require.Equal(t, "Microphone access denied. Please check your browser permissions.", banner.Message)
}

func TestToggleClose(t *testing.T) {
	toggle := NewToggle(Camera, nil)
	track := &fakeTrack{}
	_, err := toggle.Toggle(context.Background(), granted(track))
	require.NoError(t, err)

	toggle.Close()
	toggle.Close()
	require.Equal(t, 1, track.stopped)
	require.False(t, toggle.On())
}

func TestBannerMessage(t *testing.T) {
	tests := []struct {
		device Device
		err    error
		want   string
	}{
		{Camera, FromBrowserError("NotAllowedError"), "Could not access camera. Please check your permissions."},
		{Camera, FromBrowserError("NotFoundError"), "Camera is not supported on this device or browser."},
		{Microphone, FromBrowserError("NotSupportedError"), "Speech recognition is not supported in your browser. Please use Chrome, Edge, or Safari."},
		{Microphone, FromBrowserError("TimeoutError"), "Listening timed out. Please try again."},
		{Camera, FromBrowserError("NetworkError"), "Network error. Please check your internet connection."},
		{Microphone, errors.New("boom"), "Could not access microphone. Please check your permissions."},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, BannerMessage(tt.device, tt.err))
	}
}

func TestBannersExpire(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	banners := NewBanners(5 * time.Second)
	banners.now = func() time.Time { return now }

	banners.Show("hello")
	_, ok := banners.Current()
	require.True(t, ok)

	now = now.Add(5 * time.Second)
	_, ok = banners.Current()
	require.False(t, ok)

	banners.Show("again")
	banners.Clear()
	_, ok = banners.Current()
	require.False(t, ok)
}

func TestRecognitionNoSpeechRetries(t *testing.T) {
	banners := NewBanners(time.Minute)
	rec := NewRecognition(banners)
	rec.Start()

	first := rec.Error(CodeNoSpeech)
	require.True(t, first.Retry)
	require.Equal(t, "I didn't hear anything. Retrying... (1/3)", first.Message)

	second := rec.Error(CodeNoSpeech)
	require.True(t, second.Retry)
	require.Equal(t, "I didn't hear anything. Retrying... (2/3)", second.Message)
	require.True(t, rec.Listening())

	third := rec.Error(CodeNoSpeech)
	require.False(t, third.Retry)
	require.Empty(t, third.Message)
	require.False(t, rec.Listening())

	// the count resets after giving up
	rec.Start()
	require.Equal(t, "I didn't hear anything. Retrying... (1/3)", rec.Error(CodeNoSpeech).Message)
}

func TestRecognitionErrors(t *testing.T) {
	banners := NewBanners(time.Minute)
	rec := NewRecognition(banners)

	rec.Start()
	banners.Show("old")
	out := rec.Error(CodeAborted)
	require.Equal(t, Outcome{}, out)
	_, ok := banners.Current()
	require.False(t, ok)

	rec.Start()
	out = rec.Error(CodeNetwork)
	require.Equal(t, "Network error. Please check your internet connection.", out.Message)
	require.False(t, rec.Listening())

	rec.Start()
	out = rec.Error("audio-capture")
	require.Equal(t, "Microphone error: audio-capture. Please try again.", out.Message)

	rec.Start()
	out = rec.Timeout()
	require.Equal(t, "Listening timed out. Please try again.", out.Message)
	require.False(t, rec.Listening())
}

func TestRecognitionFinalResult(t *testing.T) {
	rec := NewRecognition(NewBanners(time.Minute))
	rec.Start()
	require.True(t, rec.Result(false).Listening)
	require.False(t, rec.Result(true).Listening)
}

func TestParseDevice(t *testing.T) {
	d, err := ParseDevice(" Mic ")
	require.NoError(t, err)
	require.Equal(t, Microphone, d)

	_, err = ParseDevice("speaker")
	require.Error(t, err)
}
