// Package media models camera and microphone toggles, their error banners and the
// speech recognition retry policy.
package media

import (
	"context"
	"sync"
)

// Track is a held device stream.
type Track interface {
	Stop()
}

// Acquirer obtains a device track, returning a *DeviceError when the device is unavailable.
type Acquirer func(ctx context.Context) (Track, error)

// Toggle is the on/off switch of one device.
type Toggle struct {
	mu      sync.Mutex
	device  Device
	track   Track
	banners *Banners
}

func NewToggle(device Device, banners *Banners) *Toggle {
	return &Toggle{device: device, banners: banners}
}

func (t *Toggle) Device() Device { return t.device }

// On reports whether a track is held.
func (t *Toggle) On() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.track != nil
}

// Toggle switches the device. Turning off always stops the held track. Turning on calls
// acquire; on error the toggle stays off, a banner is shown and the error is returned.
func (t *Toggle) Toggle(ctx context.Context, acquire Acquirer) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.track != nil {
		t.track.Stop()
		t.track = nil
		return false, nil
	}

	track, err := acquire(ctx)
	if err != nil {
		if t.banners != nil {
			t.banners.Show(BannerMessage(t.device, err))
		}
		return false, err
	}
	t.track = track
	return true, nil
}

// Track returns the held track or nil.
func (t *Toggle) Track() Track {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.track
}

// Close releases any held track.
func (t *Toggle) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.track != nil {
		t.track.Stop()
		t.track = nil
	}
}
