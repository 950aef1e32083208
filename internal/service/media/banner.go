package media

import (
	"sync"
	"time"
)

// Banner is a short-lived message shown above the chat.
type Banner struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Banners holds at most one banner; it clears itself after the TTL.
type Banners struct {
	mu      sync.Mutex
	current Banner
	ttl     time.Duration
	now     func() time.Time
}

func NewBanners(ttl time.Duration) *Banners {
	return &Banners{ttl: ttl, now: time.Now}
}

// Show replaces the current banner.
func (b *Banners) Show(message string) Banner {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = Banner{Message: message, ExpiresAt: b.now().Add(b.ttl)}
	return b.current
}

func (b *Banners) Clear() {
	b.mu.Lock()
	b.current = Banner{}
	b.mu.Unlock()
}

// Current returns the active banner, if it has not expired.
func (b *Banners) Current() (Banner, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current.Message == "" || !b.now().Before(b.current.ExpiresAt) {
		return Banner{}, false
	}
	return b.current, true
}
