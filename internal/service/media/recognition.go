package media

import (
	"fmt"
	"sync"
)

// MaxNoSpeechRetries is how many times recognition restarts after hearing nothing.
const MaxNoSpeechRetries = 2

// Recognition error codes reported by the browser.
const (
	CodeNoSpeech   = "no-speech"
	CodeAborted    = "aborted"
	CodeNetwork    = "network"
	CodeNotAllowed = "not-allowed"
)

// Outcome tells the client what to do after a recognition event.
type Outcome struct {
	// Retry asks the client to restart recognition.
	Retry     bool   `json:"retry"`
	Listening bool   `json:"listening"`
	Message   string `json:"message,omitempty"`
}

// Recognition tracks one speech recognition session.
type Recognition struct {
	mu        sync.Mutex
	listening bool
	retries   int
	banners   *Banners
}

func NewRecognition(banners *Banners) *Recognition {
	return &Recognition{banners: banners}
}

func (r *Recognition) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listening
}

// Start begins listening and resets the retry count.
func (r *Recognition) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listening = true
	r.retries = 0
	r.banners.Clear()
}

// Stop ends listening, for example when the user toggles the microphone off.
func (r *Recognition) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listening = false
	r.retries = 0
}

// Result records a transcript. A final result ends the session.
func (r *Recognition) Result(final bool) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	if final {
		r.listening = false
		r.retries = 0
	}
	return Outcome{Listening: r.listening}
}

// Timeout ends a session that produced no result in time.
func (r *Recognition) Timeout() Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listening = false
	r.retries = 0
	msg := bannerText[Microphone][KindTimeout]
	r.banners.Show(msg)
	return Outcome{Message: msg}
}

// Error applies the retry policy: no-speech restarts up to MaxNoSpeechRetries times and
// then stops without a new message, aborted clears the banner, anything else stops.
func (r *Recognition) Error(code string) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch code {
	case CodeNoSpeech:
		if r.retries < MaxNoSpeechRetries {
			r.retries++
			msg := fmt.Sprintf("I didn't hear anything. Retrying... (%d/%d)", r.retries, MaxNoSpeechRetries+1)
			r.banners.Show(msg)
			r.listening = true
			return Outcome{Retry: true, Listening: true, Message: msg}
		}
		r.retries = 0
		r.listening = false
		return Outcome{}
	case CodeAborted:
		r.listening = false
		r.banners.Clear()
		return Outcome{}
	case CodeNetwork:
		return r.fail(bannerText[Microphone][KindNetwork])
	case CodeNotAllowed:
		return r.fail(bannerText[Microphone][KindDenied])
	default:
		return r.fail(fmt.Sprintf("Microphone error: %s. Please try again.", code))
	}
}

func (r *Recognition) fail(msg string) Outcome {
	r.listening = false
	r.retries = 0
	r.banners.Show(msg)
	return Outcome{Message: msg}
}
