package journal

import "time"

// Entry is a journal page tagged with its keyword sentiment.
type Entry struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sentiment string    `json:"sentiment"`
	Analysis  string    `json:"analysis"`
	Date      time.Time `json:"date"`
}
