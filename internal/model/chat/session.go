package chat

import "time"

// Session captures a transient anonymous conversation.
type Session struct {
	ID        string    `json:"id"`
	Greeting  string    `json:"greeting"`
	CreatedAt time.Time `json:"createdAt"`
}
