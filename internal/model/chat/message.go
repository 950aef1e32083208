package chat

import "time"

const (
	SenderUser      = "user"
	SenderAssistant = "ai"
)

// Message persists individual turns of a companion conversation.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Rule      string    `json:"rule,omitempty"`
	Emotion   string    `json:"emotion,omitempty"`
	CreatedAt time.Time `json:"timestamp"`
}
