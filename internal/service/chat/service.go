package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/moodmate/companion/internal/analysis/emotion"
	"github.com/moodmate/companion/internal/catalog"
	"github.com/moodmate/companion/internal/model/chat"
)

// ListeningPlaceholder is the input text shown while the microphone is recording.
const ListeningPlaceholder = "Listening..."

var (
	ErrEmptyContent    = errors.New("message content is required")
	ErrSessionNotFound = errors.New("session not found")
)

// Service encapsulates conversation state management.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]chat.Session
	messages map[string][]chat.Message

	greeting string
	replier  *Replier
	logger   *zap.Logger
}

// NewService builds the in-memory chat service and its reply chain.
func NewService(ctx context.Context, content catalog.ChatContent, replyDelay time.Duration, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	replier, err := NewReplier(ctx, content, replyDelay)
	if err != nil {
		return nil, err
	}
	return &Service{
		sessions: make(map[string]chat.Session),
		messages: make(map[string][]chat.Message),
		greeting: content.Greeting,
		replier:  replier,
		logger:   logger,
	}, nil
}

// CreateSession provisions an anonymous session whose transcript starts with the greeting.
func (s *Service) CreateSession(_ context.Context) (chat.Session, error) {
	session := chat.Session{
		ID:        uuid.NewString(),
		Greeting:  s.greeting,
		CreatedAt: time.Now().UTC(),
	}
	greeting := chat.Message{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Sender:    chat.SenderAssistant,
		Content:   s.greeting,
		CreatedAt: session.CreatedAt,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.messages[session.ID] = append(make([]chat.Message, 0, 16), greeting)
	s.mu.Unlock()

	s.logger.Debug("chat session created", zap.String("session_id", session.ID))
	return session, nil
}

// SaveMessage appends a message to the session history and returns the stored copy.
func (s *Service) SaveMessage(_ context.Context, message chat.Message) (chat.Message, error) {
	if message.SessionID == "" {
		return chat.Message{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[message.SessionID]; !ok {
		return chat.Message{}, ErrSessionNotFound
	}

	message.ID = uuid.NewString()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	s.messages[message.SessionID] = append(s.messages[message.SessionID], message)
	return message, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// LoadTranscript returns stored messages for the provided session.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// Reply answers a single message without touching any session.
func (s *Service) Reply(ctx context.Context, text string, readings *emotion.Readings) (Reply, error) {
	if err := validateContent(text); err != nil {
		return Reply{}, err
	}
	return s.replier.Reply(ctx, ReplyRequest{Message: text, Emotions: readings})
}

// Exchange stores the user's message, waits for the reply and stores it too.
func (s *Service) Exchange(ctx context.Context, sessionID, text string, readings *emotion.Readings) (chat.Message, chat.Message, error) {
	if err := validateContent(text); err != nil {
		return chat.Message{}, chat.Message{}, err
	}

	user, err := s.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Sender:    chat.SenderUser,
		Content:   strings.TrimSpace(text),
	})
	if err != nil {
		return chat.Message{}, chat.Message{}, err
	}

	reply, err := s.replier.Reply(ctx, ReplyRequest{Message: text, Emotions: readings})
	if err != nil {
		return chat.Message{}, chat.Message{}, fmt.Errorf("generate reply: %w", err)
	}

	assistant, err := s.SaveMessage(ctx, chat.Message{
		SessionID: sessionID,
		Sender:    chat.SenderAssistant,
		Content:   reply.Text,
		Rule:      reply.Rule,
		Emotion:   reply.Emotion,
	})
	if err != nil {
		return chat.Message{}, chat.Message{}, err
	}

	s.logger.Debug("chat reply", zap.String("session_id", sessionID), zap.String("rule", reply.Rule))
	return user, assistant, nil
}

func validateContent(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == ListeningPlaceholder {
		return ErrEmptyContent
	}
	return nil
}
