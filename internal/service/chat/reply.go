package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"

	"github.com/moodmate/companion/internal/analysis/emotion"
	"github.com/moodmate/companion/internal/analysis/keyword"
	"github.com/moodmate/companion/internal/catalog"
)

// ReplyRequest is one user utterance plus the camera readings, if the camera is on.
type ReplyRequest struct {
	Message  string
	Emotions *emotion.Readings
}

// Reply is the companion's answer.
type Reply struct {
	Text    string `json:"reply"`
	Rule    string `json:"rule"`
	Emotion string `json:"emotion,omitempty"`
}

// draft carries the rule match between the two chain stages.
type draft struct {
	match    keyword.Match
	emotions *emotion.Readings
}

// Replier runs the reply pipeline: rule match, then emotion note.
type Replier struct {
	chain compose.Runnable[ReplyRequest, Reply]
	delay time.Duration
}

// NewReplier compiles the reply chain. delay simulates thinking time before each reply.
func NewReplier(ctx context.Context, content catalog.ChatContent, delay time.Duration) (*Replier, error) {
	responder := keyword.NewResponder(content.Rules, content.Fallback)
	notes := content.Emotion

	chain := compose.NewChain[ReplyRequest, Reply]()
	chain.AppendLambda(compose.InvokableLambda(func(_ context.Context, req ReplyRequest) (draft, error) {
		return draft{match: responder.Respond(req.Message), emotions: req.Emotions}, nil
	}))
	chain.AppendLambda(compose.InvokableLambda(func(_ context.Context, d draft) (Reply, error) {
		reply := Reply{Text: d.match.Reply, Rule: d.match.RuleID}
		if note, label := EmotionNote(notes, d.emotions); note != "" {
			reply.Text = reply.Text + " " + note
			reply.Emotion = string(label)
		}
		return reply, nil
	}))

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile reply chain: %w", err)
	}
	return &Replier{chain: runnable, delay: delay}, nil
}

// Reply waits for the configured delay and returns the answer. Cancelling ctx aborts the wait.
func (r *Replier) Reply(ctx context.Context, req ReplyRequest) (Reply, error) {
	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Reply{}, ctx.Err()
		case <-timer.C:
		}
	}
	return r.chain.Invoke(ctx, req)
}

// EmotionNote returns the sentence for the dominant emotion when it is above the threshold
// and has a note. A nil readings pointer means the camera is off.
func EmotionNote(notes catalog.EmotionNotes, readings *emotion.Readings) (string, emotion.Label) {
	if readings == nil {
		return "", ""
	}
	dominant := readings.Dominant()
	if dominant.Value <= notes.Threshold {
		return "", ""
	}
	note := strings.TrimSpace(notes.Notes[string(dominant.Emotion)])
	if note == "" {
		return "", ""
	}
	return note, dominant.Emotion
}
