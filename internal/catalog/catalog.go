// Package catalog loads the static content that drives the companion: chat rules,
// journal lexicon, quiz questions, check-in moods, suggestions and avatar features.
package catalog

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content/*.yaml
var contentFS embed.FS

// Catalog 聚合所有内置内容。
type Catalog struct {
	Chat        ChatContent
	Journal     JournalContent
	Quiz        QuizContent
	Checkin     CheckinContent
	Suggestions SuggestionContent
	Avatar      AvatarContent
}

// Rule maps a set of keywords to a canned reply.
type Rule struct {
	ID       string   `yaml:"id" json:"id"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Reply    string   `yaml:"reply" json:"reply"`
}

// ChatContent 聊天回复规则。
type ChatContent struct {
	Greeting string       `yaml:"greeting"`
	Fallback string       `yaml:"fallback"`
	Rules    []Rule       `yaml:"rules"`
	Emotion  EmotionNotes `yaml:"emotion"`
}

// EmotionNotes are appended to replies when the camera shows a dominant emotion.
type EmotionNotes struct {
	Threshold float64           `yaml:"threshold"`
	Notes     map[string]string `yaml:"notes"`
}

// JournalContent 日记情绪词典。
type JournalContent struct {
	Positive []string          `yaml:"positive"`
	Negative []string          `yaml:"negative"`
	Analysis map[string]string `yaml:"analysis"`
}

// Trait describes one personality dimension of the quiz.
type Trait struct {
	ID           string   `yaml:"id" json:"id"`
	Label        string   `yaml:"label" json:"label"`
	Color        string   `yaml:"color" json:"color"`
	Descriptions []string `yaml:"descriptions" json:"-"`
}

// Option is one Likert answer.
type Option struct {
	Value int    `json:"value"`
	Text  string `json:"text"`
}

// Question is a single quiz item. Reversed questions list their option values 5..1.
type Question struct {
	ID       string   `yaml:"id" json:"id"`
	Text     string   `yaml:"text" json:"text"`
	Trait    string   `yaml:"trait" json:"trait"`
	Reversed bool     `yaml:"reversed" json:"-"`
	Options  []Option `yaml:"-" json:"options"`
}

// QuizContent 性格测试题库。
type QuizContent struct {
	Traits    []Trait    `yaml:"traits"`
	Questions []Question `yaml:"questions"`
}

// Mood is a selectable check-in mood.
type Mood struct {
	Label string `yaml:"label" json:"label"`
	Emoji string `yaml:"emoji" json:"emoji"`
	Color string `yaml:"color" json:"color"`
	Tone  string `yaml:"tone" json:"tone"`
}

// CheckinContent 心情打卡内容。
type CheckinContent struct {
	Moods    []Mood            `yaml:"moods"`
	Feedback map[string]string `yaml:"feedback"`
}

// Suggestion is a single recommended activity, track or video.
type Suggestion struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	ImageURL    string `yaml:"imageUrl" json:"imageUrl"`
	Link        string `yaml:"link" json:"link,omitempty"`
}

// SuggestionCategory groups suggestions under a tab.
type SuggestionCategory struct {
	ID     string       `yaml:"id" json:"id"`
	Title  string       `yaml:"title" json:"title"`
	Action string       `yaml:"action" json:"action,omitempty"`
	Items  []Suggestion `yaml:"items" json:"items"`
}

// SuggestionContent 推荐内容。
type SuggestionContent struct {
	Categories []SuggestionCategory `yaml:"categories"`
}

// AvatarFeature is a customizable avatar attribute with its allowed options.
type AvatarFeature struct {
	ID      string   `yaml:"id" json:"id"`
	Name    string   `yaml:"name" json:"name"`
	Default string   `yaml:"default" json:"default"`
	Options []string `yaml:"options" json:"options"`
}

// SizeRange bounds the avatar preview size in pixels.
type SizeRange struct {
	Min     int `yaml:"min" json:"min"`
	Max     int `yaml:"max" json:"max"`
	Default int `yaml:"default" json:"default"`
}

// AvatarContent 头像定制选项。
type AvatarContent struct {
	Features      []AvatarFeature   `yaml:"features" json:"features"`
	Colors        []string          `yaml:"colors" json:"colors"`
	SkinPalette   map[string]string `yaml:"skinPalette" json:"skinPalette"`
	DefaultColors map[string]string `yaml:"defaultColors" json:"defaultColors"`
	Size          SizeRange         `yaml:"size" json:"size"`
}

const defaultImageURL = "/placeholder.svg?height=200&width=200"

var likertLabels = []string{"Strongly Disagree", "Disagree", "Neutral", "Agree", "Strongly Agree"}

// Load 解析内置的 YAML 内容并做基本校验。
func Load() (*Catalog, error) {
	c := &Catalog{}
	files := []struct {
		name string
		into any
	}{
		{"content/chat.yaml", &c.Chat},
		{"content/journal.yaml", &c.Journal},
		{"content/quiz.yaml", &c.Quiz},
		{"content/checkin.yaml", &c.Checkin},
		{"content/suggestions.yaml", &c.Suggestions},
		{"content/avatar.yaml", &c.Avatar},
	}

	for _, f := range files {
		raw, err := contentFS.ReadFile(f.name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.name, err)
		}
		if err := yaml.Unmarshal(raw, f.into); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.name, err)
		}
	}

	c.expandQuestions()
	c.fillSuggestionImages()

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustLoad panics when the embedded content is broken. Intended for tests and tools.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) expandQuestions() {
	for i := range c.Quiz.Questions {
		q := &c.Quiz.Questions[i]
		q.Options = make([]Option, len(likertLabels))
		for j, label := range likertLabels {
			value := j + 1
			if q.Reversed {
				value = len(likertLabels) - j
			}
			q.Options[j] = Option{Value: value, Text: label}
		}
	}
}

func (c *Catalog) fillSuggestionImages() {
	for i := range c.Suggestions.Categories {
		items := c.Suggestions.Categories[i].Items
		for j := range items {
			if items[j].ImageURL == "" {
				items[j].ImageURL = defaultImageURL
			}
		}
	}
}

func (c *Catalog) validate() error {
	if len(c.Chat.Rules) == 0 || strings.TrimSpace(c.Chat.Fallback) == "" {
		return fmt.Errorf("chat content requires rules and a fallback reply")
	}
	for _, r := range c.Chat.Rules {
		if len(r.Keywords) == 0 {
			return fmt.Errorf("chat rule %q has no keywords", r.ID)
		}
	}

	for _, key := range []string{"positive", "negative", "neutral"} {
		if c.Journal.Analysis[key] == "" {
			return fmt.Errorf("journal analysis missing %q text", key)
		}
		if c.Checkin.Feedback[key] == "" {
			return fmt.Errorf("check-in feedback missing %q text", key)
		}
	}

	traits := make(map[string]bool, len(c.Quiz.Traits))
	for _, t := range c.Quiz.Traits {
		if len(t.Descriptions) != 3 {
			return fmt.Errorf("trait %q needs low/medium/high descriptions", t.ID)
		}
		traits[t.ID] = true
	}
	for _, q := range c.Quiz.Questions {
		if !traits[q.Trait] {
			return fmt.Errorf("question %q references unknown trait %q", q.ID, q.Trait)
		}
	}

	for _, f := range c.Avatar.Features {
		if !contains(f.Options, f.Default) {
			return fmt.Errorf("avatar feature %q default %q is not an option", f.ID, f.Default)
		}
	}
	if c.Avatar.Size.Min > c.Avatar.Size.Default || c.Avatar.Size.Default > c.Avatar.Size.Max {
		return fmt.Errorf("avatar size default %d outside [%d,%d]", c.Avatar.Size.Default, c.Avatar.Size.Min, c.Avatar.Size.Max)
	}
	return nil
}

// FindMood looks up a check-in mood by label, ignoring case.
func (c *Catalog) FindMood(label string) (Mood, bool) {
	label = strings.TrimSpace(label)
	for _, m := range c.Checkin.Moods {
		if strings.EqualFold(m.Label, label) {
			return m, true
		}
	}
	return Mood{}, false
}

// FindSuggestion looks up a suggestion across all categories.
func (c *Catalog) FindSuggestion(id string) (Suggestion, bool) {
	for _, cat := range c.Suggestions.Categories {
		for _, item := range cat.Items {
			if item.ID == id {
				return item, true
			}
		}
	}
	return Suggestion{}, false
}

func contains(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}
