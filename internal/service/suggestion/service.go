// Package suggestion serves recommended music, videos and activities and tracks likes.
package suggestion

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/moodmate/companion/internal/catalog"
)

var (
	ErrUnknownCategory    = errors.New("unknown suggestion category")
	ErrSuggestionNotFound = errors.New("suggestion not found")
)

// Item is a suggestion with its like state.
type Item struct {
	catalog.Suggestion
	Liked bool `json:"liked"`
}

// Category is one tab of the suggestions page.
type Category struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Action string `json:"action,omitempty"`
	Items  []Item `json:"items"`
}

type Service struct {
	mu      sync.RWMutex
	content catalog.SuggestionContent
	liked   map[string]bool
	lookup  map[string]struct{}
}

func NewService(content catalog.SuggestionContent) *Service {
	lookup := make(map[string]struct{})
	for _, c := range content.Categories {
		for _, item := range c.Items {
			lookup[item.ID] = struct{}{}
		}
	}
	return &Service{content: content, liked: make(map[string]bool), lookup: lookup}
}

// List returns every category, or only the named one.
func (s *Service) List(category string) ([]Category, error) {
	category = strings.ToLower(strings.TrimSpace(category))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Category, 0, len(s.content.Categories))
	for _, c := range s.content.Categories {
		if category != "" && c.ID != category {
			continue
		}
		items := make([]Item, 0, len(c.Items))
		for _, item := range c.Items {
			items = append(items, Item{Suggestion: item, Liked: s.liked[item.ID]})
		}
		out = append(out, Category{ID: c.ID, Title: c.Title, Action: c.Action, Items: items})
	}
	if category != "" && len(out) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return out, nil
}

// ToggleLike flips the like state and returns the new value.
func (s *Service) ToggleLike(id string) (bool, error) {
	if _, ok := s.lookup[id]; !ok {
		return false, fmt.Errorf("%w: %q", ErrSuggestionNotFound, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	liked := !s.liked[id]
	if liked {
		s.liked[id] = true
	} else {
		delete(s.liked, id)
	}
	return liked, nil
}
