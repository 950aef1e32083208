// Package quiz serves the personality quiz and scores submissions.
package quiz

import (
	"github.com/moodmate/companion/internal/analysis/trait"
	"github.com/moodmate/companion/internal/catalog"
)

// Questionnaire is the payload of the quiz page.
type Questionnaire struct {
	Traits    []catalog.Trait    `json:"traits"`
	Questions []catalog.Question `json:"questions"`
}

// Service is stateless; answers are scored on submission.
type Service struct {
	content catalog.QuizContent
}

func NewService(content catalog.QuizContent) *Service {
	return &Service{content: content}
}

// Questionnaire returns the traits and questions in display order.
func (s *Service) Questionnaire() Questionnaire {
	return Questionnaire{Traits: s.content.Traits, Questions: s.content.Questions}
}

// Score computes trait scores. Values must be 1..5, or 0 for a skipped question.
func (s *Service) Score(answers map[string]int) (trait.Result, error) {
	return trait.Compute(s.content, answers)
}
