// Package keyword selects canned replies by case-insensitive substring rules.
package keyword

import (
	"strings"

	"github.com/moodmate/companion/internal/catalog"
)

// DefaultRuleID identifies the fallback reply.
const DefaultRuleID = "default"

// Match is the outcome of running the rule table against one input.
type Match struct {
	RuleID  string `json:"rule"`
	Keyword string `json:"keyword,omitempty"`
	Reply   string `json:"reply"`
}

// Responder evaluates rules in order; the first rule with a keyword contained in the input wins.
type Responder struct {
	rules    []catalog.Rule
	fallback string
}

// NewResponder copies the rules with lower-cased keywords.
func NewResponder(rules []catalog.Rule, fallback string) *Responder {
	normalized := make([]catalog.Rule, len(rules))
	for i, rule := range rules {
		keywords := make([]string, 0, len(rule.Keywords))
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(kw)
			if kw == "" {
				continue
			}
			keywords = append(keywords, kw)
		}
		normalized[i] = catalog.Rule{ID: rule.ID, Keywords: keywords, Reply: rule.Reply}
	}
	return &Responder{rules: normalized, fallback: fallback}
}

// Respond returns the reply for text.
func (r *Responder) Respond(text string) Match {
	normalized := strings.ToLower(text)
	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(normalized, kw) {
				return Match{RuleID: rule.ID, Keyword: kw, Reply: rule.Reply}
			}
		}
	}
	return Match{RuleID: DefaultRuleID, Reply: r.fallback}
}
