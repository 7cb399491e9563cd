// Package hints answers free-text hint questions about the target word.
//
// A Policy classifies the question with an ordered list of Rules, falls back
// to a random draw from a pool of templated clues, and never repeats a
// disclosed clue while alternatives remain. Elevated-disclosure mode bypasses
// all of this and reveals the word or its definition.
package hints

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hintle/internal/define"
)

// Rhymer finds rhymes for a word.
type Rhymer interface {
	Rhymes(ctx context.Context, word string) ([]string, error)
}

// Lookups are the external collaborators templates may consult.
type Lookups struct {
	Definitions define.Provider
	Rhymes      Rhymer
}

// Clue is a reply to a question. ID is empty for replies that disclose
// nothing about the target (refusals, "please specify", exhaustion).
type Clue struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
}

// Request is a question about one session's target.
type Request struct {
	Question string
	Target   string
	// Disclosed holds IDs already revealed this session. Read only.
	Disclosed map[string]bool
}

// Policy is safe for concurrent use once built.
type Policy struct {
	Rules   []Rule
	Pool    []Template
	Lookups Lookups
	// IntN draws uniformly from [0, n). Defaults to math/rand/v2.IntN.
	IntN func(n int) int
}

// NewPolicy returns a Policy with the built-in rules and pool.
func NewPolicy(l Lookups) *Policy {
	return &Policy{Rules: DefaultRules(), Pool: DefaultPool(), Lookups: l}
}

// Answer classifies req.Question and returns a clue about req.Target.
func (p *Policy) Answer(ctx context.Context, req Request) Clue {
	target := strings.ToUpper(req.Target)
	if rule := Classify(p.Rules, req.Question); rule != nil {
		c := rule.Clue(strings.ToLower(req.Question), target)
		if c.ID == "" || !req.Disclosed[c.ID] {
			return c
		}
		log.Debug().Str("rule", rule.Name).Msg("clue already disclosed; drawing from pool")
	}
	return p.draw(ctx, target, req.Disclosed)
}

func (p *Policy) draw(ctx context.Context, target string, disclosed map[string]bool) Clue {
	var open []Template
	for _, t := range p.Pool {
		if !disclosed[t.ID(target)] {
			open = append(open, t)
		}
	}
	intn := p.IntN
	if intn == nil {
		intn = rand.IntN
	}
	for len(open) > 0 {
		i := intn(len(open))
		t := open[i]
		text, err := t.Text(ctx, p.Lookups, target)
		if err == nil {
			return Clue{ID: t.ID(target), Text: text}
		}
		log.Debug().Err(err).Str("template", t.ID(target)).Msg("clue template unavailable")
		open = append(open[:i], open[i+1:]...)
	}
	return Clue{Text: NoMoreClues}
}

// Elevated answers in elevated-disclosure mode: a question mentioning "def"
// gets the target's definition, anything else gets the word itself.
func (p *Policy) Elevated(ctx context.Context, question, target string) Clue {
	target = strings.ToUpper(target)
	if strings.Contains(strings.ToLower(question), "def") {
		e, err := p.define(ctx, target)
		if err != nil {
			return Clue{ID: "reveal-definition", Text: fmt.Sprintf("Definition not found for %q.", target)}
		}
		return Clue{ID: "reveal-definition", Text: fmt.Sprintf("Definition of %q: %s", target, e.Definition)}
	}
	return Clue{ID: "reveal-word", Text: fmt.Sprintf("Elevated mode is on. The word is %q.", target)}
}

func (p *Policy) define(ctx context.Context, word string) (define.Entry, error) {
	if p.Lookups.Definitions == nil {
		return define.Entry{}, define.ErrDefinitionUnavailable
	}
	return p.Lookups.Definitions.Define(ctx, word)
}
