// internal/hints/rules.go
//
// Keyword classification of free-text hint questions.
//
// Rules are tried in order; the first whose Match accepts the lower-cased
// question produces the reply. A question no rule accepts, or whose reply
// was already disclosed this session, is answered from the template pool.

package hints

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule maps a predicate over the question text to a clue producer.
type Rule struct {
	Name  string
	Match func(question string) bool
	Clue  func(question, target string) Clue
}

func contains(substrs ...string) func(string) bool {
	return func(q string) bool {
		for _, s := range substrs {
			if strings.Contains(q, s) {
				return true
			}
		}
		return false
	}
}

var letterAsked = regexp.MustCompile(`letter\s([a-z])`)

// DefaultRules returns the built-in classifier, in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:  "first-letter",
			Match: contains("first letter"),
			Clue: func(_, target string) Clue {
				return Clue{ID: idFirstLetter, Text: fmt.Sprintf("The first letter is %q.", target[:1])}
			},
		},
		{
			Name:  "last-letter",
			Match: contains("last letter"),
			Clue: func(_, target string) Clue {
				return Clue{ID: idLastLetter, Text: fmt.Sprintf("The last letter is %q.", target[len(target)-1:])}
			},
		},
		{
			Name:  "vowels",
			Match: contains("number of vowels"),
			Clue: func(_, target string) Clue {
				return Clue{ID: "vowels", Text: fmt.Sprintf("The word has %d vowel(s).", countVowels(target))}
			},
		},
		{
			Name:  "consonants",
			Match: contains("number of consonants"),
			Clue: func(_, target string) Clue {
				n := len(target) - countVowels(target)
				return Clue{ID: "consonants", Text: fmt.Sprintf("The word has %d consonant(s).", n)}
			},
		},
		{
			Name:  "contains-letter",
			Match: contains("contains the letter"),
			Clue: func(q, target string) Clue {
				m := letterAsked.FindStringSubmatch(q)
				if m == nil {
					return Clue{Text: "Please specify the letter you're asking about."}
				}
				l := strings.ToUpper(m[1])
				if strings.Contains(target, l) {
					return Clue{ID: containsID(l), Text: fmt.Sprintf("Yes, the word contains the letter %q.", l)}
				}
				return Clue{ID: containsID(l), Text: fmt.Sprintf("No, the word does not contain the letter %q.", l)}
			},
		},
		{
			Name:  "definition",
			Match: contains("meaning", "definition"),
			Clue: func(_, _ string) Clue {
				return Clue{Text: "I'm sorry, I cannot provide definitions during the game."}
			},
		},
	}
}

// Classify returns the first rule matching question, or nil.
func Classify(rules []Rule, question string) *Rule {
	q := strings.ToLower(question)
	for i := range rules {
		if rules[i].Match(q) {
			return &rules[i]
		}
	}
	return nil
}

func countVowels(s string) int {
	n := 0
	for _, r := range s {
		switch r {
		case 'A', 'E', 'I', 'O', 'U':
			n++
		}
	}
	return n
}

func containsID(letter string) string { return "contains:" + letter }
