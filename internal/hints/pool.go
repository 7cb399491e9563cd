package hints

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Disclosure IDs shared between rules and templates, so a fact revealed one
// way is not repeated the other way.
const (
	idFirstLetter = "first-letter"
	idLastLetter  = "last-letter"
)

// NoMoreClues is the reply once every template has been disclosed.
const NoMoreClues = "No more clues available. Try your best!"

var errNoLookup = errors.New("lookup not configured")

// Template is one entry of the fallback clue pool.
type Template struct {
	// ID returns the disclosure ID for target.
	ID func(target string) string
	// Text renders the clue. An error means the clue cannot be produced right
	// now; the template is skipped for this draw and stays undisclosed.
	Text func(ctx context.Context, l Lookups, target string) (string, error)
}

func fixedID(id string) func(string) string { return func(string) string { return id } }

// DefaultPool returns the ten built-in templates.
func DefaultPool() []Template {
	return []Template{
		{
			ID: fixedID(idFirstLetter),
			Text: func(_ context.Context, _ Lookups, t string) (string, error) {
				return fmt.Sprintf("The word starts with %q.", t[:1]), nil
			},
		},
		{
			ID: fixedID(idLastLetter),
			Text: func(_ context.Context, _ Lookups, t string) (string, error) {
				return fmt.Sprintf("The word ends with %q.", t[len(t)-1:]), nil
			},
		},
		{
			ID: fixedID("length"),
			Text: func(_ context.Context, _ Lookups, t string) (string, error) {
				return fmt.Sprintf("The word has %d letters.", len(t)), nil
			},
		},
		{
			ID: fixedID("second-letter"),
			Text: func(_ context.Context, _ Lookups, t string) (string, error) {
				return fmt.Sprintf("The second letter is %q.", t[1:2]), nil
			},
		},
		{
			ID: func(t string) string { return containsID(t[2:3]) },
			Text: func(_ context.Context, _ Lookups, t string) (string, error) {
				return fmt.Sprintf("The word contains the letter %q.", t[2:3]), nil
			},
		},
		{
			ID: fixedID("middle-letter"),
			Text: func(_ context.Context, _ Lookups, t string) (string, error) {
				mid := len(t) / 2
				return fmt.Sprintf("The word's middle letter is %q.", t[mid:mid+1]), nil
			},
		},
		{
			ID: fixedID("unique-letters"),
			Text: func(_ context.Context, _ Lookups, t string) (string, error) {
				return fmt.Sprintf("The word has %d unique letters.", uniqueLetters(t)), nil
			},
		},
		{
			ID: fixedID("rhyme"),
			Text: func(ctx context.Context, l Lookups, t string) (string, error) {
				if l.Rhymes == nil {
					return "", errNoLookup
				}
				rhymes, err := l.Rhymes.Rhymes(ctx, t)
				if err != nil {
					return "", err
				}
				for _, r := range rhymes {
					if !strings.EqualFold(r, t) {
						return fmt.Sprintf("The word rhymes with %q.", strings.ToUpper(r)), nil
					}
				}
				return "", errors.New("no rhymes")
			},
		},
		{
			ID: fixedID("scrabble"),
			Text: func(_ context.Context, _ Lookups, t string) (string, error) {
				return fmt.Sprintf("The word's letters sum up to %d in Scrabble scores.", ScrabbleScore(t)), nil
			},
		},
		{
			ID: fixedID("word-type"),
			Text: func(ctx context.Context, l Lookups, t string) (string, error) {
				if l.Definitions == nil {
					return "", errNoLookup
				}
				e, err := l.Definitions.Define(ctx, t)
				if err != nil {
					return "", err
				}
				if e.PartOfSpeech == "" {
					return "", errors.New("no part of speech")
				}
				return fmt.Sprintf("The word is a type of %q.", e.PartOfSpeech), nil
			},
		},
	}
}

func uniqueLetters(s string) int {
	seen := make(map[rune]struct{}, len(s))
	for _, r := range s {
		seen[r] = struct{}{}
	}
	return len(seen)
}

var scrabble = [26]int{
	1, 3, 3, 2, 1, 4, 2, 4, 1, 8, 5, 1, 3, // A–M
	1, 1, 3, 10, 1, 1, 1, 1, 4, 4, 8, 4, 10, // N–Z
}

// ScrabbleScore sums the standard English tile values of the letters in s.
func ScrabbleScore(s string) int {
	sum := 0
	for _, r := range strings.ToUpper(s) {
		if r >= 'A' && r <= 'Z' {
			sum += scrabble[r-'A']
		}
	}
	return sum
}
