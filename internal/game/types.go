// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Word: an uppercase, fixed-length, alphabetic guess or target.
//   - Status: per-letter result of a guess (correct/present/absent).
//   - GuessRecord: a scored guess.
//   - Outcome: coarse session state (playing/won/lost).

package game

import "strings"

// Word is an uppercase sequence of ASCII letters. Use ParseWord to build one
// from user input; the zero value is not a valid word.
type Word string

// Len returns the number of letters in w.
func (w Word) Len() int { return len(w) }

// String implements fmt.Stringer.
func (w Word) String() string { return string(w) }

// ParseWord trims and uppercases raw and checks it is exactly length letters
// A–Z. It returns ErrWrongLength or ErrNotAlpha otherwise.
func ParseWord(raw string, length int) (Word, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if len(s) != length {
		return "", ErrWrongLength
	}
	if !isAlpha(s) {
		return "", ErrNotAlpha
	}
	return Word(s), nil
}

// Status represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the target at this position.
//   - "present": letter is in the target at another position.
//   - "absent":  letter is not in the (remaining) target letters.
type Status string

const (
	Correct Status = "correct"
	Present Status = "present"
	Absent  Status = "absent"
)

// rank orders statuses for keyboard display: correct beats present beats absent.
func (s Status) rank() int {
	switch s {
	case Correct:
		return 3
	case Present:
		return 2
	case Absent:
		return 1
	}
	return 0
}

// GuessRecord is a submitted word with its per-position statuses.
type GuessRecord struct {
	Word     Word     `json:"word"`
	Statuses []Status `json:"statuses"`
}

// Outcome is the session state.
type Outcome string

const (
	Playing Outcome = "playing"
	Won     Outcome = "won"
	Lost    Outcome = "lost"
)

// Finished reports whether o is a terminal state.
func (o Outcome) Finished() bool { return o == Won || o == Lost }

// isAlpha checks that a string consists only of uppercase A–Z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
