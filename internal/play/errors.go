// internal/play/errors.go
//
// Sentinel errors returned by Match. The HTTP layer maps each one to a
// status code; the terminal game turns them into a line of text.

package play

import "errors"

var (
	ErrNotAWord        = errors.New("not a word")
	ErrBusy            = errors.New("a guess is already being checked")
	ErrStale           = errors.New("game was restarted")
	ErrGameOver        = errors.New("game over")
	ErrNoQuestionsLeft = errors.New("no questions left")
	ErrEmptyQuestion   = errors.New("empty question")
	ErrNotRevealed     = errors.New("word not revealed yet")
	ErrBadLength       = errors.New("unsupported word length")
	ErrTooManyKeys     = errors.New("too many keys in one press")
)
