// internal/game/errors.go
//
// Errors returned by ParseWord and Session.Apply. None of them change the
// session.

package game

import "errors"

var (
	ErrWrongLength = errors.New("wrong length")
	ErrNotAlpha    = errors.New("letters only")
	ErrFinished    = errors.New("game finished")
)
