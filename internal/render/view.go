// Package render draws game state for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/robalobadob/hintle/internal/game"
	"github.com/robalobadob/hintle/internal/play"
)

var keyboardRows = []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

// Renderer turns snapshots into styled text.
type Renderer struct {
	s styles
}

// New returns a Renderer. Colour output follows lipgloss's detection of the
// terminal, so piping to a file yields plain text.
func New() *Renderer { return &Renderer{s: newStyles()} }

func (r *Renderer) tile(letter string, st game.Status) string {
	switch st {
	case game.Correct:
		return r.s.correct.Render(letter)
	case game.Present:
		return r.s.present.Render(letter)
	case game.Absent:
		return r.s.absent.Render(letter)
	default:
		return r.s.unused.Render(letter)
	}
}

// Guess renders one scored row.
func (r *Renderer) Guess(g game.GuessRecord) string {
	var b strings.Builder
	for i := 0; i < g.Word.Len() && i < len(g.Statuses); i++ {
		b.WriteString(r.tile(string(g.Word[i]), g.Statuses[i]))
	}
	return b.String()
}

// Board renders every guess so far plus placeholder rows for the attempts
// that remain.
func (r *Renderer) Board(s play.Snapshot) string {
	var b strings.Builder
	for _, g := range s.Guesses {
		b.WriteString(r.Guess(g))
		b.WriteByte('\n')
	}
	empty := strings.Repeat(r.s.faint.Render(" _ "), s.Length)
	for i := len(s.Guesses); i < s.MaxAttempts; i++ {
		b.WriteString(empty)
		b.WriteByte('\n')
	}
	return b.String()
}

// Keyboard renders the letter states in QWERTY order.
func (r *Renderer) Keyboard(kb map[string]game.Status) string {
	lines := make([]string, 0, len(keyboardRows))
	for i, row := range keyboardRows {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", i))
		for _, c := range row {
			b.WriteString(r.tile(string(c), kb[string(c)]))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// Status renders the one-line summary under the board.
func (r *Renderer) Status(s play.Snapshot) string {
	switch s.State {
	case game.Won:
		return r.s.title.Render(fmt.Sprintf("Solved in %d/%d! The word was %s.", s.Attempt, s.MaxAttempts, s.Answer))
	case game.Lost:
		return r.s.alert.Render(fmt.Sprintf("Out of attempts. The word was %s.", s.Answer))
	}
	line := fmt.Sprintf("Attempt %d/%d · %d question(s) left", s.Attempt, s.MaxAttempts, s.QuestionsLeft)
	if s.Elevated {
		line += " · elevated"
	}
	return r.s.faint.Render(line)
}

// Alert renders an error or notice.
func (r *Renderer) Alert(msg string) string { return r.s.alert.Render(msg) }

// Title renders a heading.
func (r *Renderer) Title(msg string) string { return r.s.title.Render(msg) }
