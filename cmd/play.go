package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/hintle/internal/game"
	"github.com/robalobadob/hintle/internal/play"
	"github.com/robalobadob/hintle/internal/render"
	"github.com/robalobadob/hintle/internal/words"
)

const playHelp = `Type a guess and press enter.
  ?<question>     ask the assistant, e.g. "?what is the first letter"
  !restart [N]    new word, optionally N letters long
  !reveal         show the word once the game is over
  !quit           leave`

func newPlayCmd(o *overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			app, err := wireApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			m, err := play.New(cmd.Context(), app.deps, app.rules)
			if err != nil {
				return err
			}
			return runREPL(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), m, render.New())
		},
	}
}

// runREPL plays m line by line until in is exhausted or the player quits.
func runREPL(ctx context.Context, in io.Reader, out io.Writer, m *play.Match, r *render.Renderer) error {
	p := &printer{w: out}
	p.line(r.Title(fmt.Sprintf("hintle: guess the %d-letter word", m.Snapshot().Length)))
	p.line(playHelp)
	p.line(r.Board(m.Snapshot()))

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case line == "!quit" || line == "!q":
			return p.err
		case strings.HasPrefix(line, "?"):
			reply, err := m.Ask(ctx, strings.TrimPrefix(line, "?"))
			if err != nil {
				p.line(r.Alert(describe(err)))
				continue
			}
			p.line(fmt.Sprintf("%s (%d question(s) left)", reply.Text, reply.QuestionsLeft))
		case strings.HasPrefix(line, "!restart"):
			length := 0
			if arg := strings.TrimSpace(strings.TrimPrefix(line, "!restart")); arg != "" {
				n, err := strconv.Atoi(arg)
				if err != nil {
					p.line(r.Alert("usage: !restart [length]"))
					continue
				}
				length = n
			}
			snap, err := m.Restart(ctx, length)
			if err != nil {
				p.line(r.Alert(describe(err)))
				continue
			}
			p.line(r.Title(fmt.Sprintf("New %d-letter word.", snap.Length)))
			p.line(r.Board(snap))
		case line == "!reveal":
			rv, err := m.Reveal(ctx)
			if err != nil {
				p.line(r.Alert(describe(err)))
				continue
			}
			p.line(fmt.Sprintf("%s: %s", rv.Word, rv.Definition))
		default:
			guess(ctx, p, m, r, line)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return p.err
}

// guess submits line. A line the game refuses as input is then fed to the
// hidden key sequence, so a scored guess never doubles as a key press.
func guess(ctx context.Context, p *printer, m *play.Match, r *render.Renderer, line string) {
	rec, outcome, err := m.SubmitGuess(ctx, line)
	if err != nil {
		if play.IsInputError(err) || errors.Is(err, play.ErrGameOver) {
			if _, rv, kerr := m.PressKeys(ctx, line); kerr == nil && rv != nil {
				p.line(r.Alert("Elevated mode on."))
				p.line(fmt.Sprintf("%s: %s", rv.Word, rv.Definition))
				return
			}
		}
		p.line(r.Alert(describe(err)))
		return
	}
	snap := m.Snapshot()
	p.line(r.Guess(rec))
	p.line(r.Status(snap))
	p.line(r.Keyboard(snap.Keyboard))
	if outcome.Finished() {
		if rv, err := m.Reveal(ctx); err == nil {
			p.line(fmt.Sprintf("%s: %s", rv.Word, rv.Definition))
		}
		p.line("Type !restart to play again.")
	}
}

// describe turns match errors into player-facing text.
func describe(err error) string {
	switch {
	case errors.Is(err, play.ErrNotAWord):
		return "Not in the word list."
	case errors.Is(err, game.ErrWrongLength):
		return "Wrong number of letters."
	case errors.Is(err, game.ErrNotAlpha):
		return "Letters only."
	case errors.Is(err, play.ErrGameOver):
		return "The game is over. Type !restart to play again."
	case errors.Is(err, play.ErrNoQuestionsLeft):
		return "You have no questions left."
	case errors.Is(err, play.ErrEmptyQuestion):
		return "Ask something after the '?'."
	case errors.Is(err, play.ErrNotRevealed):
		return "Finish the game first."
	case errors.Is(err, play.ErrBusy):
		return "Still working on the last one."
	case errors.Is(err, play.ErrBadLength):
		return fmt.Sprintf("Word length must be between %d and %d.", words.MinLength, words.MaxLength)
	default:
		return err.Error()
	}
}

// printer remembers the first write error so the loop can stop checking.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}
