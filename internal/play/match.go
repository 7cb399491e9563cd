// internal/play/match.go
//
// Match is the component that owns one player's game. It wraps the pure
// game.Session with everything that needs I/O or policy:
//   - dictionary validation of guesses (fail closed, no attempt consumed),
//   - target selection on start/restart (word source with static fallback),
//   - the hint assistant (question budget, disclosed clues, elevated mode),
//   - the end-of-game reveal with definition.
//
// Concurrency:
//   - All state is guarded by mu. Slow lookups run with mu released.
//   - Only one guess may be in validation at a time, and only one question
//     may be in flight at a time; overlapping calls get ErrBusy.
//   - Every restart bumps gen. A lookup started under an older gen has its
//     result discarded (ErrStale) instead of being applied to the new target.

package play

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hintle/internal/define"
	"github.com/robalobadob/hintle/internal/game"
	"github.com/robalobadob/hintle/internal/hints"
	"github.com/robalobadob/hintle/internal/words"
)

// Rules are the per-match limits.
type Rules struct {
	Length       int
	MaxAttempts  int
	MaxQuestions int
}

// Deps are the collaborators a match talks to. Source, Validator and Policy
// are required; Definitions may be nil (reveals then show the placeholder).
type Deps struct {
	Source      words.Source
	Validator   words.Validator
	Definitions define.Provider
	Policy      *hints.Policy
	Code        hints.Code
	// Pick chooses the target from the candidates. Defaults to uniform random.
	Pick func(candidates []string) string
}

// Match owns one game session.
type Match struct {
	ID string

	deps  Deps
	rules Rules

	mu        sync.Mutex
	gen       uint64
	session   *game.Session
	pending   bool
	asking    bool
	disclosed map[string]bool
	questions int
	elevated  bool
	seq       hints.Sequence
	started   time.Time
}

// Reply is the answer to a hint question.
type Reply struct {
	Text          string `json:"reply"`
	QuestionsLeft int    `json:"questionsLeft"`
}

// Reveal is the target and its definition, shown at the end of a game or in
// elevated mode.
type Reveal struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// Snapshot is a read-only copy of the match state.
type Snapshot struct {
	ID            string                 `json:"gameId"`
	Length        int                    `json:"length"`
	MaxAttempts   int                    `json:"maxAttempts"`
	Attempt       int                    `json:"attempt"`
	State         game.Outcome           `json:"state"`
	Guesses       []game.GuessRecord     `json:"guesses"`
	Keyboard      map[string]game.Status `json:"keyboard"`
	QuestionsLeft int                    `json:"questionsLeft"`
	Elevated      bool                   `json:"elevated"`
	Answer        string                 `json:"answer,omitempty"`
}

// New creates a match and picks its first target.
func New(ctx context.Context, deps Deps, rules Rules) (*Match, error) {
	if rules.Length < words.MinLength || rules.Length > words.MaxLength {
		return nil, ErrBadLength
	}
	if deps.Pick == nil {
		deps.Pick = pickRandom
	}
	m := &Match{ID: uuid.NewString(), deps: deps, rules: rules}
	target, err := m.chooseTarget(ctx, rules.Length)
	if err != nil {
		return nil, err
	}
	m.reset(target)
	log.Debug().Str("gameId", m.ID).Int("length", rules.Length).Msg("match created")
	return m, nil
}

// NewWithTarget creates a match whose first target the caller already chose.
// Restarts still pick through deps.
func NewWithTarget(deps Deps, rules Rules, target game.Word) *Match {
	if deps.Pick == nil {
		deps.Pick = pickRandom
	}
	rules.Length = target.Len()
	m := &Match{ID: uuid.NewString(), deps: deps, rules: rules}
	m.reset(target)
	return m
}

// chooseTarget picks from the source's candidates (static list on failure).
// A pick that is not a word of the requested length is refused.
func (m *Match) chooseTarget(ctx context.Context, length int) (game.Word, error) {
	candidates := words.LoadCandidates(ctx, m.deps.Source, length)
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w %d", words.ErrNoCandidates, length)
	}
	w, err := game.ParseWord(m.deps.Pick(candidates), length)
	if err != nil {
		return "", fmt.Errorf("%w %d: %w", words.ErrNoCandidates, length, err)
	}
	return w, nil
}

// reset installs a fresh session. Caller holds mu (or owns m exclusively).
func (m *Match) reset(target game.Word) {
	m.gen++
	m.session = game.NewSession(target, m.rules.MaxAttempts)
	m.pending = false
	m.asking = false
	m.disclosed = make(map[string]bool)
	m.questions = 0
	m.elevated = false
	m.seq.Reset()
	m.started = time.Now()
}

// SubmitGuess validates raw, scores it and advances the session.
//
// Errors that leave the attempt counter untouched: game.ErrWrongLength,
// game.ErrNotAlpha, ErrGameOver, ErrBusy, ErrNotAWord (validator said no or
// was unreachable) and ErrStale (the match restarted while validating).
func (m *Match) SubmitGuess(ctx context.Context, raw string) (game.GuessRecord, game.Outcome, error) {
	m.mu.Lock()
	if m.session.Outcome.Finished() {
		defer m.mu.Unlock()
		return game.GuessRecord{}, m.session.Outcome, ErrGameOver
	}
	word, err := game.ParseWord(raw, m.session.Length())
	if err != nil {
		defer m.mu.Unlock()
		return game.GuessRecord{}, m.session.Outcome, err
	}
	if m.pending {
		defer m.mu.Unlock()
		return game.GuessRecord{}, m.session.Outcome, ErrBusy
	}
	m.pending = true
	gen := m.gen
	m.mu.Unlock()

	valid, verr := m.deps.Validator.Valid(ctx, word.String())
	if verr != nil {
		log.Warn().Err(verr).Str("gameId", m.ID).Str("word", word.String()).Msg("word validation unavailable; treating as invalid")
		valid = false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		log.Debug().Str("gameId", m.ID).Str("word", word.String()).Msg("discarding stale validation")
		return game.GuessRecord{}, m.session.Outcome, ErrStale
	}
	m.pending = false
	if !valid {
		return game.GuessRecord{}, m.session.Outcome, ErrNotAWord
	}

	rec, err := m.session.Apply(word)
	if err != nil {
		return game.GuessRecord{}, m.session.Outcome, err
	}
	if m.session.Outcome.Finished() {
		log.Info().
			Str("gameId", m.ID).
			Str("state", string(m.session.Outcome)).
			Int("attempts", m.session.Attempt()).
			Dur("elapsed", time.Since(m.started)).
			Msg("game finished")
	}
	return rec, m.session.Outcome, nil
}

// Ask answers a hint question. Questions are allowed while playing, or at
// any time in elevated mode, and each one spends the question budget.
func (m *Match) Ask(ctx context.Context, question string) (Reply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Reply{}, ErrEmptyQuestion
	}

	m.mu.Lock()
	if m.session.Outcome.Finished() && !m.elevated {
		defer m.mu.Unlock()
		return Reply{QuestionsLeft: m.questionsLeft()}, ErrGameOver
	}
	if m.questionsLeft() <= 0 {
		defer m.mu.Unlock()
		return Reply{}, ErrNoQuestionsLeft
	}
	if m.asking {
		defer m.mu.Unlock()
		return Reply{QuestionsLeft: m.questionsLeft()}, ErrBusy
	}
	m.asking = true
	m.questions++
	gen := m.gen
	elevated := m.elevated
	target := m.session.Target.String()
	disclosed := make(map[string]bool, len(m.disclosed))
	for k, v := range m.disclosed {
		disclosed[k] = v
	}
	m.mu.Unlock()

	var clue hints.Clue
	if elevated {
		clue = m.deps.Policy.Elevated(ctx, question, target)
	} else {
		clue = m.deps.Policy.Answer(ctx, hints.Request{Question: question, Target: target, Disclosed: disclosed})
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return Reply{}, ErrStale
	}
	m.asking = false
	if clue.ID != "" {
		m.disclosed[clue.ID] = true
	}
	return Reply{Text: clue.Text, QuestionsLeft: m.questionsLeft()}, nil
}

func (m *Match) questionsLeft() int {
	if n := m.rules.MaxQuestions - m.questions; n > 0 {
		return n
	}
	return 0
}

// MaxKeys bounds one PressKeys call. Each letter past the code length costs
// a bcrypt compare under the match lock.
const MaxKeys = 64

// PressKeys feeds typed keys to the hidden-sequence detector. When the code
// completes, elevated mode switches on and the reveal is returned.
func (m *Match) PressKeys(ctx context.Context, keys string) (bool, *Reveal, error) {
	if len(keys) > MaxKeys {
		return false, nil, ErrTooManyKeys
	}
	m.mu.Lock()
	if m.elevated || !m.seq.Feed(m.deps.Code, keys) {
		defer m.mu.Unlock()
		return m.elevated, nil, nil
	}
	m.elevated = true
	gen := m.gen
	target := m.session.Target.String()
	m.mu.Unlock()

	log.Info().Str("gameId", m.ID).Msg("elevated disclosure activated")
	r := m.reveal(ctx, target)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return false, nil, ErrStale
	}
	return true, &r, nil
}

// Restart replaces the session with a new target of the given length
// (0 keeps the current length). Any pending validation or lookup is
// invalidated.
func (m *Match) Restart(ctx context.Context, length int) (Snapshot, error) {
	if length == 0 {
		m.mu.Lock()
		length = m.rules.Length
		m.mu.Unlock()
	}
	if length < words.MinLength || length > words.MaxLength {
		return Snapshot{}, ErrBadLength
	}
	target, err := m.chooseTarget(ctx, length)
	if err != nil {
		return Snapshot{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules.Length = length
	m.reset(target)
	log.Debug().Str("gameId", m.ID).Int("length", length).Msg("match restarted")
	return m.snapshot(), nil
}

// Reveal returns the target and its definition once the game is over or
// elevated mode is on.
func (m *Match) Reveal(ctx context.Context) (Reveal, error) {
	m.mu.Lock()
	if !m.session.Outcome.Finished() && !m.elevated {
		m.mu.Unlock()
		return Reveal{}, ErrNotRevealed
	}
	target := m.session.Target.String()
	m.mu.Unlock()
	return m.reveal(ctx, target), nil
}

func (m *Match) reveal(ctx context.Context, target string) Reveal {
	return Reveal{Word: target, Definition: define.Text(ctx, m.deps.Definitions, target)}
}

// Snapshot returns a copy of the current state.
func (m *Match) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

func (m *Match) snapshot() Snapshot {
	s := Snapshot{
		ID:            m.ID,
		Length:        m.session.Length(),
		MaxAttempts:   m.session.MaxAttempts,
		Attempt:       m.session.Attempt(),
		State:         m.session.Outcome,
		Guesses:       append([]game.GuessRecord(nil), m.session.Guesses...),
		Keyboard:      m.session.Keyboard(),
		QuestionsLeft: m.questionsLeft(),
		Elevated:      m.elevated,
	}
	if m.session.Outcome.Finished() || m.elevated {
		s.Answer = m.session.Target.String()
	}
	return s
}

// IsInputError reports whether err is a rejection of the player's input
// rather than a server-side failure.
func IsInputError(err error) bool {
	return errors.Is(err, game.ErrWrongLength) || errors.Is(err, game.ErrNotAlpha) || errors.Is(err, ErrNotAWord)
}
