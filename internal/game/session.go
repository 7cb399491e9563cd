// internal/game/session.go
//
// Session holds the state of a single game: the target, the attempt counter,
// the guess history and the outcome. It performs no I/O; word validation and
// target selection happen in the owning controller (internal/play).

package game

// Session is the pure game state machine.
//
// State transitions:
//   - Apply with guess == target → Won.
//   - Else if the attempt counter reaches MaxAttempts → Lost.
//   - Else → Playing.
type Session struct {
	Target      Word
	MaxAttempts int
	Guesses     []GuessRecord
	Outcome     Outcome
}

// NewSession starts a session in Playing with zero attempts.
func NewSession(target Word, maxAttempts int) *Session {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Session{
		Target:      target,
		MaxAttempts: maxAttempts,
		Guesses:     []GuessRecord{},
		Outcome:     Playing,
	}
}

// Length is the configured word length L.
func (s *Session) Length() int { return s.Target.Len() }

// Attempt is the number of scored guesses so far.
func (s *Session) Attempt() int { return len(s.Guesses) }

// Remaining is the number of guesses left.
func (s *Session) Remaining() int { return s.MaxAttempts - s.Attempt() }

// Apply scores a guess that has already been validated as a dictionary word
// and advances the state machine.
func (s *Session) Apply(guess Word) (GuessRecord, error) {
	if s.Outcome.Finished() {
		return GuessRecord{}, ErrFinished
	}
	if guess.Len() != s.Length() {
		return GuessRecord{}, ErrWrongLength
	}

	rec := GuessRecord{Word: guess, Statuses: Evaluate(guess, s.Target)}
	s.Guesses = append(s.Guesses, rec)

	switch {
	case guess == s.Target:
		s.Outcome = Won
	case s.Attempt() >= s.MaxAttempts:
		s.Outcome = Lost
	}
	return rec, nil
}

// Keyboard folds the guess history into a per-letter status, keeping the
// strongest status seen for each letter (correct > present > absent).
func (s *Session) Keyboard() map[string]Status {
	out := make(map[string]Status)
	for _, g := range s.Guesses {
		for i, st := range g.Statuses {
			l := string(g.Word[i])
			if st.rank() > out[l].rank() {
				out[l] = st
			}
		}
	}
	return out
}
