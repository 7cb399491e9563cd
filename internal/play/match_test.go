package play

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hintle/internal/define"
	"github.com/robalobadob/hintle/internal/game"
	"github.com/robalobadob/hintle/internal/hints"
	"github.com/robalobadob/hintle/internal/words"
)

var testRules = Rules{Length: 5, MaxAttempts: 6, MaxQuestions: 20}

func testCode(t *testing.T) hints.Code {
	t.Helper()
	c, err := hints.NewCode(hints.DefaultCode)
	require.NoError(t, err)
	return c
}

func newTestMatch(t *testing.T, v words.Validator, defs define.Provider, target game.Word) *Match {
	t.Helper()
	deps := Deps{
		Source:      words.Static{},
		Validator:   v,
		Definitions: defs,
		Policy:      hints.NewPolicy(hints.Lookups{Definitions: defs}),
		Code:        testCode(t),
	}
	return NewWithTarget(deps, testRules, target)
}

func acceptAll() *MockValidator {
	v := &MockValidator{}
	v.On("Valid", mock.Anything, mock.Anything).Return(true, nil)
	return v
}

func TestNew_PicksFromSourceWithFallback(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src := &MockSource{}
	src.On("Words", ctx, 5).Return([]string{"crane"}, nil).Once()
	src.On("Words", ctx, 6).Return([]string(nil), errors.New("down")).Once()

	deps := Deps{Source: src, Validator: acceptAll(), Policy: hints.NewPolicy(hints.Lookups{})}
	m, err := New(ctx, deps, testRules)
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, game.Word("CRANE"), m.session.Target)

	snap, err := m.Restart(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, snap.Length)
	static, _ := words.Static{}.Words(ctx, 6)
	assert.Contains(t, static, m.session.Target.String())
	src.AssertExpectations(t)

	_, err = New(ctx, deps, Rules{Length: 3, MaxAttempts: 6})
	assert.ErrorIs(t, err, ErrBadLength)
}

func TestSubmitGuess_WinsOnTarget(t *testing.T) {
	t.Parallel()
	m := newTestMatch(t, acceptAll(), nil, "CRANE")
	ctx := context.Background()

	rec, state, err := m.SubmitGuess(ctx, "trace")
	require.NoError(t, err)
	assert.Equal(t, game.Playing, state)
	assert.Equal(t, game.Word("TRACE"), rec.Word)

	rec, state, err = m.SubmitGuess(ctx, "CRANE")
	require.NoError(t, err)
	assert.Equal(t, game.Won, state)
	assert.True(t, game.AllCorrect(rec.Statuses))

	_, _, err = m.SubmitGuess(ctx, "SLATE")
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, 2, m.Snapshot().Attempt)
	assert.Equal(t, "CRANE", m.Snapshot().Answer)
}

func TestSubmitGuess_LostAfterMaxAttempts(t *testing.T) {
	t.Parallel()
	m := newTestMatch(t, acceptAll(), nil, "CRANE")
	ctx := context.Background()

	var state game.Outcome
	for i := 0; i < testRules.MaxAttempts; i++ {
		var err error
		_, state, err = m.SubmitGuess(ctx, "SLATE")
		require.NoError(t, err)
	}
	assert.Equal(t, game.Lost, state)
	assert.Equal(t, testRules.MaxAttempts, m.Snapshot().Attempt)
}

func TestSubmitGuess_InvalidWordsKeepAttempts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	v := &MockValidator{}
	v.On("Valid", mock.Anything, "XQZVW").Return(false, nil)
	v.On("Valid", mock.Anything, "SLATE").Return(false, words.ErrValidationUnavailable)
	m := newTestMatch(t, v, nil, "CRANE")

	testCases := []struct {
		guess string
		err   error
	}{
		{"xqzvw", ErrNotAWord},
		{"slate", ErrNotAWord},
		{"cran", game.ErrWrongLength},
		{"cr4ne", game.ErrNotAlpha},
	}
	for _, tc := range testCases {
		_, state, err := m.SubmitGuess(ctx, tc.guess)
		assert.ErrorIs(t, err, tc.err, tc.guess)
		assert.Equal(t, game.Playing, state)
	}
	assert.Equal(t, 0, m.Snapshot().Attempt)
	assert.True(t, IsInputError(ErrNotAWord))
}

func TestSubmitGuess_OverlappingSubmissionIsBusy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	v := newBlockingValidator(true)
	m := newTestMatch(t, v, nil, "CRANE")

	done := make(chan error, 1)
	go func() {
		_, _, err := m.SubmitGuess(ctx, "SLATE")
		done <- err
	}()
	<-v.called

	_, _, err := m.SubmitGuess(ctx, "TRACE")
	assert.ErrorIs(t, err, ErrBusy)

	close(v.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, m.Snapshot().Attempt)
}

func TestSubmitGuess_StaleValidationIsDiscarded(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	v := newBlockingValidator(true)
	m := newTestMatch(t, v, nil, "CRANE")

	done := make(chan error, 1)
	go func() {
		_, _, err := m.SubmitGuess(ctx, "SLATE")
		done <- err
	}()
	<-v.called

	_, err := m.Restart(ctx, 0)
	require.NoError(t, err)
	close(v.release)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrStale)
	case <-time.After(time.Second):
		t.Fatal("submission never returned")
	}
	snap := m.Snapshot()
	assert.Equal(t, 0, snap.Attempt)
	assert.Empty(t, snap.Guesses)

	// The restart cleared the pending flag, so the new session accepts guesses.
	rec, _, err := m.SubmitGuess(ctx, "TRACE")
	require.NoError(t, err)
	assert.Equal(t, game.Word("TRACE"), rec.Word)
}

func TestAsk_BudgetAndDisclosure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := newTestMatch(t, acceptAll(), nil, "CRANE")
	m.rules.MaxQuestions = 3

	r, err := m.Ask(ctx, "first letter?")
	require.NoError(t, err)
	assert.Equal(t, `The first letter is "C".`, r.Text)
	assert.Equal(t, 2, r.QuestionsLeft)

	r, err = m.Ask(ctx, "first letter?")
	require.NoError(t, err)
	assert.NotEqual(t, `The first letter is "C".`, r.Text, "disclosed clue is not repeated")
	assert.Equal(t, 1, r.QuestionsLeft)

	_, err = m.Ask(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)

	_, err = m.Ask(ctx, "anything")
	require.NoError(t, err)
	_, err = m.Ask(ctx, "anything")
	assert.ErrorIs(t, err, ErrNoQuestionsLeft)
}

func TestAsk_NoRepeatsAcrossSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := newTestMatch(t, acceptAll(), nil, "CRANE")

	seen := map[string]bool{}
	for i := 0; i < 8; i++ {
		r, err := m.Ask(ctx, "give me a clue")
		require.NoError(t, err)
		assert.False(t, seen[r.Text], "repeated %q", r.Text)
		seen[r.Text] = true
	}
	r, err := m.Ask(ctx, "give me a clue")
	require.NoError(t, err)
	assert.Equal(t, hints.NoMoreClues, r.Text)
}

func TestAsk_AfterGameOver(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := newTestMatch(t, acceptAll(), nil, "CRANE")

	_, _, err := m.SubmitGuess(ctx, "CRANE")
	require.NoError(t, err)
	_, err = m.Ask(ctx, "first letter?")
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestPressKeys_ElevatedMode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	defs := &MockDefinitions{}
	defs.On("Define", mock.Anything, "CRANE").Return(define.Entry{Definition: "a large bird"}, nil)
	m := newTestMatch(t, acceptAll(), defs, "CRANE")

	_, err := m.Reveal(ctx)
	assert.ErrorIs(t, err, ErrNotRevealed)

	on, rev, err := m.PressKeys(ctx, "idb")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Nil(t, rev)

	on, rev, err = m.PressKeys(ctx, "fg")
	require.NoError(t, err)
	assert.True(t, on)
	require.NotNil(t, rev)
	assert.Equal(t, Reveal{Word: "CRANE", Definition: "a large bird"}, *rev)

	r, err := m.Ask(ctx, "what is it?")
	require.NoError(t, err)
	assert.Equal(t, `Elevated mode is on. The word is "CRANE".`, r.Text)

	r, err = m.Ask(ctx, "def")
	require.NoError(t, err)
	assert.Equal(t, `Definition of "CRANE": a large bird`, r.Text)

	assert.Equal(t, "CRANE", m.Snapshot().Answer)

	// Restart drops elevated mode and clears disclosures and the budget.
	snap, err := m.Restart(ctx, 5)
	require.NoError(t, err)
	assert.False(t, snap.Elevated)
	assert.Empty(t, snap.Answer)
	assert.Equal(t, testRules.MaxQuestions, snap.QuestionsLeft)
	assert.Equal(t, 0, snap.Attempt)
}

func TestRestart_ClearsDisclosedClues(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := newTestMatch(t, acceptAll(), nil, "CRANE")

	_, err := m.Ask(ctx, "first letter?")
	require.NoError(t, err)
	_, _, err = m.SubmitGuess(ctx, "SLATE")
	require.NoError(t, err)

	_, err = m.Restart(ctx, 0)
	require.NoError(t, err)

	m.mu.Lock()
	assert.Empty(t, m.disclosed)
	assert.Equal(t, 0, m.session.Attempt())
	m.mu.Unlock()

	_, err = m.Restart(ctx, 12)
	assert.ErrorIs(t, err, ErrBadLength)
}

func TestReveal_AfterLossUsesPlaceholder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	defs := &MockDefinitions{}
	defs.On("Define", mock.Anything, "CRANE").Return(define.Entry{}, define.ErrDefinitionUnavailable)
	m := newTestMatch(t, acceptAll(), defs, "CRANE")
	m.rules.MaxAttempts = 1
	m.session.MaxAttempts = 1

	_, state, err := m.SubmitGuess(ctx, "SLATE")
	require.NoError(t, err)
	require.Equal(t, game.Lost, state)

	rev, err := m.Reveal(ctx)
	require.NoError(t, err)
	assert.Equal(t, Reveal{Word: "CRANE", Definition: "Definition not found."}, rev)
}

func TestNew_RefusesUnusablePick(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, pick := range map[string]func([]string) string{
		"empty":        func([]string) string { return "" },
		"wrong length": func([]string) string { return "CRANE" },
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			deps := Deps{Source: words.Static{}, Validator: acceptAll(), Policy: hints.NewPolicy(hints.Lookups{}), Pick: pick}
			_, err := New(ctx, deps, Rules{Length: 6, MaxAttempts: 6})
			assert.ErrorIs(t, err, words.ErrNoCandidates)
		})
	}

	assert.Empty(t, pickRandom(nil))
}

func TestAsk_OverlappingQuestionIsBusy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	policy, called, release := slowPolicy()
	m := NewWithTarget(Deps{Source: words.Static{}, Validator: acceptAll(), Policy: policy}, testRules, "CRANE")

	done := make(chan Reply, 1)
	go func() {
		r, err := m.Ask(ctx, "anything?")
		assert.NoError(t, err)
		done <- r
	}()
	<-called

	r, err := m.Ask(ctx, "anything else?")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, testRules.MaxQuestions-1, r.QuestionsLeft, "a refused question is not charged")

	close(release)
	first := <-done
	assert.Equal(t, "slow clue", first.Text)

	// The slow clue is now disclosed, so the next draw moves on.
	r, err = m.Ask(ctx, "and now?")
	require.NoError(t, err)
	assert.Equal(t, "other clue", r.Text)
	assert.Equal(t, testRules.MaxQuestions-2, r.QuestionsLeft)
}

func TestAsk_StaleAfterRestart(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	policy, called, release := slowPolicy()
	m := NewWithTarget(Deps{Source: words.Static{}, Validator: acceptAll(), Policy: policy}, testRules, "CRANE")

	done := make(chan error, 1)
	go func() {
		_, err := m.Ask(ctx, "anything?")
		done <- err
	}()
	<-called

	_, err := m.Restart(ctx, 0)
	require.NoError(t, err)
	close(release)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrStale)
	case <-time.After(time.Second):
		t.Fatal("question never returned")
	}

	m.mu.Lock()
	assert.Empty(t, m.disclosed, "a stale clue is not recorded against the new word")
	m.mu.Unlock()
	assert.Equal(t, testRules.MaxQuestions, m.Snapshot().QuestionsLeft)

	// The restart cleared the in-flight flag.
	r, err := m.Ask(ctx, "again?")
	require.NoError(t, err)
	assert.Equal(t, "slow clue", r.Text)
}

func TestPressKeys_StaleAfterRestart(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	defs := newBlockingDefinitions()
	m := newTestMatch(t, acceptAll(), defs, "CRANE")

	type result struct {
		on  bool
		rev *Reveal
		err error
	}
	done := make(chan result, 1)
	go func() {
		on, rev, err := m.PressKeys(ctx, hints.DefaultCode)
		done <- result{on, rev, err}
	}()
	<-defs.called

	_, err := m.Restart(ctx, 0)
	require.NoError(t, err)
	close(defs.release)

	select {
	case res := <-done:
		assert.ErrorIs(t, res.err, ErrStale)
		assert.False(t, res.on)
		assert.Nil(t, res.rev)
	case <-time.After(time.Second):
		t.Fatal("key press never returned")
	}
	assert.False(t, m.Snapshot().Elevated)
}

func TestPressKeys_TooManyKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := newTestMatch(t, acceptAll(), nil, "CRANE")

	_, _, err := m.PressKeys(ctx, strings.Repeat("a", MaxKeys+1))
	assert.ErrorIs(t, err, ErrTooManyKeys)

	// The refused press left the window untouched.
	on, _, err := m.PressKeys(ctx, strings.Repeat("a", MaxKeys-len(hints.DefaultCode))+hints.DefaultCode)
	require.NoError(t, err)
	assert.True(t, on)
}
