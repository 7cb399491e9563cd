package hints

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hintle/internal/define"
)

type MockRhymer struct{ mock.Mock }

func (m *MockRhymer) Rhymes(ctx context.Context, word string) ([]string, error) {
	args := m.Called(ctx, word)
	return args.Get(0).([]string), args.Error(1)
}

type MockDefinitions struct{ mock.Mock }

func (m *MockDefinitions) Define(ctx context.Context, word string) (define.Entry, error) {
	args := m.Called(ctx, word)
	return args.Get(0).(define.Entry), args.Error(1)
}

// firstOpen always picks the first remaining template.
func firstOpen(int) int { return 0 }

func TestAnswer_Rules(t *testing.T) {
	t.Parallel()
	p := &Policy{Rules: DefaultRules(), Pool: DefaultPool(), IntN: firstOpen}
	ctx := context.Background()

	testCases := []struct {
		question string
		want     Clue
	}{
		{"What is the FIRST LETTER?", Clue{ID: "first-letter", Text: `The first letter is "C".`}},
		{"last letter please", Clue{ID: "last-letter", Text: `The last letter is "E".`}},
		{"number of vowels?", Clue{ID: "vowels", Text: "The word has 2 vowel(s)."}},
		{"number of consonants?", Clue{ID: "consonants", Text: "The word has 3 consonant(s)."}},
		{"Does it contains the letter r?", Clue{ID: "contains:R", Text: `Yes, the word contains the letter "R".`}},
		{"it contains the letter z", Clue{ID: "contains:Z", Text: `No, the word does not contain the letter "Z".`}},
		{"contains the letter", Clue{Text: "Please specify the letter you're asking about."}},
		{"what's the meaning?", Clue{Text: "I'm sorry, I cannot provide definitions during the game."}},
		{"definition pls", Clue{Text: "I'm sorry, I cannot provide definitions during the game."}},
		{"help me", Clue{ID: "first-letter", Text: `The word starts with "C".`}},
	}

	for _, tc := range testCases {
		t.Run(tc.question, func(t *testing.T) {
			t.Parallel()
			got := p.Answer(ctx, Request{Question: tc.question, Target: "crane"})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAnswer_DisclosedRuleFallsBackToPool(t *testing.T) {
	t.Parallel()
	p := &Policy{Rules: DefaultRules(), Pool: DefaultPool(), IntN: firstOpen}

	got := p.Answer(context.Background(), Request{
		Question:  "first letter?",
		Target:    "CRANE",
		Disclosed: map[string]bool{"first-letter": true},
	})
	assert.Equal(t, Clue{ID: "last-letter", Text: `The word ends with "E".`}, got)
}

func TestAnswer_PoolNeverRepeatsUntilExhausted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	rhymer := &MockRhymer{}
	rhymer.On("Rhymes", mock.Anything, "CRANE").Return([]string{"CRANE", "plane"}, nil)
	defs := &MockDefinitions{}
	defs.On("Define", mock.Anything, "CRANE").Return(define.Entry{Definition: "a bird", PartOfSpeech: "noun"}, nil)

	p := NewPolicy(Lookups{Definitions: defs, Rhymes: rhymer})
	disclosed := map[string]bool{}
	texts := map[string]bool{}

	for i := 0; i < len(p.Pool); i++ {
		c := p.Answer(ctx, Request{Question: "any clue?", Target: "CRANE", Disclosed: disclosed})
		require.NotEmpty(t, c.ID, "draw %d", i)
		assert.False(t, disclosed[c.ID], "template %s repeated", c.ID)
		assert.False(t, texts[c.Text])
		disclosed[c.ID] = true
		texts[c.Text] = true
	}
	assert.True(t, texts[`The word rhymes with "PLANE".`])
	assert.True(t, texts[`The word is a type of "noun".`])

	c := p.Answer(ctx, Request{Question: "any clue?", Target: "CRANE", Disclosed: disclosed})
	assert.Equal(t, Clue{Text: NoMoreClues}, c)
}

func TestAnswer_UnavailableLookupsAreSkipped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	rhymer := &MockRhymer{}
	rhymer.On("Rhymes", mock.Anything, "CRANE").Return([]string(nil), errors.New("down"))
	p := NewPolicy(Lookups{Rhymes: rhymer})

	disclosed := map[string]bool{}
	for i := 0; i < len(p.Pool)-2; i++ {
		c := p.Answer(ctx, Request{Target: "CRANE", Disclosed: disclosed})
		require.NotEmpty(t, c.ID)
		require.NotEqual(t, "rhyme", c.ID)
		require.NotEqual(t, "word-type", c.ID)
		disclosed[c.ID] = true
	}
	assert.Equal(t, NoMoreClues, p.Answer(ctx, Request{Target: "CRANE", Disclosed: disclosed}).Text)
	assert.False(t, disclosed["rhyme"])
}

func TestElevated(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	defs := &MockDefinitions{}
	defs.On("Define", ctx, "CRANE").Return(define.Entry{Definition: "a bird"}, nil).Once()
	defs.On("Define", ctx, "SLATE").Return(define.Entry{}, define.ErrDefinitionUnavailable).Once()
	p := NewPolicy(Lookups{Definitions: defs})

	assert.Equal(t, `Elevated mode is on. The word is "CRANE".`, p.Elevated(ctx, "what is it", "crane").Text)
	assert.Equal(t, `Definition of "CRANE": a bird`, p.Elevated(ctx, "def?", "CRANE").Text)
	assert.Equal(t, `Definition not found for "SLATE".`, p.Elevated(ctx, "Definition", "SLATE").Text)
	defs.AssertExpectations(t)
}

func TestScrabbleScore(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 7, ScrabbleScore("CRANE"))
	assert.Equal(t, 22, ScrabbleScore("quiz"))
}
