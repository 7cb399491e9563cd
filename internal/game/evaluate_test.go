package game

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc   string
		target Word
		guess  Word
		want   []Status
	}{
		{
			desc:   "exact match",
			target: "CRANE",
			guess:  "CRANE",
			want:   []Status{Correct, Correct, Correct, Correct, Correct},
		},
		{
			desc:   "single C consumed once",
			target: "CRANE",
			guess:  "TRACE",
			want:   []Status{Absent, Correct, Correct, Present, Correct},
		},
		{
			desc:   "two L's in target both score",
			target: "ALLOY",
			guess:  "LLAMA",
			want:   []Status{Present, Correct, Present, Absent, Absent},
		},
		{
			desc:   "one L in target scores once",
			target: "ALOFT",
			guess:  "LLAMA",
			want:   []Status{Absent, Correct, Present, Absent, Absent},
		},
		{
			desc:   "correct position wins over earlier present",
			target: "ABBEY",
			guess:  "BOBBY",
			want:   []Status{Present, Absent, Correct, Absent, Correct},
		},
		{
			desc:   "nothing in common",
			target: "CRANE",
			guess:  "MOULD",
			want:   []Status{Absent, Absent, Absent, Absent, Absent},
		},
		{
			desc:   "length mismatch is all absent",
			target: "CRANE",
			guess:  "CRAN",
			want:   []Status{Absent, Absent, Absent, Absent},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			got := Evaluate(tc.guess, tc.target)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Evaluate(%s, %s) mismatch (-want +got):\n%s", tc.guess, tc.target, diff)
			}
		})
	}
}

func TestEvaluate_NeverOvercountsLetters(t *testing.T) {
	t.Parallel()

	// A small alphabet forces lots of repeated letters.
	const alphabet = "ABCDE"
	rng := rand.New(rand.NewPCG(7, 11))
	randomWord := func(n int) Word {
		b := make([]byte, n)
		for i := range b {
			b[i] = alphabet[rng.IntN(len(alphabet))]
		}
		return Word(b)
	}

	for i := 0; i < 2000; i++ {
		n := 4 + rng.IntN(5)
		target, guess := randomWord(n), randomWord(n)
		statuses := Evaluate(guess, target)

		scored := map[byte]int{}
		inTarget := map[byte]int{}
		for j := 0; j < n; j++ {
			inTarget[target[j]]++
			if statuses[j] != Absent {
				scored[guess[j]]++
			}
			if statuses[j] == Correct {
				assert.Equal(t, target[j], guess[j])
			}
		}
		for l, c := range scored {
			assert.LessOrEqualf(t, c, inTarget[l], "guess %s target %s letter %c", guess, target, l)
		}
	}
}

func TestAllCorrect(t *testing.T) {
	t.Parallel()
	assert.True(t, AllCorrect([]Status{Correct, Correct}))
	assert.False(t, AllCorrect([]Status{Correct, Present}))
	assert.False(t, AllCorrect(nil))
}
