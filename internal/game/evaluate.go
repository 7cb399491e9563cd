// internal/game/evaluate.go
//
// Guess evaluation using the classic two-pass algorithm.
//
// Pass 1:
//   - Mark exact matches Correct.
//   - Count the remaining (non-correct) target letters.
//
// Pass 2:
//   - Scan the remaining guess letters left to right: if the letter still has
//     a remaining count, mark Present and consume one occurrence; otherwise
//     mark Absent.
//
// Consuming one occurrence per match keeps repeated guess letters from
// scoring more often than the letter appears in the target.

package game

// Evaluate scores guess against target. Both must have the same length and be
// uppercase A–Z (see ParseWord); a length mismatch yields all Absent.
func Evaluate(guess, target Word) []Status {
	n := len(guess)
	res := make([]Status, n)
	if len(target) != n {
		for i := range res {
			res[i] = Absent
		}
		return res
	}

	// Letter frequency for the non-correct target positions (A–Z).
	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == target[i] {
			res[i] = Correct
		} else if j := idx(target[i]); j >= 0 {
			counts[j]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == Correct {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && counts[j] > 0 {
			res[i] = Present
			counts[j]--
		} else {
			res[i] = Absent
		}
	}
	return res
}

// AllCorrect reports whether every status is Correct.
func AllCorrect(statuses []Status) bool {
	for _, s := range statuses {
		if s != Correct {
			return false
		}
	}
	return len(statuses) > 0
}

// idx maps an uppercase ASCII letter to 0..25, or -1.
func idx(b byte) int {
	if b < 'A' || b > 'Z' {
		return -1
	}
	return int(b - 'A')
}
