package play

import "math/rand/v2"

// pickRandom draws uniformly. An empty list yields "", which chooseTarget
// refuses.
func pickRandom(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	return candidates[rand.IntN(len(candidates))]
}
