// internal/words/words.go
//
// Word candidates and dictionary validation for the game engine.
//
// Responsibilities:
//   - Define the collaborators the game talks to: Source (candidate targets
//     for a length) and Validator (is this a dictionary word?).
//   - Provide the embedded static list used whenever the remote source fails
//     or comes back empty, so a game can always start.
//   - Provide a list-backed Validator for offline play, optionally extended
//     from a file (WORDS_FILE).
//
// Constraints:
//   • Words are 4–8 alphabetic letters (A–Z).
//   • Lists are normalized to uppercase.

package words

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hintle/assets"
)

const (
	MinLength = 4
	MaxLength = 8
)

var (
	// ErrNoCandidates means a source had no words of the requested length.
	ErrNoCandidates = errors.New("words: no candidates for length")
	// ErrValidationUnavailable means the validator could not reach its backend.
	ErrValidationUnavailable = errors.New("words: validation unavailable")
)

// Source returns candidate target words of exactly length letters, uppercase.
type Source interface {
	Words(ctx context.Context, length int) ([]string, error)
}

// Validator reports whether word is a recognized dictionary word.
type Validator interface {
	Valid(ctx context.Context, word string) (bool, error)
}

// LoadCandidates asks src for words of the given length and falls back to the
// static list when src fails or returns nothing usable.
func LoadCandidates(ctx context.Context, src Source, length int) []string {
	if src != nil {
		list, err := src.Words(ctx, length)
		list = Filter(list, length)
		if err == nil && len(list) > 0 {
			return list
		}
		if err == nil {
			err = ErrNoCandidates
		}
		log.Warn().Err(err).Int("length", length).Msg("word source failed; using static list")
	}
	list, _ := Static{}.Words(ctx, length)
	return list
}

// Filter keeps the entries of list that are exactly length letters A–Z,
// uppercased and de-duplicated, preserving order.
func Filter(list []string, length int) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.ToUpper(strings.TrimSpace(w))
		if len(w) != length || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// --- embedded static list ---

var (
	staticOnce sync.Once
	staticList []string
	staticErr  error
)

func loadStatic() {
	staticList, staticErr = assets.FallbackList()
}

// Static is the embedded fallback list. It never touches the network.
type Static struct{}

// Words returns the embedded words of the given length, or ErrNoCandidates.
func (Static) Words(_ context.Context, length int) ([]string, error) {
	staticOnce.Do(loadStatic)
	if staticErr != nil {
		return nil, fmt.Errorf("read static list: %w", staticErr)
	}
	out := Filter(staticList, length)
	if len(out) == 0 {
		return nil, fmt.Errorf("%w %d", ErrNoCandidates, length)
	}
	return out, nil
}

// ListValidator accepts words found in a fixed set. Safe for concurrent reads.
type ListValidator struct {
	set map[string]struct{}
}

// NewListValidator builds a validator over the static list plus extra.
func NewListValidator(extra ...string) *ListValidator {
	staticOnce.Do(loadStatic)
	v := &ListValidator{set: make(map[string]struct{}, len(staticList)+len(extra))}
	for _, w := range staticList {
		v.set[strings.ToUpper(w)] = struct{}{}
	}
	for _, w := range extra {
		w = strings.ToUpper(strings.TrimSpace(w))
		if isAlpha(w) && w != "" {
			v.set[w] = struct{}{}
		}
	}
	return v
}

// Valid reports whether word is in the set.
func (v *ListValidator) Valid(_ context.Context, word string) (bool, error) {
	_, ok := v.set[strings.ToUpper(word)]
	return ok, nil
}

// Words returns the set's words of the given length, sorted. This lets a
// ListValidator double as an offline Source.
func (v *ListValidator) Words(_ context.Context, length int) ([]string, error) {
	var out []string
	for w := range v.set {
		if len(w) == length {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w %d", ErrNoCandidates, length)
	}
	sort.Strings(out)
	return out, nil
}

// Stats returns the number of words in the set per length.
func (v *ListValidator) Stats() map[int]int {
	out := make(map[int]int)
	for w := range v.set {
		out[len(w)]++
	}
	return out
}

// ReadWordFile loads one word per line from a file, uppercases, trims, and
// keeps only alphabetic words within [MinLength, MaxLength].
func ReadWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToUpper(sc.Text()))
		if len(w) >= MinLength && len(w) <= MaxLength && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
