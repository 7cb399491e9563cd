package hints

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCode is the key sequence that switches on elevated-disclosure mode
// when no code is configured.
const DefaultCode = "idbfg"

// Code is the hidden key sequence, held only as a bcrypt hash. It is immutable
// and can be shared by every match.
type Code struct {
	hash   []byte
	length int
}

// NewCode hashes plain at bcrypt.MinCost. The hash is compared on every
// keystroke once the window is full, so it has to stay cheap.
func NewCode(plain string) (Code, error) {
	plain = strings.ToLower(plain)
	if plain == "" || !isLowerAlpha(plain) {
		return Code{}, errors.New("elevated code must be letters only")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		return Code{}, fmt.Errorf("hash elevated code: %w", err)
	}
	return Code{hash: h, length: len(plain)}, nil
}

// CodeFromHash builds a Code from an existing bcrypt hash of a code that is
// length letters long.
func CodeFromHash(hash string, length int) (Code, error) {
	if length <= 0 {
		return Code{}, errors.New("elevated code length must be positive")
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return Code{}, fmt.Errorf("elevated code hash: %w", err)
	}
	return Code{hash: []byte(hash), length: length}, nil
}

// Sequence tracks the most recent letters typed in one match. The zero value
// is ready to use. Not safe for concurrent use; the owning match serialises it.
type Sequence struct {
	window []byte
}

// Feed appends the letters of keys (other characters are ignored) and
// reports whether the code was completed. The window is cleared on a match.
func (s *Sequence) Feed(c Code, keys string) bool {
	if c.length == 0 {
		return false
	}
	for _, r := range strings.ToLower(keys) {
		if r < 'a' || r > 'z' {
			continue
		}
		s.window = append(s.window, byte(r))
		if len(s.window) > c.length {
			s.window = s.window[len(s.window)-c.length:]
		}
		if len(s.window) == c.length && bcrypt.CompareHashAndPassword(c.hash, s.window) == nil {
			s.window = s.window[:0]
			return true
		}
	}
	return false
}

// Reset clears the window.
func (s *Sequence) Reset() { s.window = s.window[:0] }

func isLowerAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
