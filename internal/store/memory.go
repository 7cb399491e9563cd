// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Matches live only as long as the process does; nothing is persisted.
//
// Characteristics:
//   - Stores *play.Match objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Each match expires ttl after it was saved, the same lifetime as the
//     token that names it. Expired matches are invisible to Get and are
//     dropped by Sweep.
//   - Errors are returned for missing or expired match IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/hintle/internal/play"
)

// ErrNotFound is returned by Get for an unknown or expired ID.
var ErrNotFound = errors.New("not found")

// Store defines the registry interface for live matches.
type Store interface {
	// Save adds or replaces a match and restarts its lifetime.
	Save(ctx context.Context, m *play.Match) error

	// Get retrieves a match by ID.
	// Returns ErrNotFound if the match is unknown or expired.
	Get(ctx context.Context, id string) (*play.Match, error)

	// Delete forgets a match. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Sweep deletes every expired match and reports how many went.
	Sweep(ctx context.Context) int

	// Len reports how many matches are held, expired ones included until
	// the next Sweep.
	Len() int
}

type entry struct {
	match   *play.Match
	expires time.Time // zero: never
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex     // guards matches map
	matches map[string]entry // keyed by Match.ID
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore constructs a new in-memory Store whose matches expire ttl
// after they were saved. A ttl of zero keeps them until deleted.
func NewMemoryStore(ttl time.Duration) Store {
	return newMemory(ttl, time.Now)
}

func newMemory(ttl time.Duration, now func() time.Time) *memory {
	return &memory{matches: make(map[string]entry), ttl: ttl, now: now}
}

// Save stores g under g.ID.
func (m *memory) Save(ctx context.Context, g *play.Match) error {
	e := entry{match: g}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches[g.ID] = e
	return nil
}

// Get returns the live match for id.
func (m *memory) Get(ctx context.Context, id string) (*play.Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.matches[id]; ok && !m.expired(e) {
		return e.match, nil
	}
	return nil, ErrNotFound
}

// Delete removes id.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.matches, id)
	return nil
}

// Sweep removes expired matches.
func (m *memory) Sweep(ctx context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.matches {
		if m.expired(e) {
			delete(m.matches, id)
			n++
		}
	}
	return n
}

// Len returns the number of held matches.
func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matches)
}

func (m *memory) expired(e entry) bool {
	return !e.expires.IsZero() && !m.now().Before(e.expires)
}
