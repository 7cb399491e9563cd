package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hintle/internal/game"
	"github.com/robalobadob/hintle/internal/hints"
	"github.com/robalobadob/hintle/internal/play"
	"github.com/robalobadob/hintle/internal/words"
)

func newMatch(target string) *play.Match {
	deps := play.Deps{Source: words.Static{}, Validator: words.NewListValidator(), Policy: hints.NewPolicy(hints.Lookups{})}
	return play.NewWithTarget(deps, play.Rules{MaxAttempts: 6, MaxQuestions: 20}, game.Word(target))
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore(0)

	m := newMatch("CRANE")

	_, err := s.Get(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, m))
	got, err := s.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Same(t, m, got)
	assert.Equal(t, 1, s.Len())
	assert.Zero(t, s.Sweep(ctx), "no ttl, nothing expires")

	require.NoError(t, s.Delete(ctx, m.ID))
	require.NoError(t, s.Delete(ctx, m.ID))
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	s := newMemory(time.Hour, func() time.Time { return now })

	old, fresh := newMatch("CRANE"), newMatch("SLATE")
	require.NoError(t, s.Save(ctx, old))
	now = now.Add(30 * time.Minute)
	require.NoError(t, s.Save(ctx, fresh))

	now = now.Add(30 * time.Minute)
	_, err := s.Get(ctx, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := s.Get(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Same(t, fresh, got)
	assert.Equal(t, 2, s.Len(), "expired entries stay until swept")

	assert.Equal(t, 1, s.Sweep(ctx))
	assert.Equal(t, 1, s.Len())

	now = now.Add(time.Hour)
	assert.Equal(t, 1, s.Sweep(ctx))
	assert.Equal(t, 0, s.Len())
}
