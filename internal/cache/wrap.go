package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hintle/internal/define"
	"github.com/robalobadob/hintle/internal/words"
)

// Definitions wraps p so successful lookups and confirmed "no entry" answers
// are served from the store. Provider errors are never cached.
func Definitions(p define.Provider, s *Store) define.Provider {
	if s == nil {
		return p
	}
	return &cachedDefinitions{next: p, store: s}
}

type cachedDefinitions struct {
	next  define.Provider
	store *Store
}

func (c *cachedDefinitions) Define(ctx context.Context, word string) (define.Entry, error) {
	key := strings.ToUpper(word)
	if r, ok, err := c.store.Get(ctx, KindDefinition, key); err != nil {
		log.Warn().Err(err).Str("word", key).Msg("definition cache read")
	} else if ok {
		if !r.Found {
			return define.Entry{}, fmt.Errorf("%w for %q: %w", define.ErrDefinitionUnavailable, word, define.ErrNotFound)
		}
		var e define.Entry
		if err := json.Unmarshal([]byte(r.Value), &e); err == nil {
			return e, nil
		}
	}

	e, err := c.next.Define(ctx, word)
	switch {
	case err == nil:
		b, _ := json.Marshal(e)
		c.put(ctx, key, Record{Value: string(b), Found: true})
	case errors.Is(err, define.ErrNotFound):
		c.put(ctx, key, Record{Found: false})
	}
	return e, err
}

func (c *cachedDefinitions) put(ctx context.Context, key string, r Record) {
	if err := c.store.Put(ctx, KindDefinition, key, r); err != nil {
		log.Warn().Err(err).Str("word", key).Msg("definition cache write")
	}
}

// Validations wraps v so verdicts (positive and negative) are served from the
// store. Errors from v are passed through and not cached.
func Validations(v words.Validator, s *Store) words.Validator {
	if s == nil {
		return v
	}
	return &cachedValidations{next: v, store: s}
}

type cachedValidations struct {
	next  words.Validator
	store *Store
}

func (c *cachedValidations) Valid(ctx context.Context, word string) (bool, error) {
	key := strings.ToUpper(word)
	if r, ok, err := c.store.Get(ctx, KindValidation, key); err != nil {
		log.Warn().Err(err).Str("word", key).Msg("validation cache read")
	} else if ok {
		return r.Found, nil
	}

	valid, err := c.next.Valid(ctx, word)
	if err != nil {
		return false, err
	}
	if err := c.store.Put(ctx, KindValidation, key, Record{Found: valid}); err != nil {
		log.Warn().Err(err).Str("word", key).Msg("validation cache write")
	}
	return valid, nil
}
