// Package define looks up short dictionary definitions for target words.
//
// Two HTTP providers are supported: the Free Dictionary API (primary) and
// Merriam-Webster's Collegiate API (secondary, needs a key). Chain tries them
// in order and reports ErrDefinitionUnavailable when none answers.
package define

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 1 << 20

var (
	// ErrDefinitionUnavailable is returned when no provider produced a definition.
	ErrDefinitionUnavailable = errors.New("definition not found")
	// ErrNotFound is returned by a single provider that has no entry for the word.
	ErrNotFound = errors.New("no entry")
)

// Entry is the first sense a provider returned for a word.
type Entry struct {
	Definition   string `json:"definition"`
	PartOfSpeech string `json:"partOfSpeech,omitempty"`
}

// Provider looks up a word.
type Provider interface {
	Define(ctx context.Context, word string) (Entry, error)
}

// Chain tries each provider in order and returns the first success.
//
// When every provider that was asked answered "no entry" (providers without
// credentials are ignored), the error also wraps ErrNotFound so callers can
// tell a missing word from an outage.
type Chain []Provider

// Define implements Provider.
func (c Chain) Define(ctx context.Context, word string) (Entry, error) {
	notFound, failed := false, false
	for i, p := range c {
		e, err := p.Define(ctx, word)
		if err == nil {
			return e, nil
		}
		switch {
		case errors.Is(err, ErrNotFound):
			notFound = true
		case errors.Is(err, errMissingKey):
		default:
			failed = true
		}
		if ctx.Err() != nil {
			failed = true
			break
		}
		log.Debug().Err(err).Int("provider", i).Str("word", word).Msg("definition lookup failed")
	}
	if notFound && !failed {
		return Entry{}, fmt.Errorf("%w for %q: %w", ErrDefinitionUnavailable, word, ErrNotFound)
	}
	return Entry{}, fmt.Errorf("%w for %q", ErrDefinitionUnavailable, word)
}

// Text returns a user-facing definition line for word, or the placeholder
// used when every provider failed.
func Text(ctx context.Context, p Provider, word string) string {
	if p == nil {
		return "Definition not found."
	}
	e, err := p.Define(ctx, word)
	if err != nil || e.Definition == "" {
		return "Definition not found."
	}
	return e.Definition
}

// httpOptions holds the transport settings shared by both HTTP providers.
type httpOptions struct {
	HTTPClient     *http.Client
	Limiter        *rate.Limiter
	RequestTimeout time.Duration
}

func (o httpOptions) client() *http.Client {
	if o.HTTPClient == nil {
		return http.DefaultClient
	}
	return o.HTTPClient
}

func (o httpOptions) wait(ctx context.Context) error {
	if o.Limiter == nil {
		return nil
	}
	if err := o.Limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return nil
}

func (o httpOptions) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.RequestTimeout)
}
