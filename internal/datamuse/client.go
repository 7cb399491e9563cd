// Package datamuse talks to the Datamuse word-finding API. It serves as the
// remote word source, dictionary validator and rhyme lookup for the game.
package datamuse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/robalobadob/hintle/internal/words"
)

const (
	DefaultBaseURL   = "https://api.datamuse.com"
	maxResponseBytes = 1 << 20
	maxCandidates    = 1000
)

// Client is a Datamuse API client. The zero value uses DefaultBaseURL,
// http.DefaultClient, no rate limit and no per-request timeout.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	Limiter        *rate.Limiter
	RequestTimeout time.Duration
}

type item struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// Words returns up to 1000 words matching a pattern of length wildcards,
// filtered to plain letters and uppercased.
func (c *Client) Words(ctx context.Context, length int) ([]string, error) {
	q := url.Values{}
	q.Set("sp", strings.Repeat("?", length))
	q.Set("max", strconv.Itoa(maxCandidates))

	items, err := c.query(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Word)
	}
	out = words.Filter(out, length)
	if len(out) == 0 {
		return nil, fmt.Errorf("%w %d", words.ErrNoCandidates, length)
	}
	return out, nil
}

// Valid reports whether word is spelled exactly as a Datamuse entry.
// Transport and decoding failures are wrapped in words.ErrValidationUnavailable.
func (c *Client) Valid(ctx context.Context, word string) (bool, error) {
	q := url.Values{}
	q.Set("sp", strings.ToLower(word))
	q.Set("max", "1")

	items, err := c.query(ctx, q)
	if err != nil {
		return false, fmt.Errorf("%w: %w", words.ErrValidationUnavailable, err)
	}
	for _, it := range items {
		if strings.EqualFold(it.Word, word) {
			return true, nil
		}
	}
	return false, nil
}

// Rhymes returns up to five single-word perfect rhymes for word, uppercased.
func (c *Client) Rhymes(ctx context.Context, word string) ([]string, error) {
	q := url.Values{}
	q.Set("rel_rhy", strings.ToLower(word))
	q.Set("max", "5")

	items, err := c.query(ctx, q)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, it := range items {
		w := strings.ToUpper(it.Word)
		if w != "" && !strings.ContainsAny(w, " -") {
			out = append(out, w)
		}
	}
	return out, nil
}

func (c *Client) query(ctx context.Context, q url.Values) ([]item, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	endpoint := strings.TrimRight(c.baseURL(), "/") + "/words?" + q.Encode()

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create datamuse request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("datamuse request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("datamuse request: unexpected status %d", resp.StatusCode)
	}

	var items []item
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode datamuse response: %w", err)
	}
	return items, nil
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.RequestTimeout)
}
