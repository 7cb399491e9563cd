package define

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const MerriamWebsterBaseURL = "https://www.dictionaryapi.com/api/v3/references/collegiate/json"

var errMissingKey = errors.New("merriam-webster: api key not configured")

// MerriamWebster queries the Collegiate Dictionary API. Without an APIKey it
// fails immediately so a Chain moves on.
type MerriamWebster struct {
	BaseURL        string
	APIKey         string
	HTTPClient     *http.Client
	Limiter        *rate.Limiter
	RequestTimeout time.Duration
}

// Define returns shortdef[0] and the functional label of the first entry.
func (m *MerriamWebster) Define(ctx context.Context, word string) (Entry, error) {
	if m.APIKey == "" {
		return Entry{}, errMissingKey
	}
	opts := httpOptions{HTTPClient: m.HTTPClient, Limiter: m.Limiter, RequestTimeout: m.RequestTimeout}
	if err := opts.wait(ctx); err != nil {
		return Entry{}, err
	}
	base := m.BaseURL
	if base == "" {
		base = MerriamWebsterBaseURL
	}
	q := url.Values{}
	q.Set("key", m.APIKey)
	endpoint := strings.TrimRight(base, "/") + "/" + url.PathEscape(strings.ToLower(word)) + "?" + q.Encode()

	reqCtx, cancel := opts.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("create merriam-webster request: %w", err)
	}
	resp, err := opts.client().Do(req)
	if err != nil {
		return Entry{}, fmt.Errorf("merriam-webster request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Entry{}, fmt.Errorf("merriam-webster request: unexpected status %d", resp.StatusCode)
	}

	// Unknown words come back as a list of spelling suggestions (strings), so
	// decode loosely and inspect the first element.
	var raw []json.RawMessage
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&raw); err != nil {
		return Entry{}, fmt.Errorf("decode merriam-webster response: %w", err)
	}
	if len(raw) == 0 {
		return Entry{}, ErrNotFound
	}
	var first struct {
		ShortDef []string `json:"shortdef"`
		FL       string   `json:"fl"`
	}
	if err := json.Unmarshal(raw[0], &first); err != nil || len(first.ShortDef) == 0 {
		return Entry{}, ErrNotFound
	}
	return Entry{Definition: first.ShortDef[0], PartOfSpeech: first.FL}, nil
}
