package define

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const DictionaryAPIBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// DictionaryAPI queries the Free Dictionary API.
type DictionaryAPI struct {
	BaseURL        string
	HTTPClient     *http.Client
	Limiter        *rate.Limiter
	RequestTimeout time.Duration
}

type dictionaryEntry struct {
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Define returns the first definition of the first meaning.
func (d *DictionaryAPI) Define(ctx context.Context, word string) (Entry, error) {
	opts := httpOptions{HTTPClient: d.HTTPClient, Limiter: d.Limiter, RequestTimeout: d.RequestTimeout}
	if err := opts.wait(ctx); err != nil {
		return Entry{}, err
	}
	base := d.BaseURL
	if base == "" {
		base = DictionaryAPIBaseURL
	}
	endpoint := strings.TrimRight(base, "/") + "/" + url.PathEscape(strings.ToLower(word))

	reqCtx, cancel := opts.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("create dictionaryapi request: %w", err)
	}
	resp, err := opts.client().Do(req)
	if err != nil {
		return Entry{}, fmt.Errorf("dictionaryapi request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return Entry{}, ErrNotFound
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Entry{}, fmt.Errorf("dictionaryapi request: unexpected status %d", resp.StatusCode)
	}

	var entries []dictionaryEntry
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&entries); err != nil {
		return Entry{}, fmt.Errorf("decode dictionaryapi response: %w", err)
	}
	if len(entries) == 0 || len(entries[0].Meanings) == 0 || len(entries[0].Meanings[0].Definitions) == 0 {
		return Entry{}, ErrNotFound
	}
	m := entries[0].Meanings[0]
	return Entry{Definition: m.Definitions[0].Definition, PartOfSpeech: m.PartOfSpeech}, nil
}
