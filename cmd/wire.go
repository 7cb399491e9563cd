package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/robalobadob/hintle/internal/cache"
	"github.com/robalobadob/hintle/internal/config"
	"github.com/robalobadob/hintle/internal/datamuse"
	"github.com/robalobadob/hintle/internal/define"
	"github.com/robalobadob/hintle/internal/hints"
	"github.com/robalobadob/hintle/internal/play"
	"github.com/robalobadob/hintle/internal/words"
)

type app struct {
	cfg   config.Config
	deps  play.Deps
	rules play.Rules
	cache *cache.Store
}

func wireApp(cfg config.Config) (*app, error) {
	code, err := elevatedCode(cfg)
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg: cfg,
		rules: play.Rules{
			Length:       cfg.WordLength,
			MaxAttempts:  cfg.MaxAttempts,
			MaxQuestions: cfg.MaxQuestions,
		},
	}

	if cfg.Offline {
		var extra []string
		if cfg.WordsFile != "" {
			if extra, err = words.ReadWordFile(cfg.WordsFile); err != nil {
				return nil, fmt.Errorf("wire offline word list: %w", err)
			}
		}
		list := words.NewListValidator(extra...)
		a.deps = play.Deps{
			Source:    list,
			Validator: list,
			Policy:    hints.NewPolicy(hints.Lookups{}),
			Code:      code,
		}
		log.Info().Interface("words", list.Stats()).Msg("offline word list loaded")
		return a, nil
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.LookupRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.LookupRPS), 1)
	}
	client := &http.Client{}

	dm := &datamuse.Client{
		BaseURL:        cfg.DatamuseURL,
		HTTPClient:     client,
		Limiter:        limiter,
		RequestTimeout: cfg.LookupTimeout,
	}
	var defs define.Provider = define.Chain{
		&define.DictionaryAPI{
			BaseURL:        cfg.DictionaryURL,
			HTTPClient:     client,
			Limiter:        limiter,
			RequestTimeout: cfg.LookupTimeout,
		},
		&define.MerriamWebster{
			BaseURL:        cfg.MWURL,
			APIKey:         cfg.MWAPIKey,
			HTTPClient:     client,
			Limiter:        limiter,
			RequestTimeout: cfg.LookupTimeout,
		},
	}
	var validator words.Validator = dm

	if cfg.CacheDSN != "" {
		st, err := cache.Open(cfg.CacheDSN, cfg.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("wire lookup cache: %w", err)
		}
		a.cache = st
		defs = cache.Definitions(defs, st)
		validator = cache.Validations(dm, st)
		log.Info().Str("dsn", cfg.CacheDSN).Dur("ttl", cfg.CacheTTL).Msg("lookup cache ready")
	}

	a.deps = play.Deps{
		Source:      dm,
		Validator:   validator,
		Definitions: defs,
		Policy:      hints.NewPolicy(hints.Lookups{Definitions: defs, Rhymes: dm}),
		Code:        code,
	}
	return a, nil
}

func elevatedCode(cfg config.Config) (hints.Code, error) {
	if cfg.ElevatedCodeHash != "" {
		return hints.CodeFromHash(cfg.ElevatedCodeHash, cfg.ElevatedCodeLen)
	}
	if cfg.ElevatedCode == "" {
		return hints.Code{}, errors.New("no elevated code configured")
	}
	return hints.NewCode(cfg.ElevatedCode)
}

func (a *app) Close() error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Close()
}
