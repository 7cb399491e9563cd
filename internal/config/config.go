// Package config reads runtime settings from the environment (and an
// optional .env file).
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/robalobadob/hintle/internal/words"
)

// Config holds every setting the server and the terminal game read.
type Config struct {
	Port         string `env:"PORT"          envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL"     envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT"    envDefault:"json"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	JWTSecret       string `env:"JWT_SECRET"        envDefault:"dev_secret_change_me"`
	JWTExpiresHours int    `env:"JWT_EXPIRES_HOURS" envDefault:"24"`
	DailySalt       string `env:"DAILY_SALT"        envDefault:"local_dev_salt"`

	WordLength   int `env:"WORD_LENGTH"   envDefault:"5"`
	MaxAttempts  int `env:"MAX_ATTEMPTS"  envDefault:"6"`
	MaxQuestions int `env:"MAX_QUESTIONS" envDefault:"20"`

	// ElevatedCodeHash (bcrypt) wins over ElevatedCode when both are set.
	ElevatedCode     string `env:"ELEVATED_CODE"      envDefault:"idbfg"`
	ElevatedCodeHash string `env:"ELEVATED_CODE_HASH"`
	ElevatedCodeLen  int    `env:"ELEVATED_CODE_LENGTH" envDefault:"5"`

	DatamuseURL   string        `env:"DATAMUSE_URL"   envDefault:"https://api.datamuse.com"`
	DictionaryURL string        `env:"DICTIONARY_URL" envDefault:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	MWURL         string        `env:"MW_URL"         envDefault:"https://www.dictionaryapi.com/api/v3/references/collegiate/json"`
	MWAPIKey      string        `env:"MW_API_KEY"`
	LookupTimeout time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"5s"`
	LookupRPS     float64       `env:"LOOKUP_RPS"     envDefault:"5"`

	// CacheDSN is a sqlite path; empty disables the lookup cache.
	CacheDSN string        `env:"CACHE_DSN" envDefault:"data/hintle.db"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"168h"`

	// Offline swaps the network providers for the embedded word list,
	// extended by WordsFile when set.
	Offline   bool   `env:"OFFLINE" envDefault:"false"`
	WordsFile string `env:"WORDS_FILE"`
}

var (
	ErrBadLength      = errors.New("WORD_LENGTH out of range")
	ErrBadAttempts    = errors.New("MAX_ATTEMPTS must be at least 1")
	ErrBadQuestions   = errors.New("MAX_QUESTIONS must not be negative")
	ErrMissingElevate = errors.New("ELEVATED_CODE or ELEVATED_CODE_HASH must be set")
)

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks ranges. Call it after flags have been applied.
func (c Config) Validate() error {
	if c.WordLength < words.MinLength || c.WordLength > words.MaxLength {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrBadLength, c.WordLength, words.MinLength, words.MaxLength)
	}
	if c.MaxAttempts < 1 {
		return ErrBadAttempts
	}
	if c.MaxQuestions < 0 {
		return ErrBadQuestions
	}
	if c.ElevatedCode == "" && c.ElevatedCodeHash == "" {
		return ErrMissingElevate
	}
	if c.ElevatedCodeHash != "" && c.ElevatedCodeLen < 1 {
		return ErrMissingElevate
	}
	return nil
}

// JWTTTL is the lifetime of a game token.
func (c Config) JWTTTL() time.Duration {
	if c.JWTExpiresHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.JWTExpiresHours) * time.Hour
}
