package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/hintle/internal/play"
	"github.com/robalobadob/hintle/internal/store"
)

const cookieName = "hintle_token"

var errNoGameID = errors.New("token has no game id")

// Tokens signs and verifies game tokens: HS256 JWTs whose gid claim is the
// match ID. Holding the token is what lets a client act on that match.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens returns a signer. A zero ttl means 24h.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

type gameClaims struct {
	GameID string `json:"gid"`
	jwt.RegisteredClaims
}

// Sign issues a token for gameID.
func (t *Tokens) Sign(gameID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, gameClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	ss, err := tok.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign game token: %w", err)
	}
	return ss, exp, nil
}

// Parse verifies raw and returns its game ID.
func (t *Tokens) Parse(raw string) (string, error) {
	var claims gameClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if claims.GameID == "" {
		return "", errNoGameID
	}
	return claims.GameID, nil
}

// setTokenCookie writes the game token cookie.
func setTokenCookie(w http.ResponseWriter, r *http.Request, token string, exp time.Time) {
	secure := r.TLS != nil
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or the token cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

// ctxMatchKey is the context key type for the request's match.
type ctxMatchKey struct{}

// requireGame resolves the token to a live match and injects it into the
// request context.
func (s *Server) requireGame() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerOrCookie(r)
			if raw == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			id, err := s.opts.Tokens.Parse(raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			m, err := s.store.Get(r.Context(), id)
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "game_not_found")
				return
			} else if err != nil {
				writeError(w, http.StatusInternalServerError, "store_error")
				return
			}
			ctx := context.WithValue(r.Context(), ctxMatchKey{}, m)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func matchFrom(r *http.Request) *play.Match {
	m, _ := r.Context().Value(ctxMatchKey{}).(*play.Match)
	return m
}
