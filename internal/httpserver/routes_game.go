// internal/httpserver/routes_game.go
//
// Game routes. POST /game/new is open; the rest need the token it returns,
// either as "Authorization: Bearer <token>" or the hintle_token cookie.
//
//   - POST /game/new      → start a match ({length, mode}); mode "daily" picks
//     the day's word for that length
//   - POST /game/guess    → submit a guess
//   - POST /game/hint     → ask the assistant a question
//   - POST /game/keys     → feed typed keys to the hidden-sequence detector
//   - POST /game/restart  → new target, optionally a new length
//   - GET  /game/state    → snapshot incl. keyboard letter states
//   - GET  /game/reveal   → word + definition once over (or elevated)

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/hintle/internal/daily"
	"github.com/robalobadob/hintle/internal/game"
	"github.com/robalobadob/hintle/internal/play"
)

const (
	modeNormal = "normal"
	modeDaily  = "daily"
)

// maxBodyBytes caps every /game request body.
const maxBodyBytes = 4 << 10

func (s *Server) mountGame() {
	s.r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Group(func(r chi.Router) {
			r.Use(s.requireGame())
			r.Post("/guess", s.handleGuess)
			r.Post("/hint", s.handleHint)
			r.Post("/keys", s.handleKeys)
			r.Post("/restart", s.handleRestart)
			r.Get("/state", s.handleState)
			r.Get("/reveal", s.handleReveal)
		})
	})
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Length int    `json:"length"` // 0 → server default
	Mode   string `json:"mode"`   // "normal" | "daily"
}
type newGameRes struct {
	GameID       string `json:"gameId"`
	Token        string `json:"token"`
	Length       int    `json:"length"`
	MaxAttempts  int    `json:"maxAttempts"`
	MaxQuestions int    `json:"maxQuestions"`
	Mode         string `json:"mode"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if !decodeOptional(w, r, &req) {
		return
	}
	rules := s.opts.Rules
	if req.Length != 0 {
		rules.Length = req.Length
	}
	deps := s.opts.Deps
	switch req.Mode {
	case "", modeNormal:
		req.Mode = modeNormal
	case modeDaily:
		deps.Pick = daily.Picker(s.opts.DailySalt, nil)
	default:
		writeError(w, http.StatusBadRequest, "bad_mode")
		return
	}

	m, err := play.New(r.Context(), deps, rules)
	if err != nil {
		s.writeGameError(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), m); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.opts.Tokens.Sign(m.ID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	setTokenCookie(w, r, tok, exp)

	snap := m.Snapshot()
	hlog.FromRequest(r).Info().Str("gameId", m.ID).Int("length", snap.Length).Str("mode", req.Mode).Msg("game created")
	writeJSON(w, http.StatusOK, newGameRes{
		GameID:       m.ID,
		Token:        tok,
		Length:       snap.Length,
		MaxAttempts:  snap.MaxAttempts,
		MaxQuestions: rules.MaxQuestions,
		Mode:         req.Mode,
	})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	Guess string `json:"guess"`
}
type guessRes struct {
	Marks   []game.Status `json:"marks"`
	State   game.Outcome  `json:"state"` // "playing" | "won" | "lost"
	Attempt int           `json:"attempt"`
	Answer  string        `json:"answer,omitempty"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if !decode(w, r, &req) {
		return
	}
	m := matchFrom(r)
	rec, state, err := m.SubmitGuess(r.Context(), req.Guess)
	if err != nil {
		s.writeGameError(w, r, err)
		return
	}
	snap := m.Snapshot()
	writeJSON(w, http.StatusOK, guessRes{Marks: rec.Statuses, State: state, Attempt: snap.Attempt, Answer: snap.Answer})
}

type hintReq struct {
	Question string `json:"question"`
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if !decode(w, r, &req) {
		return
	}
	reply, err := matchFrom(r).Ask(r.Context(), req.Question)
	if err != nil {
		s.writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

type keysReq struct {
	Keys string `json:"keys"`
}
type keysRes struct {
	Elevated bool         `json:"elevated"`
	Reveal   *play.Reveal `json:"reveal,omitempty"`
}

func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	var req keysReq
	if !decode(w, r, &req) {
		return
	}
	on, reveal, err := matchFrom(r).PressKeys(r.Context(), req.Keys)
	if err != nil {
		s.writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, keysRes{Elevated: on, Reveal: reveal})
}

type restartReq struct {
	Length int `json:"length"`
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	var req restartReq
	if !decodeOptional(w, r, &req) {
		return
	}
	snap, err := matchFrom(r).Restart(r.Context(), req.Length)
	if err != nil {
		s.writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, matchFrom(r).Snapshot())
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	rv, err := matchFrom(r).Reveal(r.Context())
	if err != nil {
		s.writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

// writeGameError maps match errors to status codes.
func (s *Server) writeGameError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, play.ErrNotAWord):
		status, code = http.StatusUnprocessableEntity, "not_a_word"
	case errors.Is(err, game.ErrWrongLength), errors.Is(err, game.ErrNotAlpha):
		status, code = http.StatusBadRequest, "invalid_guess"
	case errors.Is(err, play.ErrBusy):
		status, code = http.StatusConflict, "busy"
	case errors.Is(err, play.ErrStale):
		status, code = http.StatusConflict, "stale"
	case errors.Is(err, play.ErrGameOver):
		status, code = http.StatusConflict, "game_over"
	case errors.Is(err, play.ErrNotRevealed):
		status, code = http.StatusConflict, "not_revealed"
	case errors.Is(err, play.ErrNoQuestionsLeft):
		status, code = http.StatusTooManyRequests, "no_questions_left"
	case errors.Is(err, play.ErrEmptyQuestion):
		status, code = http.StatusBadRequest, "empty_question"
	case errors.Is(err, play.ErrBadLength):
		status, code = http.StatusBadRequest, "bad_length"
	case errors.Is(err, play.ErrTooManyKeys):
		status, code = http.StatusBadRequest, "too_many_keys"
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("game request failed")
	}
	writeError(w, status, code)
}

// decode requires a JSON body of at most maxBodyBytes.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	return readJSON(w, r, v, false)
}

// decodeOptional also accepts an empty body.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	return readJSON(w, r, v, true)
}

func readJSON(w http.ResponseWriter, r *http.Request, v any, optional bool) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	var tooBig *http.MaxBytesError
	switch {
	case err == nil, optional && errors.Is(err, io.EOF):
		return true
	case errors.As(err, &tooBig):
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large")
	default:
		writeError(w, http.StatusBadRequest, "bad_json")
	}
	return false
}
