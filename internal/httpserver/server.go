// internal/httpserver/server.go
//
// HTTP server wiring for the hintle backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, JSON, CORS, timeouts,
//     panic recovery).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - POST /game/new issues a signed game token; every other /game route
//     requires it (see token.go and routes_game.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled so the token cookie works
//     from the browser client.
//   - Matches live in the Store only; nothing about a game is persisted.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hintle/internal/play"
	"github.com/robalobadob/hintle/internal/store"
	"github.com/robalobadob/hintle/internal/words"
)

// Options configure a Server.
type Options struct {
	// Deps are shared by every match the server creates.
	Deps play.Deps
	// Rules are the defaults for POST /game/new.
	Rules        play.Rules
	Tokens       *Tokens
	DailySalt    string
	ClientOrigin string
	// Timeout bounds each handler. Zero means 10s.
	Timeout time.Duration
	// SweepEvery is how often Start drops expired matches. Zero means 1m.
	SweepEvery time.Duration
}

// Server bundles the router, the match store and the shared game deps.
type Server struct {
	r     *chi.Mux
	store store.Store
	opts  Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.SweepEvery <= 0 {
		opts.SweepEvery = time.Minute
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)               // add X-Request-ID
	s.r.Use(chimw.RealIP)                  // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))   // request-scoped logger
	s.r.Use(hlog.AccessHandler(accessLog)) // one line per request
	s.r.Use(chimw.Recoverer)               // recover from panics
	s.r.Use(chimw.Timeout(opts.Timeout))   // bound handler time
	s.r.Use(jsonContentType)               // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))       // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"hintle","endpoints":["/health","POST /game/new","POST /game/guess","POST /game/hint","POST /game/keys","POST /game/restart","GET /game/state","GET /game/reveal"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", s.handleDebugWords)

	s.mountGame()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then drains in-flight
// requests for up to five seconds. Expired matches are swept meanwhile.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sweepLoop(sweepCtx)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) sweepLoop(ctx context.Context) {
	t := time.NewTicker(s.opts.SweepEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sweep(ctx)
		}
	}
}

// sweep drops matches whose tokens have expired.
func (s *Server) sweep(ctx context.Context) {
	if n := s.store.Sweep(ctx); n > 0 {
		log.Info().Int("removed", n).Int("live", s.store.Len()).Msg("swept expired games")
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// handleDebugWords reports candidate counts. With ?length=N it asks the word
// source (falling back to the static list); without, it lists the static
// list's size per length.
func (s *Server) handleDebugWords(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("length"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < words.MinLength || n > words.MaxLength {
			writeError(w, http.StatusBadRequest, "bad_length")
			return
		}
		list := words.LoadCandidates(r.Context(), s.opts.Deps.Source, n)
		writeJSON(w, http.StatusOK, map[string]int{"length": n, "candidates": len(list)})
		return
	}
	counts := make(map[string]int)
	for n := words.MinLength; n <= words.MaxLength; n++ {
		list, _ := words.Static{}.Words(r.Context(), n)
		counts[strconv.Itoa(n)] = len(list)
	}
	writeJSON(w, http.StatusOK, map[string]any{"static": counts, "games": s.store.Len()})
}

// ----------------------------- middleware ----------------------------------

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("reqId", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- responses ---------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
