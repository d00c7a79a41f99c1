// apps/go-solver/internal/httpserver/server.go
//
// HTTP server wiring for the solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Solver sessions: POST /solve/new issues a session and a signed token;
//     /solve/feedback, /solve/state and DELETE /solve require that token.
//   - Simulation endpoints: POST /simulate, mounted /daily and /runs routes.
//
// Notes:
//   - A session is an explicit solver.Round value kept in the store; each
//     feedback request computes the next round and saves it back.
//   - Malformed feedback is a 400 and leaves the session untouched.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Options carries server-wide settings.
type Options struct {
	Solver        solver.Config // defaults for new sessions
	FirstGuess    string        // default opener; computed when empty
	JWTSecret     string
	DailySalt     string
	ClientOrigin  string
	ListThreshold int           // list remaining candidates below this count
	SessionTTL    time.Duration // token lifetime
}

// Server bundles router, session store, word lists, and results database.
type Server struct {
	r       *chi.Mux
	store   store.Store
	lists   *words.Lists
	results *results.Store // nil disables persistence
	opts    Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, lists *words.Lists, res *results.Store, opts Options) *Server {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, lists: lists, results: res, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordle-solver",
			"endpoints": []string{"/health", "POST /solve/new", "POST /solve/feedback", "GET /solve/state", "POST /simulate", "GET /daily/simulate", "GET /runs/leaderboard"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.lists.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g, "length": s.lists.Length})
	})

	// Solver sessions
	s.r.Post("/solve/new", s.handleNewSession)
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Post("/solve/feedback", s.handleFeedback)
		r.Get("/solve/state", s.handleState)
		r.Delete("/solve", s.handleDeleteSession)
	})

	// Simulations
	s.r.Post("/simulate", s.handleSimulate)
	s.mountDaily(s.r)
	s.mountRuns(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.opts.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ SESSIONS -----------------------------------

type newSessionReq struct {
	HardMode    *bool  `json:"hardMode"`
	Suggestions int    `json:"suggestions"`
	Rule        string `json:"rule"`
	FirstGuess  string `json:"firstGuess"`
}

type newSessionRes struct {
	SessionID string   `json:"sessionId"`
	Token     string   `json:"token"`
	ExpiresAt string   `json:"expiresAt"`
	Round     roundRes `json:"round"`
}

type roundRes struct {
	Number      int      `json:"number"`
	Status      string   `json:"status"`
	Guess       string   `json:"guess,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Candidates  int      `json:"candidates"`
	Pool        int      `json:"pool"`
	Remaining   []string `json:"remaining,omitempty"`
	Feedback    string   `json:"feedback,omitempty"`
	Answer      string   `json:"answer,omitempty"`
}

func (s *Server) roundView(r solver.Round) roundRes {
	out := roundRes{
		Number:      r.Number,
		Status:      r.Status().String(),
		Candidates:  len(r.Candidates),
		Pool:        len(r.Pool),
		Suggestions: words.Strings(r.Suggestions),
	}
	if !r.Guess.IsZero() {
		out.Guess = r.Guess.String()
	}
	if len(r.Pattern) > 0 {
		out.Feedback = r.Pattern.Guess() + " " + feedback.Encode(r.Pattern)
	}
	if w, ok := r.Answer(); ok {
		out.Answer = w.String()
	}
	if len(r.Candidates) < s.opts.ListThreshold {
		out.Remaining = words.Strings(r.Candidates)
	}
	return out
}

// handleNewSession starts a solver session and returns its first round
// along with the bearer token for follow-up requests.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	cfg := s.opts.Solver
	if req.HardMode != nil {
		cfg.HardMode = *req.HardMode
	}
	if req.Suggestions > 0 {
		cfg.NumSuggestions = req.Suggestions
	}
	if req.Rule != "" {
		rule, err := pattern.ParseRule(req.Rule)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		cfg.Rule = rule
	}
	first, err := s.opener(req.FirstGuess)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	round, err := solver.New(cfg).Start(r.Context(), first, s.lists.Allowed, s.lists.Answers)
	if err != nil {
		s.fail(w, "start_session", err)
		return
	}
	now := time.Now().UTC()
	sess := store.Session{
		ID:        uuid.NewString(),
		Config:    cfg,
		Round:     round,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		s.fail(w, "save_session", err)
		return
	}
	tok, exp, err := s.signSession(sess.ID)
	if err != nil {
		s.fail(w, "sign_session", err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionRes{
		SessionID: sess.ID,
		Token:     tok,
		ExpiresAt: exp.Format(time.RFC3339),
		Round:     s.roundView(round),
	})
}

type feedbackReq struct {
	// Input is "<code>" for the proposed guess or "<guess> <code>".
	Input string `json:"input"`
}

// handleFeedback applies one line of feedback and returns the next round.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if sess.Round.Status() != solver.Searching {
		writeError(w, http.StatusConflict, "session_finished")
		return
	}
	line, err := feedback.ParseLine(req.Input, sess.Round.Guess)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	next, err := solver.New(sess.Config).Step(r.Context(), sess.Round, line.Pattern)
	if err != nil {
		if errors.Is(err, solver.ErrNoEligibleGuess) {
			log.Error().Err(err).Str("session", sess.ID).Msg("inconsistent dictionaries")
		}
		s.fail(w, "step", err)
		return
	}
	sess.History = append(slices.Clip(sess.History), sess.Round)
	sess.Round = next
	sess.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(r.Context(), sess); err != nil {
		s.fail(w, "save_session", err)
		return
	}
	writeJSON(w, http.StatusOK, s.roundView(next))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	history := make([]roundRes, 0, len(sess.History))
	for _, h := range sess.History {
		history = append(history, s.roundView(h))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sessionId": sess.ID,
		"hardMode":  sess.Config.HardMode,
		"rule":      sess.Config.Rule.String(),
		"round":     s.roundView(sess.Round),
		"history":   history,
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := s.store.Delete(r.Context(), sess.ID); err != nil {
		s.fail(w, "delete_session", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// opener resolves the first guess for a new session.
func (s *Server) opener(override string) (words.Word, error) {
	fg := strings.TrimSpace(override)
	if fg == "" {
		fg = s.opts.FirstGuess
	}
	if fg == "" {
		return words.Word{}, nil
	}
	return words.ParseLen(fg, s.lists.Length)
}

// ------------------------------ JWT & auth ---------------------------------

// signSession creates an HS256 JWT naming the session.
func (s *Server) signSession(id string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": id,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// ctxSessionKey is the context key type for the loaded session.
type ctxSessionKey struct{}

func sessionFrom(ctx context.Context) store.Session {
	sess, _ := ctx.Value(ctxSessionKey{}).(store.Session)
	return sess
}

// requireSession enforces a valid session token and loads the session into
// the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearer(r)
		if tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(s.opts.JWTSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		id, _ := claims["sid"].(string)
		if id == "" {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		sess, err := s.store.Get(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "session_not_found")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// fail logs err and answers 500, or 504 when the request timed out.
func (s *Server) fail(w http.ResponseWriter, what string, err error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Msg(what)
		writeError(w, http.StatusGatewayTimeout, "timeout")
		return
	}
	log.Error().Err(err).Msg(what)
	writeError(w, http.StatusInternalServerError, what+"_failed")
}
