// apps/go-solver/internal/httpserver/routes_sim.go
//
// HTTP routes for simulations.
//   - POST /simulate              → rounds the solver needs for a given answer
//   - GET  /runs/leaderboard      → best stored benchmark runs
//   - GET  /runs/{id}/histogram   → rounds histogram of one run
//
// Simulations are persisted when a results store is configured.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

type simulateReq struct {
	Answer     string `json:"answer"`
	FirstGuess string `json:"firstGuess"`
	HardMode   *bool  `json:"hardMode"`
	Rule       string `json:"rule"`
}

type simulateRes struct {
	Answer string `json:"answer,omitempty"`
	Date   string `json:"date,omitempty"`
	First  string `json:"firstGuess"`
	Rounds int    `json:"rounds"`
	Solved bool   `json:"solved"`
}

// simulation resolves the strategy for a request from server defaults.
func (s *Server) simulation(req simulateReq) (solver.Config, words.Word, error) {
	cfg := s.opts.Solver
	if req.HardMode != nil {
		cfg.HardMode = *req.HardMode
	}
	if req.Rule != "" {
		rule, err := pattern.ParseRule(req.Rule)
		if err != nil {
			return cfg, words.Word{}, err
		}
		cfg.Rule = rule
	}
	first, err := s.opener(req.FirstGuess)
	return cfg, first, err
}

// simulate plays hidden and persists the result (best effort).
func (s *Server) simulate(r *http.Request, cfg solver.Config, hidden, first words.Word, date string) (simulateRes, error) {
	sv := solver.New(cfg)
	if first.IsZero() {
		round, err := sv.Start(r.Context(), first, s.lists.Allowed, s.lists.Answers)
		if err != nil {
			return simulateRes{}, err
		}
		first = round.Guess
	}
	rounds, err := sv.RoundsToSolve(r.Context(), hidden, first, s.lists.Allowed, s.lists.Answers)
	solved := err == nil
	if err != nil && !errors.Is(err, solver.ErrCandidatesExhausted) {
		return simulateRes{}, err
	}

	if s.results != nil {
		sim := results.Simulation{
			Hidden:     hidden.String(),
			FirstGuess: first.String(),
			HardMode:   cfg.HardMode,
			Rule:       cfg.Rule.String(),
			Rounds:     rounds,
			Solved:     solved,
			Date:       date,
		}
		if err := s.results.InsertSimulation(r.Context(), sim); err != nil {
			log.Warn().Err(err).Str("hidden", sim.Hidden).Msg("insert simulation")
		}
	}
	return simulateRes{First: first.String(), Rounds: rounds, Solved: solved}, nil
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if !s.lists.IsAnswer(req.Answer) {
		writeError(w, http.StatusBadRequest, "not in answer list")
		return
	}
	hidden, _ := words.ParseLen(req.Answer, s.lists.Length)
	cfg, first, err := s.simulation(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.simulate(r, cfg, hidden, first, "")
	if err != nil {
		s.fail(w, "simulate", err)
		return
	}
	res.Answer = hidden.String()
	writeJSON(w, http.StatusOK, res)
}

// mountRuns registers /runs routes backed by the results store.
func (s *Server) mountRuns(r chi.Router) {
	r.Route("/runs", func(r chi.Router) {
		r.Use(s.requireResults)
		r.Get("/leaderboard", func(w http.ResponseWriter, r *http.Request) {
			limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
			rows, err := s.results.Leaderboard(r.Context(), limit)
			if err != nil {
				s.fail(w, "leaderboard", err)
				return
			}
			writeJSON(w, http.StatusOK, rows)
		})
		r.Get("/{id}/histogram", func(w http.ResponseWriter, r *http.Request) {
			h, err := s.results.Histogram(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				s.fail(w, "histogram", err)
				return
			}
			if len(h) == 0 {
				writeError(w, http.StatusNotFound, "not_found")
				return
			}
			// JSON object keys must be strings.
			out := make(map[string]int, len(h))
			for k, v := range h {
				out[strconv.Itoa(k)] = v
			}
			writeJSON(w, http.StatusOK, out)
		})
	})
}

func (s *Server) requireResults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.results == nil {
			writeError(w, http.StatusServiceUnavailable, "results_disabled")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func queryBool(r *http.Request, key string) *bool {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
