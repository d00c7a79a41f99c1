// apps/go-solver/internal/httpserver/routes_daily.go
//
// HTTP routes for the daily word.
//   - GET /daily/simulate → play the solver against today's word (or ?date=)
//
// Query: first, rule, hard override the server strategy; reveal=1 includes
// the answer. Word selection is deterministic on date + salt, so every
// instance sharing DAILY_SALT simulates the same word.

package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// mountDaily registers /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/simulate", s.handleDailySimulate)
	})
}

// handleDailySimulate simulates the word of the day. The answer is only
// included with ?reveal=1. ?date=YYYY-MM-DD picks another day.
func (s *Server) handleDailySimulate(w http.ResponseWriter, r *http.Request) {
	day := time.Now().UTC()
	if q := r.URL.Query().Get("date"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		day = t
	}
	cfg, first, err := s.simulation(simulateReq{
		FirstGuess: r.URL.Query().Get("first"),
		Rule:       r.URL.Query().Get("rule"),
		HardMode:   queryBool(r, "hard"),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hidden := game.Pick(s.lists, daily.WordIndex(day, s.opts.DailySalt, len(s.lists.Answers)), cfg.Rule).Answer
	res, err := s.simulate(r, cfg, hidden, first, daily.DateKey(day))
	if err != nil {
		s.fail(w, "simulate", err)
		return
	}
	res.Date = daily.DateKey(day)
	if ok, _ := strconv.ParseBool(r.URL.Query().Get("reveal")); ok {
		res.Answer = hidden.String()
	}
	writeJSON(w, http.StatusOK, res)
}
