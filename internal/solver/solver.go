// apps/go-solver/internal/solver/solver.go
//
// Solve loop. Each round is an immutable Round value; Step turns a round and
// the feedback observed for it into the next round:
//
//   a. candidates' = candidates consistent with the feedback
//   b. pool'       = hard mode ? previous pool consistent with the feedback
//                              : the full guess dictionary, unchanged
//   c. guess'      = best of pool' against candidates'
//
// A round is Solved when one candidate remains and Exhausted when none do
// (or no guess can be proposed). Run drives rounds from a Source;
// RoundsToSolve drives them from a simulated game.

package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/go-solver/internal/score"
	"github.com/robalobadob/wordle/apps/go-solver/internal/selector"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

var (
	// ErrNoEligibleGuess means candidates remain but the pool is empty. The
	// dictionaries are inconsistent; this is not a user error.
	ErrNoEligibleGuess = errors.New("no eligible guess remains")

	// ErrCandidatesExhausted reports that no word matches all feedback. It is
	// a normal outcome, not a fault.
	ErrCandidatesExhausted = errors.New("no matching word")

	ErrTerminal = errors.New("solver: round is already terminal")
)

// Status of a round.
type Status int

const (
	Searching Status = iota
	Solved
	Exhausted
)

func (s Status) String() string {
	switch s {
	case Solved:
		return "solved"
	case Exhausted:
		return "exhausted"
	}
	return "searching"
}

// Config unifies the solver variants.
type Config struct {
	HardMode       bool
	NumSuggestions int // guesses proposed per round; values below 1 mean 1
	Rule           pattern.Rule
	Workers        int // scoring parallelism; 0 means GOMAXPROCS
	Log            *zerolog.Logger
}

// Round is the full solver state between two feedback requests.
type Round struct {
	Number      int
	Guess       words.Word   // proposed guess; zero when terminal without answer
	Suggestions []words.Word // ranked proposals, Guess first
	Pool        []words.Word // eligible guesses
	Candidates  []words.Word // possible answers
	Pattern     feedback.Pattern
}

// Status derives the loop state from the round.
func (r Round) Status() Status {
	switch {
	case len(r.Candidates) == 0:
		return Exhausted
	case len(r.Candidates) == 1:
		return Solved
	case r.Guess.IsZero():
		return Exhausted
	}
	return Searching
}

// Answer returns the unique remaining candidate of a Solved round.
func (r Round) Answer() (words.Word, bool) {
	if len(r.Candidates) != 1 {
		return words.Word{}, false
	}
	return r.Candidates[0], true
}

// Solver runs rounds for one configuration. It holds no per-game state.
type Solver struct {
	cfg    Config
	scorer *score.Scorer
	log    zerolog.Logger
}

// New returns a Solver for cfg.
func New(cfg Config) *Solver {
	log := zerolog.Nop()
	if cfg.Log != nil {
		log = *cfg.Log
	}
	if cfg.NumSuggestions < 1 {
		cfg.NumSuggestions = 1
	}
	return &Solver{
		cfg:    cfg,
		scorer: &score.Scorer{Rule: cfg.Rule, Workers: cfg.Workers},
		log:    log,
	}
}

// Start builds round 1. When first is zero the opener is computed from the
// full lists, which is slow for large dictionaries.
func (s *Solver) Start(ctx context.Context, first words.Word, pool, candidates []words.Word) (Round, error) {
	r := Round{Number: 1, Pool: pool, Candidates: candidates}
	if len(candidates) <= 1 {
		return s.settle(r), nil
	}
	if !first.IsZero() {
		r.Guess = first
		r.Suggestions = []words.Word{first}
		s.logRound(r)
		return r, nil
	}
	return s.propose(ctx, r)
}

// Step applies feedback p, observed for r, and returns the next round.
func (s *Solver) Step(ctx context.Context, r Round, p feedback.Pattern) (Round, error) {
	if r.Status() != Searching {
		return r, ErrTerminal
	}
	next := Round{
		Number:     r.Number + 1,
		Pool:       r.Pool,
		Candidates: s.cfg.Rule.Filter(p, r.Candidates),
		Pattern:    p,
	}
	if s.cfg.HardMode {
		next.Pool = s.cfg.Rule.Filter(p, r.Pool)
	}
	if len(next.Candidates) <= 1 {
		return s.settle(next), nil
	}
	return s.propose(ctx, next)
}

// propose selects the guess and suggestions for a searching round.
func (s *Solver) propose(ctx context.Context, r Round) (Round, error) {
	if len(r.Pool) == 0 {
		return r, fmt.Errorf("%w: %d candidates left in round %d", ErrNoEligibleGuess, len(r.Candidates), r.Number)
	}
	top, err := selector.SelectTopK(ctx, s.scorer, r.Pool, r.Candidates, s.cfg.NumSuggestions)
	if err != nil {
		return r, err
	}
	r.Guess, r.Suggestions = top[0], top
	s.logRound(r)
	return r, nil
}

// settle fills in a Solved round's answer as its guess.
func (s *Solver) settle(r Round) Round {
	if w, ok := r.Answer(); ok {
		r.Guess = w
		r.Suggestions = []words.Word{w}
	}
	s.log.Debug().Int("round", r.Number).Str("status", r.Status().String()).Msg("terminal round")
	return r
}

func (s *Solver) logRound(r Round) {
	s.log.Debug().
		Int("round", r.Number).
		Str("guess", r.Guess.String()).
		Int("candidates", len(r.Candidates)).
		Int("pool", len(r.Pool)).
		Bool("hard", s.cfg.HardMode).
		Msg("round")
}
