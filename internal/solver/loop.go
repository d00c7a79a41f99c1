package solver

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Source supplies one line of feedback per proposed guess. Returning io.EOF
// ends the run without an error.
type Source interface {
	Next(ctx context.Context, guess words.Word) (string, error)
}

// ChanSource reads feedback lines from a channel. Closing the channel is
// the same as closing the input stream.
type ChanSource <-chan string

// Next blocks until a line arrives, the channel closes, or ctx is done.
func (c ChanSource) Next(ctx context.Context, _ words.Word) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

// Observer is told about every round and every rejected input line.
type Observer interface {
	Round(r Round)
	Rejected(r Round, input string, err error)
}

type nopObserver struct{}

func (nopObserver) Round(Round)                  {}
func (nopObserver) Rejected(Round, string, error) {}

// Outcome summarizes a finished Run.
type Outcome struct {
	Status Status
	Answer words.Word // set when Solved
	Rounds int        // feedback lines applied
	Final  Round
	Closed bool // the source closed before a terminal round
}

// Err maps the outcome to ErrCandidatesExhausted when nothing matched.
func (o Outcome) Err() error {
	if o.Status == Exhausted {
		return ErrCandidatesExhausted
	}
	return nil
}

func outcomeOf(r Round) Outcome {
	o := Outcome{Status: r.Status(), Rounds: r.Number - 1, Final: r}
	if w, ok := r.Answer(); ok {
		o.Answer = w
	}
	return o
}

// Run plays rounds until Solved or Exhausted, or until src closes. Input
// lines that fail to parse are reported to obs and requested again; the
// round is left untouched.
func (s *Solver) Run(ctx context.Context, first words.Word, pool, candidates []words.Word, src Source, obs Observer) (Outcome, error) {
	if obs == nil {
		obs = nopObserver{}
	}
	r, err := s.Start(ctx, first, pool, candidates)
	if err != nil {
		return Outcome{Final: r}, err
	}
	for {
		obs.Round(r)
		if r.Status() != Searching {
			return outcomeOf(r), nil
		}

		line, err := s.read(ctx, r, src, obs)
		if err != nil {
			if errors.Is(err, io.EOF) {
				o := outcomeOf(r)
				o.Closed = true
				return o, nil
			}
			return outcomeOf(r), err
		}
		if r, err = s.Step(ctx, r, line.Pattern); err != nil {
			return outcomeOf(r), err
		}
	}
}

// read asks src for feedback until a line parses.
func (s *Solver) read(ctx context.Context, r Round, src Source, obs Observer) (feedback.Line, error) {
	for {
		in, err := src.Next(ctx, r.Guess)
		if err != nil {
			return feedback.Line{}, err
		}
		line, err := feedback.ParseLine(in, r.Guess)
		if err == nil {
			return line, nil
		}
		if !feedback.IsInputError(err) {
			return feedback.Line{}, err
		}
		s.log.Debug().Str("input", in).Err(err).Msg("rejected feedback")
		obs.Rejected(r, in, err)
	}
}

// RoundsToSolve plays against hidden with the solver's own rule as the
// oracle and returns the number of guesses played before the feedback was
// all Positioned or a single candidate was left.
func (s *Solver) RoundsToSolve(ctx context.Context, hidden, first words.Word, pool, candidates []words.Word) (int, error) {
	if words.Index(candidates, hidden) < 0 {
		return 0, fmt.Errorf("%w: %q is not a candidate", ErrCandidatesExhausted, hidden)
	}
	g := game.New(hidden, s.cfg.Rule)
	o, err := s.Run(ctx, first, pool, candidates, game.Source{Game: g}, nil)
	if err != nil {
		return o.Rounds, err
	}
	if o.Status != Solved {
		return o.Rounds, fmt.Errorf("simulating %q: %w", hidden, ErrCandidatesExhausted)
	}
	return o.Rounds, nil
}
