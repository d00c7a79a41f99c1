// apps/go-solver/internal/game/engine.go
//
// Feedback oracle for simulations: answers guesses the way the real puzzle
// would, using the configured pattern rule.
// Responsibilities:
//   - Create games for a known hidden word.
//   - Validate and apply guesses (length, allowed list).
//   - Track state transitions: playing → won.
//   - Act as a solver feedback source (Source).

package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

var (
	ErrFinished     = errors.New("game finished")
	ErrInvalidGuess = errors.New("invalid guess")
	ErrNotInList    = errors.New("not in word list")
)

// New constructs a game hiding answer.
func New(answer words.Word, rule pattern.Rule) *Game {
	return &Game{
		ID:     uuid.NewString(),
		Answer: answer,
		Rule:   rule,
	}
}

// Pick constructs a game whose answer is lists.Answers[idx mod len].
func Pick(lists *words.Lists, idx int, rule pattern.Rule) *Game {
	n := len(lists.Answers)
	g := New(lists.Answers[((idx%n)+n)%n], rule)
	g.Lists = lists
	return g
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns the feedback pattern and the new state.
func (g *Game) ApplyGuess(guess words.Word) (feedback.Pattern, State, error) {
	if g.Won {
		return nil, g.State(), ErrFinished
	}
	if guess.Len() != g.Answer.Len() {
		return nil, g.State(), fmt.Errorf("%w: %q is %d letters, want %d", ErrInvalidGuess, guess, guess.Len(), g.Answer.Len())
	}
	if g.Lists != nil && !g.Lists.IsAllowed(guess.String()) {
		return nil, g.State(), fmt.Errorf("%w: %q", ErrNotInList, guess)
	}

	p := g.Rule.Compute(guess, g.Answer)
	g.Guesses = append(g.Guesses, guess)
	if p.Solved() {
		g.Won = true
	}
	return p, g.State(), nil
}

// State reports the current progress.
func (g *Game) State() State {
	if g.Won {
		return StateWon
	}
	return StatePlaying
}

// Source answers each proposed guess with the code the game produces for it,
// so a solver can be driven without a human.
type Source struct {
	Game *Game
}

// Next plays guess and returns its feedback code.
func (s Source) Next(ctx context.Context, guess words.Word) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p, _, err := s.Game.ApplyGuess(guess)
	if err != nil {
		return "", err
	}
	return feedback.Encode(p), nil
}
