// apps/go-solver/internal/game/types.go
//
// Core type definitions for the simulated puzzle.
// Defines:
//   - State: coarse progress of a game (playing/won).
//   - Game:  a hidden word plus the guesses made against it.

package game

import (
	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// State is the coarse progress of a game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
)

// Game holds one hidden word and the guesses made against it. There is no
// turn limit: a game only ends when the word is found.
type Game struct {
	ID      string       // Unique game identifier.
	Answer  words.Word   // The hidden word.
	Rule    pattern.Rule // How feedback is computed.
	Guesses []words.Word // Guesses made so far.
	Won     bool         // True once a guess matched the answer.

	// Lists, when set, restricts guesses to the allowed dictionary.
	Lists *words.Lists
}
