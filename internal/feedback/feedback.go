// apps/go-solver/internal/feedback/feedback.go
//
// Feedback model: the three-valued letter state, the per-position pattern a
// guess produces, and the compact g/y/x text code players type in.
//
//   g → Positioned (green)
//   y → Present    (yellow)
//   x → Absent     (grey)
//
// Parsing is deliberately lenient: codes are case-insensitive and
// surrounding whitespace is ignored.

package feedback

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// State is the evaluation result for a single letter of a guess.
type State uint8

const (
	Absent     State = iota // letter does not occur in the hidden word
	Present                 // letter occurs elsewhere in the hidden word
	Positioned              // letter is at this exact position
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Positioned:
		return "positioned"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Code is the single-character form used in typed feedback.
func (s State) Code() byte {
	switch s {
	case Positioned:
		return 'g'
	case Present:
		return 'y'
	}
	return 'x'
}

// StateOf maps a code character to its State.
func StateOf(c rune) (State, bool) {
	switch c {
	case 'g', 'G':
		return Positioned, true
	case 'y', 'Y':
		return Present, true
	case 'x', 'X':
		return Absent, true
	}
	return 0, false
}

var (
	ErrInvalidFeedbackCode = errors.New("invalid feedback code")
	ErrLengthMismatch      = errors.New("feedback length mismatch")
	ErrMalformedInputLine  = errors.New("malformed input line")
)

// CodeError reports the first character of a feedback code outside {g,y,x}.
type CodeError struct {
	Char rune
	Pos  int
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("invalid feedback character %q at position %d: use \"g\" for green, \"y\" for yellow, and \"x\" for grey", e.Char, e.Pos+1)
}

func (e *CodeError) Unwrap() error { return ErrInvalidFeedbackCode }

// Cell is one position of a Pattern.
type Cell struct {
	Letter byte
	State  State
}

// Pattern is the feedback for one guess, one Cell per letter. Cell i always
// carries the guess's letter at i.
type Pattern []Cell

// Of zips guess with states. It panics when the lengths differ.
func Of(guess words.Word, states ...State) Pattern {
	if len(states) != guess.Len() {
		panic(fmt.Sprintf("feedback.Of: %d states for %q", len(states), guess))
	}
	p := make(Pattern, len(states))
	for i, s := range states {
		p[i] = Cell{Letter: guess.At(i), State: s}
	}
	return p
}

// Guess returns the word the pattern was produced for.
func (p Pattern) Guess() string {
	b := make([]byte, len(p))
	for i, c := range p {
		b[i] = c.Letter
	}
	return string(b)
}

// Solved reports whether every letter is Positioned.
func (p Pattern) Solved() bool {
	if len(p) == 0 {
		return false
	}
	for _, c := range p {
		if c.State != Positioned {
			return false
		}
	}
	return true
}

// Equal compares letters and states position by position.
func (p Pattern) Equal(o Pattern) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

func (p Pattern) String() string {
	var b strings.Builder
	for i, c := range p {
		if i != 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(c.Letter)
		b.WriteByte(':')
		b.WriteByte(c.State.Code())
	}
	return b.String()
}

// Encode renders p as its g/y/x code. Two patterns for the same guess are
// equal exactly when their codes are, so the code doubles as a map key.
func Encode(p Pattern) string {
	b := make([]byte, len(p))
	for i, c := range p {
		b[i] = c.State.Code()
	}
	return string(b)
}

// Decode zips a g/y/x code with the guess it describes.
func Decode(code string, guess words.Word) (Pattern, error) {
	code = strings.TrimSpace(code)
	states, err := Collect([]rune(code), func(i int, c rune) (State, error) {
		s, ok := StateOf(c)
		if !ok {
			return 0, &CodeError{Char: c, Pos: i}
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	if len(states) != guess.Len() {
		return nil, fmt.Errorf("%w: code has %d letters, guess %q has %d", ErrLengthMismatch, len(states), guess, guess.Len())
	}
	return Of(guess, states...), nil
}

// Collect maps fn over in and stops at the first error.
func Collect[T, U any](in []T, fn func(int, T) (U, error)) ([]U, error) {
	out := make([]U, 0, len(in))
	for i, v := range in {
		u, err := fn(i, v)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
