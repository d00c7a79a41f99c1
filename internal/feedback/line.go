package feedback

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Line is one parsed round of player input.
type Line struct {
	Guess   words.Word
	Pattern Pattern
}

// ParseLine accepts either "<code>", applied to the proposed guess, or
// "<guess> <code>" when the player typed a different word than suggested.
func ParseLine(line string, proposed words.Word) (Line, error) {
	fields := strings.Fields(line)
	guess := proposed
	var code string
	switch len(fields) {
	case 1:
		if proposed.IsZero() {
			return Line{}, fmt.Errorf("%w: enter both the word you played and the result code", ErrMalformedInputLine)
		}
		code = fields[0]
	case 2:
		n := proposed.Len()
		if n == 0 {
			n = len(fields[1])
		}
		w, err := words.ParseLen(fields[0], n)
		if err != nil {
			return Line{}, fmt.Errorf("%w: %v", ErrMalformedInputLine, err)
		}
		guess, code = w, fields[1]
	default:
		return Line{}, fmt.Errorf("%w: expected \"<code>\" or \"<guess> <code>\", got %d tokens", ErrMalformedInputLine, len(fields))
	}

	p, err := Decode(code, guess)
	if err != nil {
		return Line{}, err
	}
	return Line{Guess: guess, Pattern: p}, nil
}

// IsInputError reports whether err is a recoverable input-format error.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidFeedbackCode) ||
		errors.Is(err, ErrLengthMismatch) ||
		errors.Is(err, ErrMalformedInputLine)
}
