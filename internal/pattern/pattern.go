// apps/go-solver/internal/pattern/pattern.go
//
// Pattern engine: the feedback a guess produces against a word, and the
// inverse test of whether a word is consistent with observed feedback.
//
// Two rules are available:
//   - RuleSimple (default): a letter that is not in place is Present when the
//     word contains it anywhere, with no duplicate-letter accounting. A guess
//     with a doubled letter can get Present at both positions even when the
//     word has that letter once. This is the solver's historical behavior.
//   - RuleCounted: the standard two-pass Wordle scoring. Hits are marked
//     first, then Present is handed out only while unmatched copies of the
//     letter remain in the word.
//
// Both words passed to Compute must have the same length.

package pattern

import (
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Rule selects how feedback is computed.
type Rule uint8

const (
	RuleSimple Rule = iota
	RuleCounted
)

func (r Rule) String() string {
	if r == RuleCounted {
		return "counted"
	}
	return "simple"
}

// ParseRule accepts "simple" or "counted"; the empty string is RuleSimple.
func ParseRule(s string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "simple":
		return RuleSimple, nil
	case "counted":
		return RuleCounted, nil
	}
	return RuleSimple, fmt.Errorf("pattern: unknown rule %q (want simple or counted)", s)
}

// Compute is RuleSimple.Compute.
func Compute(guess, candidate words.Word) feedback.Pattern {
	return RuleSimple.Compute(guess, candidate)
}

// Applies is RuleSimple.Applies.
func Applies(p feedback.Pattern, candidate words.Word) bool {
	return RuleSimple.Applies(p, candidate)
}

// Filter is RuleSimple.Filter.
func Filter(p feedback.Pattern, ws []words.Word) []words.Word {
	return RuleSimple.Filter(p, ws)
}

// Compute returns the feedback guess would receive if candidate were hidden.
func (r Rule) Compute(guess, candidate words.Word) feedback.Pattern {
	p := make(feedback.Pattern, guess.Len())
	if r == RuleCounted {
		counted(guess, candidate, p)
		return p
	}
	for i := range p {
		c := guess.At(i)
		switch {
		case c == candidate.At(i):
			p[i] = feedback.Cell{Letter: c, State: feedback.Positioned}
		case candidate.Has(c):
			p[i] = feedback.Cell{Letter: c, State: feedback.Present}
		default:
			p[i] = feedback.Cell{Letter: c, State: feedback.Absent}
		}
	}
	return p
}

// Applies reports whether candidate could be the hidden word given p.
func (r Rule) Applies(p feedback.Pattern, candidate words.Word) bool {
	if len(p) != candidate.Len() {
		return false
	}
	if r == RuleCounted {
		guess, err := words.Parse(p.Guess())
		if err != nil {
			return false
		}
		return r.Compute(guess, candidate).Equal(p)
	}
	for i, cell := range p {
		switch cell.State {
		case feedback.Absent:
			if candidate.Has(cell.Letter) {
				return false
			}
		case feedback.Present:
			if !candidate.Has(cell.Letter) || candidate.At(i) == cell.Letter {
				return false
			}
		case feedback.Positioned:
			if candidate.At(i) != cell.Letter {
				return false
			}
		}
	}
	return true
}

// Filter returns a new slice with the members of ws consistent with p, in
// their original order.
func (r Rule) Filter(p feedback.Pattern, ws []words.Word) []words.Word {
	out := make([]words.Word, 0, len(ws))
	for _, w := range ws {
		if r.Applies(p, w) {
			out = append(out, w)
		}
	}
	return out
}

// counted fills p using the two-pass algorithm.
//
// Pass 1 marks exact matches and counts the remaining candidate letters.
// Pass 2 marks a non-hit guess letter Present while a count remains for it,
// otherwise Absent.
func counted(guess, candidate words.Word, p feedback.Pattern) {
	var counts [26]int
	for i := range p {
		g, c := guess.At(i), candidate.At(i)
		if g == c {
			p[i] = feedback.Cell{Letter: g, State: feedback.Positioned}
		} else {
			counts[c-'a']++
		}
	}
	for i := range p {
		if p[i].State == feedback.Positioned {
			continue
		}
		g := guess.At(i)
		if counts[g-'a'] > 0 {
			p[i] = feedback.Cell{Letter: g, State: feedback.Present}
			counts[g-'a']--
		} else {
			p[i] = feedback.Cell{Letter: g, State: feedback.Absent}
		}
	}
}
