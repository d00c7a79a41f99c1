// apps/go-solver/internal/console/console.go
//
// Line-oriented terminal front end for the solve loop.
// Responsibilities:
//   - Turn an input stream into a solver.Source (one line per request).
//   - Print each round: last feedback as colored tiles, the remaining
//     candidates when few are left, the next guess(es), and the prompt.
//
// Nothing here affects solver state; it only reads and prints.

package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/TwiN/go-color"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Lines scans r in a goroutine and delivers each line on the returned
// channel, which is closed at end of input or when ctx is done.
func Lines(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case out <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// NewSource returns a solver source reading lines from r.
func NewSource(ctx context.Context, r io.Reader) solver.Source {
	return solver.ChanSource(Lines(ctx, r))
}

// Printer is a solver.Observer writing human-readable progress.
type Printer struct {
	W             io.Writer
	Color         bool
	ListThreshold int // list remaining candidates when fewer than this remain

	prevCandidates int
}

// Round prints r and, for a searching round, the input prompt.
func (p *Printer) Round(r solver.Round) {
	if len(r.Pattern) > 0 {
		fmt.Fprintln(p.W, p.Tiles(r.Pattern))
		fmt.Fprintf(p.W, "Had %d possibilities, down to %d\n", p.prevCandidates, len(r.Candidates))
	}
	p.prevCandidates = len(r.Candidates)

	switch r.Status() {
	case solver.Exhausted:
		if len(r.Candidates) == 0 {
			fmt.Fprintln(p.W, "No matching word.")
		} else {
			fmt.Fprintln(p.W, "No guess left to propose.")
		}
		return
	case solver.Solved:
		w, _ := r.Answer()
		fmt.Fprintf(p.W, "The word: %s\n", p.paint(color.Green, w.String()))
		return
	}

	if len(r.Candidates) < p.ListThreshold {
		fmt.Fprintf(p.W, "Remaining possible words: %s\n", strings.Join(words.Strings(r.Candidates), ", "))
	}
	if len(r.Suggestions) > 1 {
		fmt.Fprintf(p.W, "Try one of: %s\n", strings.Join(words.Strings(r.Suggestions), ", "))
	} else {
		fmt.Fprintf(p.W, "Try: %s\n", p.paint(color.Bold, r.Guess.String()))
	}
	p.prompt()
}

// Rejected prints why input was refused and prompts again.
func (p *Printer) Rejected(_ solver.Round, input string, err error) {
	fmt.Fprintf(p.W, "%s %v\n", p.paint(color.Red, "Invalid input:"), err)
	p.prompt()
}

func (p *Printer) prompt() {
	fmt.Fprint(p.W, "Result: ")
}

// Tiles renders a pattern as one block per letter.
func (p *Printer) Tiles(pat feedback.Pattern) string {
	var b strings.Builder
	for _, c := range pat {
		tile := " " + strings.ToUpper(string(c.Letter)) + " "
		if !p.Color {
			tile = fmt.Sprintf("[%c%c]", c.Letter, c.State.Code())
		}
		switch c.State {
		case feedback.Positioned:
			b.WriteString(p.paint(color.Green, tile))
		case feedback.Present:
			b.WriteString(p.paint(color.Yellow, tile))
		default:
			b.WriteString(p.paint(color.Gray, tile))
		}
	}
	return b.String()
}

func (p *Printer) paint(c, s string) string {
	if !p.Color {
		return s
	}
	return color.Ize(c, s)
}
