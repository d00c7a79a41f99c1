// apps/go-solver/internal/bench/bench.go
//
// Strategy benchmark: simulate the solver against every answer in the
// solution list and summarize how many rounds it needed.
//
// Hidden words are simulated in parallel, each with its own single-worker
// solver, so the report does not depend on scheduling.

package bench

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sort"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Options configures one benchmark run.
type Options struct {
	First    words.Word
	HardMode bool
	Rule     pattern.Rule
	Workers  int       // concurrent simulations; GOMAXPROCS when zero
	Limit    int       // simulate only the first Limit answers when > 0
	Progress io.Writer // progress bar destination; none when nil
	Log      *zerolog.Logger
}

// Report is the outcome of a benchmark run.
type Report struct {
	ID        string
	First     string
	HardMode  bool
	Rule      string
	Words     int
	Solved    int
	Histogram map[int]int    // rounds → number of words
	Failed    *bitset.BitSet // indexes into the simulated answers
	Mean      float64
	Max       int
	StartedAt time.Time
	Elapsed   time.Duration

	answers []words.Word
}

// FailedWords lists the answers the solver could not pin down.
func (r *Report) FailedWords() []string {
	var out []string
	for i, ok := r.Failed.NextSet(0); ok; i, ok = r.Failed.NextSet(i + 1) {
		out = append(out, r.answers[i].String())
	}
	return out
}

// Rounds returns histogram keys in ascending order.
func (r *Report) Rounds() []int {
	keys := make([]int, 0, len(r.Histogram))
	for k := range r.Histogram {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Run simulates every answer in lists (or the first opts.Limit of them).
func Run(ctx context.Context, lists *words.Lists, opts Options) (*Report, error) {
	answers := lists.Answers
	if opts.Limit > 0 && opts.Limit < len(answers) {
		answers = answers[:opts.Limit]
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	sv := solver.New(solver.Config{
		HardMode: opts.HardMode,
		Rule:     opts.Rule,
		Workers:  1,
		Log:      opts.Log,
	})
	if opts.First.IsZero() {
		// Compute the opener once instead of once per simulated word.
		r, err := solver.New(solver.Config{Rule: opts.Rule}).Start(ctx, words.Word{}, lists.Allowed, lists.Answers)
		if err != nil {
			return nil, err
		}
		opts.First = r.Guess
	}

	rep := &Report{
		ID:        uuid.NewString(),
		First:     opts.First.String(),
		HardMode:  opts.HardMode,
		Rule:      opts.Rule.String(),
		Words:     len(answers),
		Histogram: make(map[int]int),
		Failed:    bitset.New(uint(len(answers))),
		StartedAt: time.Now().UTC(),
		answers:   answers,
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions64(int64(len(answers)),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("simulating"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	rounds := make([]int, len(answers))
	failed := make([]bool, len(answers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, hidden := range answers {
		g.Go(func() error {
			n, err := sv.RoundsToSolve(gctx, hidden, opts.First, lists.Allowed, lists.Answers)
			switch {
			case errors.Is(err, solver.ErrCandidatesExhausted):
				failed[i] = true
			case err != nil:
				return err
			}
			rounds[i] = n
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	var total int
	for i, n := range rounds {
		if failed[i] {
			rep.Failed.Set(uint(i))
			continue
		}
		rep.Solved++
		rep.Histogram[n]++
		total += n
		if n > rep.Max {
			rep.Max = n
		}
	}
	if rep.Solved > 0 {
		rep.Mean = float64(total) / float64(rep.Solved)
	}
	rep.Elapsed = time.Since(rep.StartedAt)
	return rep, nil
}
