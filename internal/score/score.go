// apps/go-solver/internal/score/score.go
//
// Scoring engine. A guess is rated by how evenly it splits the candidate set
// across feedback patterns:
//
//   target = |candidates| / 3^L
//   score  = Σ (target - size)² / #groups
//
// i.e. the population variance of the group sizes around the size every
// group would have if all 3^L ternary patterns were equally likely. Lower is
// better: many small groups beat a few large ones. This orders guesses much
// like entropy does at a fraction of the cost.

package score

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Scored pairs a guess with its score.
type Scored struct {
	Word  words.Word
	Score float64
}

// Scorer rates guesses under a feedback rule. The zero value scores with
// RuleSimple on GOMAXPROCS workers.
type Scorer struct {
	Rule    pattern.Rule
	Workers int
}

// Score rates guess against candidates with RuleSimple.
func Score(guess words.Word, candidates []words.Word) float64 {
	var s Scorer
	return s.Score(guess, candidates)
}

// Partition counts candidates per feedback code for guess under RuleSimple.
func Partition(guess words.Word, candidates []words.Word) map[string]int {
	var s Scorer
	return s.Partition(guess, candidates)
}

// Partition counts candidates per feedback code for guess.
func (s *Scorer) Partition(guess words.Word, candidates []words.Word) map[string]int {
	groups := make(map[string]int)
	for _, c := range candidates {
		groups[feedback.Encode(s.Rule.Compute(guess, c))]++
	}
	return groups
}

// Score rates guess against candidates. Scoring an empty candidate set is
// meaningless and yields NaN.
func (s *Scorer) Score(guess words.Word, candidates []words.Word) float64 {
	if len(candidates) == 0 {
		return math.NaN()
	}
	groups := s.Partition(guess, candidates)
	target := float64(len(candidates)) / math.Pow(3, float64(guess.Len()))

	// Σ(t-c)² = Σc² - 2tΣc + k·t², with Σc = |C|. The integer sum makes the
	// result independent of map iteration order, so equal partitions give
	// bit-identical scores.
	var sq int64
	for _, n := range groups {
		sq += int64(n) * int64(n)
	}
	k := float64(len(groups))
	n := float64(len(candidates))
	return (float64(sq)-2*target*n)/k + target*target
}

// ScoreAll scores every guess in pool. The result is in pool order no matter
// how the work was scheduled.
func (s *Scorer) ScoreAll(ctx context.Context, pool, candidates []words.Word) ([]Scored, error) {
	out := make([]Scored, len(pool))
	workers := s.workers()
	if workers == 1 {
		for i, w := range pool {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out[i] = Scored{Word: w, Score: s.Score(w, candidates)}
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, w := range pool {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = Scored{Word: w, Score: s.Score(w, candidates)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Scorer) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.GOMAXPROCS(0)
}
