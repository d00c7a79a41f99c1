// apps/go-solver/internal/selector/selector.go
//
// Selector: picks the next guess (or a ranked list of guesses) from the
// eligible pool.
//
// Ordering, lowest first:
//   1. score against the current candidate set
//   2. guesses that could themselves be the answer
//   3. position in the pool
//
// Everything here is a pure function of its arguments.

package selector

import (
	"context"
	"errors"
	"sort"

	mapset "github.com/deckarep/golang-set"

	"github.com/robalobadob/wordle/apps/go-solver/internal/score"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// ErrNoCandidates is returned when asked to rank against an empty candidate
// set, where scores are undefined.
var ErrNoCandidates = errors.New("selector: no candidates to score against")

// Ranked is a scored guess with its solution flag.
type Ranked struct {
	Word      words.Word
	Score     float64
	Candidate bool // the guess is still a possible answer
}

// Rank scores every pool word and sorts the pool by the selector ordering.
func Rank(ctx context.Context, s *score.Scorer, pool, candidates []words.Word) ([]Ranked, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if s == nil {
		s = &score.Scorer{}
	}
	scored, err := s.ScoreAll(ctx, pool, candidates)
	if err != nil {
		return nil, err
	}

	answers := mapset.NewSet()
	for _, c := range candidates {
		answers.Add(c.String())
	}

	ranked := make([]Ranked, len(scored))
	for i, sc := range scored {
		ranked[i] = Ranked{Word: sc.Word, Score: sc.Score, Candidate: answers.Contains(sc.Word.String())}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	return ranked, nil
}

// SelectBest returns the best guess in pool. ok is false when pool is empty.
func SelectBest(ctx context.Context, s *score.Scorer, pool, candidates []words.Word) (best words.Word, ok bool, err error) {
	if len(pool) == 0 {
		return words.Word{}, false, nil
	}
	ranked, err := Rank(ctx, s, pool, candidates)
	if err != nil {
		return words.Word{}, false, err
	}
	return ranked[0].Word, true, nil
}

// SelectTopK returns at most k guesses in selector order. k <= 0 means the
// whole pool.
func SelectTopK(ctx context.Context, s *score.Scorer, pool, candidates []words.Word, k int) ([]words.Word, error) {
	if len(pool) == 0 {
		return nil, nil
	}
	ranked, err := Rank(ctx, s, pool, candidates)
	if err != nil {
		return nil, err
	}
	if k <= 0 || k > len(ranked) {
		k = len(ranked)
	}
	out := make([]words.Word, k)
	for i := range out {
		out[i] = ranked[i].Word
	}
	return out, nil
}

// less orders by score, then solution flag. Pool order is kept by the
// stable sort.
func less(a, b Ranked) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Candidate && !b.Candidate
}
