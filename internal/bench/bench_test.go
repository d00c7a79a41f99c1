package bench

import (
	"bytes"
	"context"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func tinyLists(t *testing.T) *words.Lists {
	t.Helper()
	lists, err := words.FromStrings(2, []string{"ab", "ac", "ad"}, []string{"bc", "cb", "zz"})
	require.NoError(t, err)
	return lists
}

func TestRunComputedOpener(t *testing.T) {
	rep, err := Run(context.Background(), tinyLists(t), Options{Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, "bc", rep.First)
	assert.Equal(t, 3, rep.Words)
	assert.Equal(t, 3, rep.Solved)
	assert.Equal(t, map[int]int{1: 3}, rep.Histogram)
	assert.InDelta(t, 1.0, rep.Mean, 1e-9)
	assert.Equal(t, 1, rep.Max)
	assert.Empty(t, rep.FailedWords())
	assert.NotEmpty(t, rep.ID)
}

func TestRunGivenOpener(t *testing.T) {
	var progress bytes.Buffer
	rep, err := Run(context.Background(), tinyLists(t), Options{
		First:    words.MustParse("ab"),
		Workers:  3,
		Progress: &progress,
	})
	require.NoError(t, err)

	assert.Equal(t, map[int]int{1: 1, 2: 2}, rep.Histogram)
	assert.Equal(t, []int{1, 2}, rep.Rounds())
	assert.InDelta(t, 5.0/3, rep.Mean, 1e-9)
	assert.Equal(t, 2, rep.Max)
	assert.NotZero(t, progress.Len())
}

func TestRunLimit(t *testing.T) {
	rep, err := Run(context.Background(), tinyLists(t), Options{First: words.MustParse("ab"), Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Words)
	assert.Equal(t, map[int]int{1: 1}, rep.Histogram)
}

func TestRunDoesNotDependOnWorkers(t *testing.T) {
	lists, err := words.Load(words.Options{Length: 4})
	require.NoError(t, err)

	opts := Options{First: words.MustParse("stag"), Rule: pattern.RuleCounted, Limit: 40}
	opts.Workers = 1
	seq, err := Run(context.Background(), lists, opts)
	require.NoError(t, err)
	opts.Workers = 8
	par, err := Run(context.Background(), lists, opts)
	require.NoError(t, err)

	assert.Equal(t, seq.Histogram, par.Histogram)
	assert.Equal(t, seq.Solved, par.Solved)
	assert.Equal(t, "counted", par.Rule)

	opts.Workers = 0
	auto, err := Run(context.Background(), lists, opts)
	require.NoError(t, err)
	assert.Equal(t, seq.Histogram, auto.Histogram)
	assert.Equal(t, seq.Mean, auto.Mean)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, tinyLists(t), Options{First: words.MustParse("ab"), Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFailedWords(t *testing.T) {
	rep := &Report{
		Failed:  bitset.New(3),
		answers: words.MustParseAll("ab", "ac", "ad"),
	}
	rep.Failed.Set(0).Set(2)
	assert.Equal(t, []string{"ab", "ad"}, rep.FailedWords())
}
