package selector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/score"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func best(t *testing.T, pool, candidates []string) string {
	t.Helper()
	w, ok, err := SelectBest(context.Background(), nil, words.MustParseAll(pool...), words.MustParseAll(candidates...))
	require.NoError(t, err)
	require.True(t, ok)
	return w.String()
}

func TestSelectBestLowestScore(t *testing.T) {
	// bc splits {ab, ac, ad} into singletons; ab leaves a group of two.
	assert.Equal(t, "bc", best(t, []string{"ab", "zz", "bc"}, []string{"ab", "ac", "ad"}))
}

func TestSelectBestTiePrefersCandidate(t *testing.T) {
	// Against {ab, ba} every guess below makes two singleton groups.
	assert.Equal(t, "ab", best(t, []string{"bz", "ab"}, []string{"ab", "ba"}))
	assert.Equal(t, "ba", best(t, []string{"bz", "ba", "ab"}, []string{"ab", "ba"}))
}

func TestSelectBestTieKeepsPoolOrder(t *testing.T) {
	// bc and cb score the same and neither is a candidate.
	assert.Equal(t, "cb", best(t, []string{"cb", "bc"}, []string{"ab", "ac", "ad"}))
	assert.Equal(t, "bc", best(t, []string{"bc", "cb"}, []string{"ab", "ac", "ad"}))
}

func TestSelectBestEmptyPool(t *testing.T) {
	_, ok, err := SelectBest(context.Background(), nil, nil, words.MustParseAll("ab"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRankNoCandidates(t *testing.T) {
	_, err := Rank(context.Background(), nil, words.MustParseAll("ab"), nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestRank(t *testing.T) {
	ranked, err := Rank(context.Background(), &score.Scorer{Workers: 2},
		words.MustParseAll("zz", "ab", "bc", "cb"), words.MustParseAll("ab", "ac", "ad"))
	require.NoError(t, err)

	got := make([]string, len(ranked))
	for i, r := range ranked {
		got[i] = r.Word.String()
	}
	assert.Equal(t, []string{"bc", "cb", "ab", "zz"}, got)
	assert.True(t, ranked[2].Candidate)
	assert.False(t, ranked[0].Candidate)
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestSelectTopK(t *testing.T) {
	ctx := context.Background()
	pool := words.MustParseAll("zz", "ab", "bc", "cb")
	cands := words.MustParseAll("ab", "ac", "ad")

	top, err := SelectTopK(ctx, nil, pool, cands, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"bc", "cb"}, words.Strings(top))

	all, err := SelectTopK(ctx, nil, pool, cands, 0)
	require.NoError(t, err)
	assert.Len(t, all, len(pool))

	over, err := SelectTopK(ctx, nil, pool, cands, 10)
	require.NoError(t, err)
	assert.Equal(t, words.Strings(all), words.Strings(over))

	none, err := SelectTopK(ctx, nil, nil, cands, 3)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSelectBestTieWithUnevenGroups(t *testing.T) {
	// Every 3-letter word over a..e without repeats. abc and bac are mirror
	// images under a↔b: same group sizes, both candidates, so pool order
	// decides every time.
	var cands []string
	for _, x := range "abcde" {
		for _, y := range "abcde" {
			for _, z := range "abcde" {
				if x != y && y != z && x != z {
					cands = append(cands, string([]rune{x, y, z}))
				}
			}
		}
	}
	groups := score.Partition(words.MustParse("abc"), words.MustParseAll(cands...))
	sizes := make(map[int]bool)
	for _, n := range groups {
		sizes[n] = true
	}
	require.Greater(t, len(sizes), 1, "partition should have uneven groups")

	for i := 0; i < 100; i++ {
		require.Equal(t, "abc", best(t, []string{"abc", "bac"}, cands))
		require.Equal(t, "bac", best(t, []string{"bac", "abc"}, cands))
	}
}
