package solver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type rejection struct {
	round Round
	input string
	err   error
}

type recorder struct {
	rounds   []Round
	rejected []rejection
}

func (r *recorder) Round(x Round) { r.rounds = append(r.rounds, x) }
func (r *recorder) Rejected(x Round, in string, err error) {
	r.rejected = append(r.rejected, rejection{x, in, err})
}

func lines(ls ...string) ChanSource {
	ch := make(chan string, len(ls))
	for _, l := range ls {
		ch <- l
	}
	close(ch)
	return ch
}

func TestRunSolves(t *testing.T) {
	obs := &recorder{}
	out, err := New(Config{}).Run(context.Background(), words.Word{}, pool, candidates, lines("xg"), obs)
	require.NoError(t, err)
	require.NoError(t, out.Err())

	assert.Equal(t, Solved, out.Status)
	assert.Equal(t, "ac", out.Answer.String())
	assert.Equal(t, 1, out.Rounds)
	assert.False(t, out.Closed)
	require.Len(t, obs.rounds, 2)
	assert.Equal(t, 1, obs.rounds[0].Number)
	assert.Equal(t, 2, obs.rounds[1].Number)
}

func TestRunRejectsBadInputAndKeepsState(t *testing.T) {
	obs := &recorder{}
	out, err := New(Config{}).Run(context.Background(), words.Word{}, pool, candidates,
		lines("gq", "a b c", "bc xgx", "xg"), obs)
	require.NoError(t, err)
	assert.Equal(t, Solved, out.Status)

	require.Len(t, obs.rejected, 3)
	assert.ErrorIs(t, obs.rejected[0].err, feedback.ErrInvalidFeedbackCode)
	assert.ErrorIs(t, obs.rejected[1].err, feedback.ErrMalformedInputLine)
	assert.ErrorIs(t, obs.rejected[2].err, feedback.ErrLengthMismatch)
	for _, r := range obs.rejected {
		assert.Equal(t, 1, r.round.Number)
		assert.Len(t, r.round.Candidates, 3)
		assert.Equal(t, "bc", r.round.Guess.String())
	}
	// Round 1 is announced once, not once per retry.
	assert.Len(t, obs.rounds, 2)
}

func TestRunAcceptsOtherGuess(t *testing.T) {
	// The player typed "ab" instead of the proposed "bc".
	out, err := New(Config{}).Run(context.Background(), words.Word{}, pool, candidates, lines("ab gx", "gg"), nil)
	require.NoError(t, err)
	assert.Equal(t, Solved, out.Status)
	assert.Equal(t, "ac", out.Answer.String())
	assert.Equal(t, 2, out.Rounds)
}

func TestRunClosedSource(t *testing.T) {
	out, err := New(Config{}).Run(context.Background(), words.Word{}, pool, candidates, lines(), nil)
	require.NoError(t, err)
	assert.True(t, out.Closed)
	assert.Equal(t, Searching, out.Status)
	assert.Equal(t, 0, out.Rounds)
}

func TestRunExhausted(t *testing.T) {
	out, err := New(Config{}).Run(context.Background(), words.MustParse("bc"), pool, candidates, lines("gg"), nil)
	require.NoError(t, err)
	assert.Equal(t, Exhausted, out.Status)
	assert.ErrorIs(t, out.Err(), ErrCandidatesExhausted)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := make(chan string)
	done := make(chan error, 1)
	go func() {
		_, err := New(Config{}).Run(ctx, words.Word{}, pool, candidates, ChanSource(src), nil)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

type failingSource struct{ err error }

func (f failingSource) Next(context.Context, words.Word) (string, error) { return "", f.err }

func TestRunSourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(Config{}).Run(context.Background(), words.Word{}, pool, candidates, failingSource{boom}, nil)
	assert.ErrorIs(t, err, boom)
}

func TestRoundsToSolve(t *testing.T) {
	s := New(Config{})
	ctx := context.Background()

	n, err := s.RoundsToSolve(ctx, words.MustParse("ac"), words.MustParse("bc"), pool, candidates)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "one guess leaves a single candidate")

	n, err = s.RoundsToSolve(ctx, words.MustParse("ab"), words.MustParse("ab"), pool, candidates)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.RoundsToSolve(ctx, words.MustParse("ad"), words.MustParse("zz"), pool, candidates)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRoundsToSolveUnknownWord(t *testing.T) {
	_, err := New(Config{}).RoundsToSolve(context.Background(), words.MustParse("zz"), words.Word{}, pool, candidates)
	assert.ErrorIs(t, err, ErrCandidatesExhausted)
}

func TestRoundsToSolveRealLists(t *testing.T) {
	lists, err := words.Load(words.Options{})
	require.NoError(t, err)

	for _, rule := range []pattern.Rule{pattern.RuleSimple, pattern.RuleCounted} {
		for _, hard := range []bool{false, true} {
			s := New(Config{Rule: rule, HardMode: hard})
			for _, hidden := range words.MustParseAll("crane", "raise", "least") {
				n, err := s.RoundsToSolve(context.Background(), hidden, words.MustParse("lares"), lists.Allowed, lists.Answers)
				require.NoError(t, err, "%s rule=%s hard=%t", hidden, rule, hard)
				assert.GreaterOrEqual(t, n, 1)
				assert.LessOrEqual(t, n, 10)
			}
		}
	}
}
