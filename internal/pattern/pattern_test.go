package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

var sample = words.MustParseAll(
	"raise", "rates", "crane", "later", "alter", "alert", "arise", "least",
	"eerie", "there", "geese", "speed", "abbey", "lares", "sassy", "stash",
)

func code(r Rule, guess, candidate string) string {
	return feedback.Encode(r.Compute(words.MustParse(guess), words.MustParse(candidate)))
}

func TestComputeExample(t *testing.T) {
	p := Compute(words.MustParse("raise"), words.MustParse("rates"))
	assert.Equal(t, "ggxyy", feedback.Encode(p))
	assert.Equal(t, "raise", p.Guess())
}

func TestComputeSolved(t *testing.T) {
	for _, r := range []Rule{RuleSimple, RuleCounted} {
		for _, w := range sample {
			assert.True(t, r.Compute(w, w).Solved(), "%s: %s against itself", r, w)
		}
	}
}

func TestDuplicateLetters(t *testing.T) {
	tests := []struct {
		guess, candidate string
		simple, counted  string
	}{
		{"eerie", "there", "yyyxg", "yxyxg"},
		{"speed", "abide", "xxyyy", "xxyxy"},
		{"sassy", "stash", "gyygx", "gyxgx"},
		{"geese", "speed", "xygyy", "xygyx"},
	}
	for _, tt := range tests {
		t.Run(tt.guess+"/"+tt.candidate, func(t *testing.T) {
			assert.Equal(t, tt.simple, code(RuleSimple, tt.guess, tt.candidate))
			assert.Equal(t, tt.counted, code(RuleCounted, tt.guess, tt.candidate))
		})
	}
}

func TestComputeDeterministic(t *testing.T) {
	for _, r := range []Rule{RuleSimple, RuleCounted} {
		for _, g := range sample {
			for _, c := range sample {
				require.True(t, r.Compute(g, c).Equal(r.Compute(g, c)))
			}
		}
	}
}

// Every word is consistent with the feedback it would itself produce.
func TestSelfConsistency(t *testing.T) {
	for _, r := range []Rule{RuleSimple, RuleCounted} {
		for _, g := range sample {
			for _, c := range sample {
				require.True(t, r.Applies(r.Compute(g, c), c), "%s: %s vs %s", r, g, c)
			}
		}
	}
}

func TestAppliesExample(t *testing.T) {
	p, err := feedback.Decode("gyxxg", words.MustParse("lares"))
	require.NoError(t, err)

	tests := []struct {
		word string
		want bool
	}{
		{"loans", true},
		{"llama", false}, // s must be last
		{"lamps", false}, // a at position 1 contradicts Present
		{"lords", false}, // r is Absent
		{"lotus", false}, // a is missing
		{"stag", false},  // wrong length
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Applies(p, words.MustParse(tt.word)), tt.word)
	}
}

func TestFilter(t *testing.T) {
	p := Compute(words.MustParse("raise"), words.MustParse("rates"))
	got := Filter(p, sample)

	assert.Equal(t, []string{"rates"}, words.Strings(got))
	assert.Len(t, sample, 16, "input is not modified")

	// Filtering never grows the set and keeps the input order.
	for _, r := range []Rule{RuleSimple, RuleCounted} {
		for _, g := range sample {
			for _, hidden := range sample {
				out := r.Filter(r.Compute(g, hidden), sample)
				require.LessOrEqual(t, len(out), len(sample))
				require.GreaterOrEqual(t, words.Index(out, hidden), 0)
				last := -1
				for _, w := range out {
					i := words.Index(sample, w)
					require.Greater(t, i, last)
					last = i
				}
			}
		}
	}
}

func TestParseRule(t *testing.T) {
	r, err := ParseRule("")
	require.NoError(t, err)
	assert.Equal(t, RuleSimple, r)

	r, err = ParseRule(" Counted ")
	require.NoError(t, err)
	assert.Equal(t, RuleCounted, r)
	assert.Equal(t, "counted", r.String())

	_, err = ParseRule("strict")
	assert.Error(t, err)
}
