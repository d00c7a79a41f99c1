package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	for _, n := range []int{4, 5} {
		lists, err := Load(Options{Length: n})
		require.NoError(t, err)
		require.NotEmpty(t, lists.Answers)
		assert.Equal(t, n, lists.Length)

		for _, w := range lists.Allowed {
			require.Equal(t, n, w.Len(), "word %q", w)
		}
		for _, w := range lists.Answers {
			require.True(t, lists.IsAllowed(w.String()), "answer %q must be allowed", w)
		}
	}
}

func TestLoadDefaultLength(t *testing.T) {
	lists, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultLength, lists.Length)
	assert.True(t, lists.IsAllowed("lares"), "built-in opener must be guessable")
}

func writeList(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadFiles(t *testing.T) {
	answers := writeList(t, "answers.txt", "# comment\nCrane\n\nslate\ntoolong\ncrane\n")
	allowed := writeList(t, "allowed.txt", "lares\nsalet\nbad1s\n")

	lists, err := Load(Options{AnswersPath: answers, AllowedPath: allowed, Length: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, Strings(lists.Answers))
	assert.Equal(t, []string{"crane", "slate", "lares", "salet"}, Strings(lists.Allowed))

	a, g := lists.Stats()
	assert.Equal(t, 2, a)
	assert.Equal(t, 4, g)
	assert.True(t, lists.IsAnswer(" SLATE"))
	assert.False(t, lists.IsAnswer("lares"))
}

func TestLoadAllowedOnly(t *testing.T) {
	allowed := writeList(t, "allowed.txt", "stag\nlark\n")
	lists, err := Load(Options{AllowedPath: allowed, Length: 4})
	require.NoError(t, err)
	assert.Equal(t, Strings(lists.Allowed), Strings(lists.Answers))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Options{AllowedPath: filepath.Join(t.TempDir(), "nope.txt")})
	assert.Error(t, err)
}

func TestNewRejectsEmptyAnswers(t *testing.T) {
	_, err := FromStrings(5, []string{"abc"}, []string{"crane"})
	assert.ErrorIs(t, err, ErrNoAnswers)
}

func TestLookup(t *testing.T) {
	lists, err := FromStrings(5, []string{"crane"}, []string{"lares"})
	require.NoError(t, err)

	w, ok := lists.Lookup("LARES")
	require.True(t, ok)
	assert.Equal(t, "lares", w.String())

	_, ok = lists.Lookup("stage")
	assert.False(t, ok)
	_, ok = lists.Lookup("stag")
	assert.False(t, ok)
}
