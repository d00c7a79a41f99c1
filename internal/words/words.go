// apps/go-solver/internal/words/words.go
//
// Word list management for the solver.
//
// Responsibilities:
//   - Load the solution list ("answers") and the guess dictionary ("allowed")
//     from configured files, or fall back to the embedded defaults in assets.
//   - Normalize entries to lowercase a–z words of exactly the run's length.
//   - Keep answers ⊆ allowed and expose quick lookups.
//
// Initialization behavior (Load):
//   1. AnswersPath and AllowedPath both set: answers from the first file,
//      extra guesses from the second.
//   2. Only AllowedPath set: that file is used for both lists.
//   3. Neither set: embedded defaults from assets.
//
// Lists are loaded once at startup and never mutated afterwards.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
)

// DefaultLength is the word length used when none is configured.
const DefaultLength = 5

var ErrNoAnswers = errors.New("words: answers list is empty")

// Options selects where word lists come from.
type Options struct {
	AnswersPath string // WORDS_ANSWERS_FILE
	AllowedPath string // WORDS_ALLOWED_FILE
	Length      int    // letters per word; DefaultLength when zero
}

// Lists holds both dictionaries for one run.
type Lists struct {
	Length  int
	Answers []Word // solution dictionary, file order
	Allowed []Word // guess dictionary, answers first then extra guesses

	answerSet  map[string]struct{}
	allowedSet map[string]struct{}
}

// Load reads and normalizes both lists according to opts.
func Load(opts Options) (*Lists, error) {
	n := opts.Length
	if n <= 0 {
		n = DefaultLength
	}

	var ansList, allowList []Word
	var err error
	switch {
	case opts.AnswersPath != "" && opts.AllowedPath != "":
		if ansList, err = readWordFile(opts.AnswersPath, n); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(opts.AllowedPath, n); err != nil {
			return nil, err
		}

	case opts.AllowedPath != "":
		if allowList, err = readWordFile(opts.AllowedPath, n); err != nil {
			return nil, err
		}
		ansList = allowList

	default:
		if ansList, err = readEmbedded(assets.AnswersFile, n); err != nil {
			return nil, err
		}
		if allowList, err = readEmbedded(assets.AllowedFile, n); err != nil {
			return nil, err
		}
	}
	return New(n, ansList, allowList)
}

// New builds Lists from already parsed words. Every answer is also allowed.
func New(n int, answers, allowed []Word) (*Lists, error) {
	l := &Lists{Length: n}
	l.Answers, l.answerSet = dedupe(answers)
	if len(l.Answers) == 0 {
		return nil, ErrNoAnswers
	}
	l.Allowed, l.allowedSet = dedupe(answers, allowed)
	return l, nil
}

// FromStrings is New for string literals; entries of the wrong length are
// dropped the same way file entries are.
func FromStrings(n int, answers, allowed []string) (*Lists, error) {
	return New(n, normalize(answers, n), normalize(allowed, n))
}

// IsAllowed reports whether w may be guessed.
func (l *Lists) IsAllowed(w string) bool {
	_, ok := l.allowedSet[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// IsAnswer reports whether w is in the solution list.
func (l *Lists) IsAnswer(w string) bool {
	_, ok := l.answerSet[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// Lookup returns the allowed word spelled s.
func (l *Lists) Lookup(s string) (Word, bool) {
	w, err := ParseLen(s, l.Length)
	if err != nil || !l.IsAllowed(w.String()) {
		return Word{}, false
	}
	return w, true
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *Lists) Stats() (answersCount int, allowedCount int) {
	return len(l.Answers), len(l.Allowed)
}

// dedupe concatenates lists, dropping repeats while keeping first-seen order.
func dedupe(lists ...[]Word) ([]Word, map[string]struct{}) {
	var out []Word
	seen := make(map[string]struct{})
	for _, ws := range lists {
		for _, w := range ws {
			if _, ok := seen[w.String()]; ok {
				continue
			}
			seen[w.String()] = struct{}{}
			out = append(out, w)
		}
	}
	return out, seen
}

// readWordFile loads one word per line from a file.
func readWordFile(path string, n int) ([]Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	out, err := readWords(f, n)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

func readEmbedded(name string, n int) ([]Word, error) {
	f, err := assets.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open embedded %s: %w", name, err)
	}
	defer f.Close()
	return readWords(f, n)
}

// readWords keeps valid n-letter words; blank lines and '#' comments are skipped.
func readWords(r io.Reader, n int) ([]Word, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		lines = append(lines, s)
	}
	return normalize(lines, n), sc.Err()
}

func normalize(lines []string, n int) []Word {
	var out []Word
	for _, s := range lines {
		if w, err := ParseLen(s, n); err == nil {
			out = append(out, w)
		}
	}
	return out
}
