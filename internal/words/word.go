// apps/go-solver/internal/words/word.go
//
// Word is the immutable, lowercase, fixed-length unit every other package
// works with. Alongside the letters it caches a 26-bit mask of the distinct
// letters it contains so membership checks during pattern computation are a
// single AND.

package words

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyWord = errors.New("words: empty word")
	ErrWordChar  = errors.New("words: word must contain only letters a-z")
	ErrWordLen   = errors.New("words: word has wrong length")
)

// Word is a normalized dictionary entry. The zero value is the empty word.
type Word struct {
	s    string
	mask uint32
}

// Parse lowercases and trims s and checks that it is made of a–z only.
func Parse(s string) (Word, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Word{}, ErrEmptyWord
	}
	var mask uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return Word{}, fmt.Errorf("%w: %q", ErrWordChar, s)
		}
		mask |= 1 << (c - 'a')
	}
	return Word{s: s, mask: mask}, nil
}

// ParseLen is Parse plus a length check.
func ParseLen(s string, n int) (Word, error) {
	w, err := Parse(s)
	if err != nil {
		return Word{}, err
	}
	if w.Len() != n {
		return Word{}, fmt.Errorf("%w: %q is %d letters, want %d", ErrWordLen, w.s, w.Len(), n)
	}
	return w, nil
}

// MustParse is Parse for literals; it panics on invalid input.
func MustParse(s string) Word {
	w, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return w
}

// MustParseAll parses every entry of ss with MustParse.
func MustParseAll(ss ...string) []Word {
	out := make([]Word, 0, len(ss))
	for _, s := range ss {
		out = append(out, MustParse(s))
	}
	return out
}

func (w Word) String() string { return w.s }

// Len is the number of letters.
func (w Word) Len() int { return len(w.s) }

// At returns the letter at position i.
func (w Word) At(i int) byte { return w.s[i] }

// IsZero reports whether w is the empty word.
func (w Word) IsZero() bool { return w.s == "" }

// Has reports whether letter occurs anywhere in w.
func (w Word) Has(letter byte) bool {
	if letter < 'a' || letter > 'z' {
		return false
	}
	return w.mask&(1<<(letter-'a')) != 0
}

// Strings converts ws back to plain strings, keeping order.
func Strings(ws []Word) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.s
	}
	return out
}

// Index returns the position of w in ws or -1.
func Index(ws []Word, w Word) int {
	for i, x := range ws {
		if x.s == w.s {
			return i
		}
	}
	return -1
}
