// apps/go-solver/assets/embed.go
//
// Default word lists compiled into the binary. They are used whenever
// WORDS_ANSWERS_FILE / WORDS_ALLOWED_FILE are not configured, so the solver
// always has something to work with.

package assets

import (
	"embed"
	"io"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

// Names of the embedded lists.
const (
	AnswersFile = "answers.txt"
	AllowedFile = "allowed.txt"
)

// Open returns a reader over one of the embedded lists.
func Open(name string) (io.ReadCloser, error) {
	return FS.Open(name)
}
