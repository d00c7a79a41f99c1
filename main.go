// apps/go-solver/main.go
//
// Entry point for the solver CLI.
// Responsibilities:
//   - Load .env, the optional YAML config, and command-line overrides.
//   - Configure zerolog (level from LOG_LEVEL, console output on stderr).
//   - Register the solve, simulate, bench, runs, and serve commands.

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

var (
	// Global flags
	configPath  string
	verbose     bool
	hardMode    bool
	firstGuess  string
	suggestions int
	rule        string
	wordLength  int
	workers     int

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wordle-solver",
	Short: "Interactive Wordle solver",
	Long: `Proposes guesses for Wordle-style puzzles and narrows the possible
answers from the feedback you type after each guess.

Feedback is one letter per position: g (right place), y (in the word,
elsewhere), x (not in the word). Type "<code>" for the proposed guess or
"<guess> <code>" if you played something else.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		return nil
	},
	RunE: runSolve,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML config file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&hardMode, "hard", false, "Hard mode: only propose guesses consistent with all feedback")
	pf.StringVar(&firstGuess, "first", "", "First guess (default: built-in opener for the length)")
	pf.IntVar(&suggestions, "suggestions", 1, "Guesses to propose per round")
	pf.StringVar(&rule, "rule", "", "Duplicate-letter rule: simple or counted")
	pf.IntVar(&wordLength, "length", words.DefaultLength, "Letters per word")
	pf.IntVar(&workers, "workers", 0, "Parallel workers (default: GOMAXPROCS)")

	rootCmd.AddCommand(solveCmd, simulateCmd, benchCmd, runsCmd, serveCmd)
}

// applyFlags overlays flags the user set explicitly; unset flags keep the
// values from the config file and environment.
func applyFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	if fs.Changed("hard") {
		cfg.Solver.HardMode = hardMode
	}
	if fs.Changed("first") {
		cfg.Solver.FirstGuess = firstGuess
	}
	if fs.Changed("suggestions") {
		cfg.Solver.Suggestions = suggestions
	}
	if fs.Changed("rule") {
		cfg.Solver.Rule = rule
	}
	if fs.Changed("length") {
		cfg.Words.Length = wordLength
	}
	if fs.Changed("workers") {
		cfg.Solver.Workers = workers
	}
}

func loadLists() (*words.Lists, error) {
	lists, err := words.Load(words.Options{
		AnswersPath: cfg.Words.AnswersFile,
		AllowedPath: cfg.Words.AllowedFile,
		Length:      cfg.Words.Length,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load word lists: %w", err)
	}
	a, g := lists.Stats()
	log.Debug().Int("answers", a).Int("allowed", g).Int("length", lists.Length).Msg("word lists loaded")
	return lists, nil
}

func solverConfig() solver.Config {
	l := log.Logger
	return solver.Config{
		HardMode:       cfg.Solver.HardMode,
		NumSuggestions: cfg.Solver.Suggestions,
		Rule:           cfg.Rule(),
		Workers:        cfg.Solver.Workers,
		Log:            &l,
	}
}

// opener returns the configured or built-in first guess; zero means the
// solver computes one.
func opener(lists *words.Lists) (words.Word, error) {
	fg := cfg.Opener()
	if fg == "" {
		return words.Word{}, nil
	}
	w, err := words.ParseLen(fg, lists.Length)
	if err != nil {
		return words.Word{}, fmt.Errorf("first guess: %w", err)
	}
	if !lists.IsAllowed(fg) {
		log.Warn().Str("first", fg).Msg("first guess is not in the guess dictionary")
	}
	return w, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
