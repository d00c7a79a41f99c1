package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
)

// Config holds all solver configuration.
type Config struct {
	// Solver settings
	Solver SolverConfig `yaml:"solver"`

	// Word lists
	Words WordsConfig `yaml:"words"`

	// HTTP server
	Server ServerConfig `yaml:"server"`

	// Results database (SQLite path)
	Database string `yaml:"database"`

	// Log level for zerolog (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// SolverConfig configures guess selection.
type SolverConfig struct {
	FirstGuess    string `yaml:"first_guess"` // empty: built-in opener for the length
	HardMode      bool   `yaml:"hard_mode"`
	Suggestions   int    `yaml:"suggestions"`
	Rule          string `yaml:"rule"` // simple | counted
	Workers       int    `yaml:"workers"`
	ListThreshold int    `yaml:"list_threshold"` // print remaining candidates below this count
}

// WordsConfig configures the word source.
type WordsConfig struct {
	Length      int    `yaml:"length"`
	AnswersFile string `yaml:"answers_file"`
	AllowedFile string `yaml:"allowed_file"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port      string `yaml:"port"`
	JWTSecret string `yaml:"jwt_secret"`
	DailySalt string `yaml:"daily_salt"`
}

// openers are precomputed first guesses per word length.
var openers = map[int]string{
	4: "stag",
	5: "lares",
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			Suggestions:   1,
			Rule:          pattern.RuleSimple.String(),
			Workers:       runtime.GOMAXPROCS(0),
			ListThreshold: 10,
		},
		Words: WordsConfig{
			Length: 5,
		},
		Server: ServerConfig{
			Port:      "5176",
			JWTSecret: "dev_secret_change_me",
			DailySalt: "local_dev_salt",
		},
		Database: "./data/solver.db",
		LogLevel: "info",
	}
}

// Load returns defaults, overlaid with the YAML file at path (when path is
// non-empty), overlaid with environment variables.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	str := map[string]*string{
		"SOLVER_FIRST_GUESS": &c.Solver.FirstGuess,
		"SOLVER_RULE":        &c.Solver.Rule,
		"WORDS_ANSWERS_FILE": &c.Words.AnswersFile,
		"WORDS_ALLOWED_FILE": &c.Words.AllowedFile,
		"PORT":               &c.Server.Port,
		"JWT_SECRET":         &c.Server.JWTSecret,
		"DAILY_SALT":         &c.Server.DailySalt,
		"SOLVER_DB":          &c.Database,
		"LOG_LEVEL":          &c.LogLevel,
	}
	for k, dst := range str {
		if v := os.Getenv(k); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"SOLVER_SUGGESTIONS":    &c.Solver.Suggestions,
		"SOLVER_WORKERS":        &c.Solver.Workers,
		"SOLVER_LIST_THRESHOLD": &c.Solver.ListThreshold,
		"SOLVER_WORD_LENGTH":    &c.Words.Length,
	}
	for k, dst := range ints {
		if v := os.Getenv(k); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			*dst = n
		}
	}

	if v := os.Getenv("SOLVER_HARD_MODE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SOLVER_HARD_MODE: %w", err)
		}
		c.Solver.HardMode = b
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Words.Length < 2 || c.Words.Length > 12 {
		return fmt.Errorf("invalid word length %d (want 2-12)", c.Words.Length)
	}
	if _, err := pattern.ParseRule(c.Solver.Rule); err != nil {
		return err
	}
	if c.Solver.Suggestions < 1 {
		return fmt.Errorf("suggestions must be at least 1, got %d", c.Solver.Suggestions)
	}
	// 0 leaves the worker count to GOMAXPROCS.
	if c.Solver.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Solver.Workers)
	}
	if fg := strings.TrimSpace(c.Solver.FirstGuess); fg != "" && len(fg) != c.Words.Length {
		return fmt.Errorf("first guess %q does not have %d letters", fg, c.Words.Length)
	}
	return nil
}

// Opener returns the configured first guess, or the built-in one for the
// word length. Empty means the opener must be computed.
func (c *Config) Opener() string {
	if fg := strings.TrimSpace(c.Solver.FirstGuess); fg != "" {
		return strings.ToLower(fg)
	}
	return openers[c.Words.Length]
}

// Rule returns the parsed pattern rule; Validate reports parse errors.
func (c *Config) Rule() pattern.Rule {
	r, _ := pattern.ParseRule(c.Solver.Rule)
	return r
}
