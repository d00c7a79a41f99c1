package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/bench"
	"github.com/robalobadob/wordle/apps/go-solver/internal/console"
	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

var (
	noColor bool

	simAnswer string
	simDaily  bool
	simDate   string
	simSave   bool

	benchLimit int
	benchSave  bool
	benchQuiet bool

	runsLimit int
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve interactively, reading feedback from stdin",
	RunE:  runSolve,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play the solver against a known hidden word",
	Example: `  wordle-solver simulate --answer crane
  wordle-solver simulate --daily --date 2024-03-01`,
	RunE: runSimulate,
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Simulate every answer and summarize rounds needed",
	RunE:  runBench,
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List the best stored benchmark runs",
	RunE:  runRuns,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the solver over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored tiles")
	solveCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored tiles")

	simulateCmd.Flags().StringVar(&simAnswer, "answer", "", "Hidden word")
	simulateCmd.Flags().BoolVar(&simDaily, "daily", false, "Use the word of the day")
	simulateCmd.Flags().StringVar(&simDate, "date", "", "Day for --daily (YYYY-MM-DD, default today)")
	simulateCmd.Flags().BoolVar(&simSave, "save", false, "Record the simulation in the results database")
	simulateCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored tiles")

	benchCmd.Flags().IntVar(&benchLimit, "limit", 0, "Simulate only the first N answers")
	benchCmd.Flags().BoolVar(&benchSave, "save", true, "Record the run in the results database")
	benchCmd.Flags().BoolVarP(&benchQuiet, "quiet", "q", false, "No progress bar")

	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Number of runs to list")
}

// signalContext is cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	lists, err := loadLists()
	if err != nil {
		return err
	}
	first, err := opener(lists)
	if err != nil {
		return err
	}

	printer := &console.Printer{
		W:             cmd.OutOrStdout(),
		Color:         !noColor,
		ListThreshold: cfg.Solver.ListThreshold,
	}
	out, err := solver.New(solverConfig()).Run(ctx, first, lists.Allowed, lists.Answers,
		console.NewSource(ctx, cmd.InOrStdin()), printer)
	if err != nil {
		if errors.Is(err, solver.ErrNoEligibleGuess) {
			return fmt.Errorf("dictionaries are inconsistent: %w", err)
		}
		return err
	}
	if out.Closed {
		fmt.Fprintln(cmd.OutOrStdout())
		log.Info().Int("round", out.Final.Number).Msg("input closed")
	}
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	lists, err := loadLists()
	if err != nil {
		return err
	}

	sc := solverConfig()
	g, dateKey, err := simulationGame(lists, sc.Rule)
	if err != nil {
		return err
	}

	first, err := opener(lists)
	if err != nil {
		return err
	}
	printer := &console.Printer{W: cmd.OutOrStdout(), Color: !noColor, ListThreshold: cfg.Solver.ListThreshold}
	out, err := solver.New(sc).Run(ctx, first, lists.Allowed, lists.Answers, game.Source{Game: g}, printer)
	if errors.Is(err, game.ErrNotInList) {
		return fmt.Errorf("simulated puzzle rejected a guess (check --first): %w", err)
	}
	if err != nil {
		return err
	}
	// Fresh line after the last prompt.
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "%s in %d rounds\n", out.Status, out.Rounds)

	if !simSave {
		return nil
	}
	res, err := results.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer res.Close()

	opened := first.String()
	if len(g.Guesses) > 0 {
		opened = g.Guesses[0].String()
	}
	if dateKey != "" {
		done, err := res.DailySimulated(ctx, dateKey, opened, sc.HardMode, sc.Rule.String())
		if err != nil {
			return err
		}
		if done {
			log.Info().Str("date", dateKey).Msg("daily simulation already recorded")
			return nil
		}
	}
	return res.InsertSimulation(ctx, results.Simulation{
		Hidden:     g.Answer.String(),
		FirstGuess: opened,
		HardMode:   sc.HardMode,
		Rule:       sc.Rule.String(),
		Rounds:     out.Rounds,
		Solved:     out.Status == solver.Solved,
		Date:       dateKey,
	})
}

// simulationGame builds the oracle for simulate from --daily/--date or
// --answer. Guesses outside the allowed list are rejected by the game.
func simulationGame(lists *words.Lists, rule pattern.Rule) (*game.Game, string, error) {
	switch {
	case simDaily:
		day := time.Now().UTC()
		if simDate != "" {
			var err error
			if day, err = time.Parse("2006-01-02", simDate); err != nil {
				return nil, "", fmt.Errorf("--date: %w", err)
			}
		}
		return game.Pick(lists, daily.WordIndex(day, cfg.Server.DailySalt, len(lists.Answers)), rule), daily.DateKey(day), nil
	case simAnswer != "":
		hidden, ok := lists.Lookup(strings.ToLower(simAnswer))
		if !ok || !lists.IsAnswer(hidden.String()) {
			return nil, "", fmt.Errorf("%q is not in the answer list", simAnswer)
		}
		g := game.New(hidden, rule)
		g.Lists = lists
		return g, "", nil
	}
	return nil, "", errors.New("one of --answer or --daily is required")
}

func runBench(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	lists, err := loadLists()
	if err != nil {
		return err
	}
	first, err := opener(lists)
	if err != nil {
		return err
	}
	sc := solverConfig()
	opts := bench.Options{
		First:    first,
		HardMode: sc.HardMode,
		Rule:     sc.Rule,
		Workers:  sc.Workers,
		Limit:    benchLimit,
		Log:      sc.Log,
	}
	if !benchQuiet {
		opts.Progress = os.Stderr
	}

	rep, err := bench.Run(ctx, lists, opts)
	if err != nil {
		return err
	}
	printReport(cmd, rep)

	if !benchSave {
		return nil
	}
	res, err := results.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer res.Close()
	if err := res.InsertRun(ctx, rep); err != nil {
		return err
	}
	log.Info().Str("run", rep.ID).Str("db", cfg.Database).Msg("run recorded")
	return nil
}

func printReport(cmd *cobra.Command, rep *bench.Report) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "first=%s hard=%t rule=%s\n", rep.First, rep.HardMode, rep.Rule)
	fmt.Fprintf(w, "solved %d/%d, mean %.3f rounds, max %d, took %s\n",
		rep.Solved, rep.Words, rep.Mean, rep.Max, rep.Elapsed.Round(time.Millisecond))
	for _, n := range rep.Rounds() {
		fmt.Fprintf(w, "%3d %5d %s\n", n, rep.Histogram[n], strings.Repeat("#", barLen(rep.Histogram[n], rep.Words)))
	}
	if failed := rep.FailedWords(); len(failed) > 0 {
		fmt.Fprintf(w, "unsolved: %s\n", strings.Join(failed, ", "))
	}
}

func barLen(n, total int) int {
	if total == 0 {
		return 0
	}
	return n * 60 / total
}

func runRuns(cmd *cobra.Command, args []string) error {
	res, err := results.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer res.Close()

	rows, err := res.Leaderboard(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIRST\tHARD\tRULE\tSOLVED\tMEAN\tMAX\tWHEN\tID")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%t\t%s\t%d/%d\t%.3f\t%d\t%s\t%s\n",
			r.FirstGuess, r.HardMode, r.Rule, r.Solved, r.Words, r.MeanRounds, r.MaxRounds, r.CreatedAt, r.ID)
	}
	return tw.Flush()
}

func runServe(cmd *cobra.Command, args []string) error {
	lists, err := loadLists()
	if err != nil {
		return err
	}

	res, err := results.Open(cfg.Database)
	if err != nil {
		log.Warn().Err(err).Str("db", cfg.Database).Msg("results database unavailable; persistence disabled")
		res = nil
	} else {
		defer res.Close()
	}

	srv := httpserver.New(store.NewMemoryStore(), lists, res, httpserver.Options{
		Solver:        solverConfig(),
		FirstGuess:    cfg.Opener(),
		JWTSecret:     cfg.Server.JWTSecret,
		DailySalt:     cfg.Server.DailySalt,
		ClientOrigin:  os.Getenv("CLIENT_ORIGIN"),
		ListThreshold: cfg.Solver.ListThreshold,
	})
	log.Info().Str("port", cfg.Server.Port).Msg("starting go-solver")
	return srv.Start(":" + cfg.Server.Port)
}
