package results

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/bench"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "data", "solver.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func report(id, first string, mean float64, hist map[int]int) *bench.Report {
	solved := 0
	for _, n := range hist {
		solved += n
	}
	return &bench.Report{
		ID:        id,
		First:     first,
		Rule:      "simple",
		Words:     solved,
		Solved:    solved,
		Histogram: hist,
		Mean:      mean,
		Max:       6,
		StartedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Elapsed:   1500 * time.Millisecond,
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.db")
	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()

	var n int
	require.NoError(t, st.db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestRunsAndLeaderboard(t *testing.T) {
	ctx := context.Background()
	st := openTest(t)

	require.NoError(t, st.InsertRun(ctx, report("r1", "lares", 3.9, map[int]int{3: 10, 4: 12, 5: 3})))
	require.NoError(t, st.InsertRun(ctx, report("r2", "crane", 3.6, map[int]int{2: 1, 3: 15, 4: 9})))

	rows, err := st.Leaderboard(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "r2", rows[0].ID)
	assert.Equal(t, "crane", rows[0].FirstGuess)
	assert.InDelta(t, 3.6, rows[0].MeanRounds, 1e-9)
	assert.Equal(t, 25, rows[0].Words)

	rows, err = st.Leaderboard(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	h, err := st.Histogram(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{3: 10, 4: 12, 5: 3}, h)

	h, err = st.Histogram(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestInsertRunDuplicateID(t *testing.T) {
	ctx := context.Background()
	st := openTest(t)
	require.NoError(t, st.InsertRun(ctx, report("r1", "lares", 3.9, map[int]int{3: 1})))
	assert.Error(t, st.InsertRun(ctx, report("r1", "lares", 3.9, map[int]int{3: 1})))
}

func TestSimulations(t *testing.T) {
	ctx := context.Background()
	st := openTest(t)

	daily := Simulation{Hidden: "crane", FirstGuess: "lares", Rule: "simple", Rounds: 3, Solved: true, Date: "2024-03-01"}
	done, err := st.DailySimulated(ctx, daily.Date, "lares", false, "simple")
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, st.InsertSimulation(ctx, daily))
	// Same day and strategy: ignored without error.
	require.NoError(t, st.InsertSimulation(ctx, daily))

	done, err = st.DailySimulated(ctx, daily.Date, "lares", false, "simple")
	require.NoError(t, err)
	assert.True(t, done)

	done, err = st.DailySimulated(ctx, daily.Date, "lares", true, "simple")
	require.NoError(t, err)
	assert.False(t, done, "hard mode is a different strategy")

	// Ad hoc simulations have no date and are never deduplicated.
	adhoc := Simulation{Hidden: "crane", FirstGuess: "lares", Rule: "simple", Rounds: 3, Solved: true}
	require.NoError(t, st.InsertSimulation(ctx, adhoc))
	require.NoError(t, st.InsertSimulation(ctx, adhoc))

	var n int
	require.NoError(t, st.db.QueryRow(`SELECT COUNT(1) FROM simulations`).Scan(&n))
	assert.Equal(t, 3, n)
}
