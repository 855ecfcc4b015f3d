package main

import (
	"os"
	"path/filepath"
	"testing"

	"sortbench/internal/benchmark"
	"sortbench/internal/dataset"
	"sortbench/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readResults(t *testing.T, path string) []benchmark.Record {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	recs, err := benchmark.ReadCSV(f)
	require.NoError(t, err)
	return recs
}

func TestRunCmd_Success(t *testing.T) {
	store := useMemoryStore(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "results.csv")
	t.Setenv("SORTBENCH_SIZES", "10,20")
	t.Setenv("SORTBENCH_SHAPES", "sorted,reverse_sorted")

	output, err := executeCommand(rootCmd, "run", "--trials", "2", "--seed", "7", "--output", out)
	require.NoError(t, err)
	assert.Contains(t, output, "4/4 configurations, 4 succeeded, 0 failed")
	assert.Contains(t, output, "Wrote 4 rows to "+out)

	recs := readResults(t, out)
	require.Len(t, recs, 4)
	want := []struct {
		size  int
		shape dataset.Shape
	}{{10, dataset.Sorted}, {10, dataset.ReverseSorted}, {20, dataset.Sorted}, {20, dataset.ReverseSorted}}
	for i, w := range want {
		assert.Equal(t, w.size, recs[i].Size)
		assert.Equal(t, w.shape, recs[i].Shape)
		assert.Equal(t, benchmark.StatusSuccess, recs[i].Status)
	}

	require.Len(t, store.runs, 1)
	assert.Equal(t, db.RunCompleted, store.runs[0].Status)
	assert.Equal(t, 2, store.runs[0].Trials)
	assert.Equal(t, "sizes=10,20 shapes=sorted,reverse_sorted", store.runs[0].Plan)
	assert.Len(t, store.records[store.runs[0].ID], 4)
	assert.True(t, store.closed)
}

func TestRunCmd_ListedSizesIgnoreSweepBound(t *testing.T) {
	useMemoryStore(t)
	out := filepath.Join(t.TempDir(), "results.csv")
	t.Setenv("SORTBENCH_SIZES", "30,60")
	t.Setenv("SORTBENCH_SHAPES", "sorted")

	output, err := executeCommand(rootCmd, "run", "--trials", "1", "--max", "40", "--output", out)
	require.NoError(t, err)
	assert.Contains(t, output, "2/2 configurations, 2 succeeded, 0 failed")

	recs := readResults(t, out)
	require.Len(t, recs, 2)
	assert.Equal(t, 30, recs[0].Size)
	assert.Equal(t, 60, recs[1].Size)
}

func TestRunCmd_HaltOnAllocationFailure(t *testing.T) {
	store := useMemoryStore(t)
	out := filepath.Join(t.TempDir(), "results.csv")
	t.Setenv("SORTBENCH_SIZES", "10,11")
	t.Setenv("SORTBENCH_SHAPES", "sorted,random")

	// 80 bytes hold exactly ten int64 values.
	_, err := executeCommand(rootCmd, "run", "--trials", "1", "--memory-limit", "80", "--output", out)
	require.Error(t, err)
	assert.ErrorIs(t, err, benchmark.ErrSweepHalted)
	assert.ErrorIs(t, err, dataset.ErrAllocation)

	recs := readResults(t, out)
	require.Len(t, recs, 3)
	assert.Equal(t, benchmark.StatusSuccess, recs[1].Status)
	assert.Equal(t, 11, recs[2].Size)
	assert.Equal(t, dataset.Sorted, recs[2].Shape)
	assert.Equal(t, benchmark.StatusFailure, recs[2].Status)

	require.Len(t, store.runs, 1)
	assert.Equal(t, db.RunHalted, store.runs[0].Status)
}

func TestRunCmd_SkipWithoutStatusColumn(t *testing.T) {
	store := useMemoryStore(t)
	out := filepath.Join(t.TempDir(), "results.csv")
	t.Setenv("SORTBENCH_SIZES", "10,11")
	t.Setenv("SORTBENCH_SHAPES", "sorted,random")

	output, err := executeCommand(rootCmd, "run", "--trials", "1", "--memory-limit", "80",
		"--policy", "skip", "--status=false", "--output", out)
	require.NoError(t, err)
	assert.Contains(t, output, "(2 failed configurations omitted)")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Size,Type,BubbleSortTime,MergeSortTime,QuickSortTime\n")
	assert.NotContains(t, string(data), "Status")
	assert.Len(t, readResults(t, out), 2)

	// The store keeps failed configurations either way.
	recs := store.records[store.runs[0].ID]
	require.Len(t, recs, 4)
	assert.True(t, recs[2].Failed())
	assert.True(t, recs[3].Failed())
	assert.Equal(t, db.RunCompleted, store.runs[0].Status)
}

func TestRunCmd_SaveHistory(t *testing.T) {
	useMemoryStore(t)
	dir := t.TempDir()
	historyPath := filepath.Join(dir, "hist", "history.json")
	t.Setenv("SORTBENCH_SIZES", "16")
	t.Setenv("SORTBENCH_SHAPES", "random")
	t.Setenv("SORTBENCH_HISTORY_FILE", historyPath)

	oldCommit := gitCommit
	gitCommit = func() string { return "abc123" }
	defer func() { gitCommit = oldCommit }()

	output, err := executeCommand(rootCmd, "run", "--trials", "1", "--save", "--output", filepath.Join(dir, "r.csv"))
	require.NoError(t, err)
	assert.Contains(t, output, "Run saved to "+historyPath)

	h, err := benchmark.OpenHistory(historyPath)
	require.NoError(t, err)
	runs, err := h.List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "abc123", runs[0].Commit)
	assert.NotEmpty(t, runs[0].ID)
	assert.NotEmpty(t, runs[0].GoVersion)
	assert.Equal(t, "sizes=16 shapes=random", runs[0].Plan)
	require.Len(t, runs[0].Records, 1)
	assert.Equal(t, 16, runs[0].Records[0].Size)
}

func TestRunCmd_CPUProfile(t *testing.T) {
	useMemoryStore(t)
	dir := t.TempDir()
	prof := filepath.Join(dir, "cpu.pprof")
	t.Setenv("SORTBENCH_SIZES", "200")
	t.Setenv("SORTBENCH_SHAPES", "random")

	_, err := executeCommand(rootCmd, "run", "--trials", "1", "--cpuprofile", prof, "--output", filepath.Join(dir, "r.csv"))
	require.NoError(t, err)

	info, err := os.Stat(prof)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRunCmd_InvalidConfiguration(t *testing.T) {
	useMemoryStore(t)
	_, err := executeCommand(rootCmd, "run", "--trials", "0", "--output", filepath.Join(t.TempDir(), "r.csv"))
	require.Error(t, err)
	assert.Equal(t, "exit-1", err.Error())
}

func TestRunStatus(t *testing.T) {
	assert.Equal(t, db.RunCompleted, runStatus(nil))
	assert.Equal(t, db.RunHalted, runStatus(benchmark.ErrSweepHalted))
	assert.Equal(t, db.RunFailed, runStatus(os.ErrPermission))
}

func TestDescribePlan(t *testing.T) {
	p := benchmark.DefaultPlan()
	assert.Equal(t, "sizes=100..5000/10 shapes=random,sorted,partially_sorted,reverse_sorted", describePlan(p))
}
