package main

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"sortbench/internal/benchmark"
	"sortbench/internal/db"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// executeCommand executes a cobra command and returns its output.
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	return executeCommandWithInput(root, "", args...)
}

func executeCommandWithInput(root *cobra.Command, input string, args ...string) (out string, err error) {
	resetFlags(root)
	// Mock exit
	oldExit := exit
	exit = func(code int) {
		if code != 0 {
			panic(fmt.Sprintf("exit-%d", code))
		}
	}
	defer func() { exit = oldExit }()

	b := new(bytes.Buffer)
	defer func() {
		if r := recover(); r != nil {
			if s, ok := r.(string); ok && strings.HasPrefix(s, "exit-") {
				out, err = b.String(), fmt.Errorf("%s", s)
				return
			}
			panic(r) // Re-panic actual panics
		}
	}()
	root.SetArgs(args)
	root.SetOut(b)
	root.SetErr(b)
	root.SetIn(bytes.NewBufferString(input))
	err = root.Execute()
	return b.String(), err
}

// resetFlags resets all flags to their default values. Slice flags append
// once changed, so tests set sizes and shapes through the environment.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// memoryStore is an in-memory db.Store.
type memoryStore struct {
	mu      sync.Mutex
	runs    []db.RunInfo
	records map[string][]benchmark.Record
	closed  bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: map[string][]benchmark.Record{}}
}

func (m *memoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *memoryStore) SaveRun(run db.RunInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

func (m *memoryStore) SaveRecord(runID string, rec benchmark.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[runID] = append(m.records[runID], rec)
	return nil
}

func (m *memoryStore) FinishRun(runID string, status db.RunStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.runs {
		if m.runs[i].ID == runID {
			m.runs[i].Status = status
			return nil
		}
	}
	return db.ErrRunNotFound
}

func (m *memoryStore) ListRuns(limit int) ([]db.RunInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db.RunInfo
	for i := len(m.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}

func (m *memoryStore) Records(runID string) ([]benchmark.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[runID], nil
}

// useMemoryStore routes the results store to an in-memory store for the
// duration of the test.
func useMemoryStore(t interface{ Cleanup(func()) }) *memoryStore {
	store := newMemoryStore()
	old := newResultsStore
	newResultsStore = func(db.StoreConfig) (db.Store, error) { return store, nil }
	t.Cleanup(func() { newResultsStore = old })
	return store
}
