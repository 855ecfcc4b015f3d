package benchmark

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

var (
	// ErrRunNotFound is returned when a run ID is not in the history.
	ErrRunNotFound = errors.New("run not found in history")
	// ErrDuplicateRun is returned when saving a run whose ID is already stored.
	ErrDuplicateRun = errors.New("run already in history")
	// ErrNoComparableRuns is returned when the history holds fewer than two
	// runs of the same plan.
	ErrNoComparableRuns = errors.New("not enough comparable runs")
)

// History stores saved sweep runs.
type History interface {
	Save(run Run) error
	Get(id string) (Run, error)
	List() ([]Run, error)
	LatestPair() (prev, curr Run, err error)
}

// historyDoc is the on-disk layout, runs keyed by ID.
type historyDoc struct {
	Runs map[string]Run `json:"runs"`
}

// HistoryFile implements History on a single JSON file. Every save rewrites
// the file through a temporary file and a rename, so readers never see a
// partial document.
type HistoryFile struct {
	path string
}

// OpenHistory returns the history stored at path, creating its directory.
// The file itself is created on the first Save.
func OpenHistory(path string) (*HistoryFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory %s: %w", dir, err)
	}
	return &HistoryFile{path: path}, nil
}

func (h *HistoryFile) load() (historyDoc, error) {
	doc := historyDoc{Runs: map[string]Run{}}
	data, err := os.ReadFile(h.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return doc, nil
	}

	// Files written before runs were keyed hold a bare array.
	if data[0] == '[' {
		var runs []Run
		if err := json.Unmarshal(data, &runs); err != nil {
			return doc, fmt.Errorf("failed to parse history %s: %w", h.path, err)
		}
		for _, r := range runs {
			doc.Runs[r.ID] = r
		}
		return doc, nil
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to parse history %s: %w", h.path, err)
	}
	if doc.Runs == nil {
		doc.Runs = map[string]Run{}
	}
	return doc, nil
}

func (h *HistoryFile) write(doc historyDoc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(h.path), ".history-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary history file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close history: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), h.path)
}

// Save adds run to the history. Runs are immutable once saved.
func (h *HistoryFile) Save(run Run) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run has no ID", ErrInvalidConfig)
	}
	doc, err := h.load()
	if err != nil {
		return err
	}
	if _, ok := doc.Runs[run.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRun, run.ID)
	}
	doc.Runs[run.ID] = run
	return h.write(doc)
}

// Get returns the run with the given ID.
func (h *HistoryFile) Get(id string) (Run, error) {
	doc, err := h.load()
	if err != nil {
		return Run{}, err
	}
	run, ok := doc.Runs[id]
	if !ok {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, nil
}

// List returns every run, oldest first. Runs saved at the same instant are
// ordered by ID.
func (h *HistoryFile) List() ([]Run, error) {
	doc, err := h.load()
	if err != nil {
		return nil, err
	}
	runs := make([]Run, 0, len(doc.Runs))
	for _, r := range doc.Runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].Timestamp.Before(runs[j].Timestamp)
		}
		return runs[i].ID < runs[j].ID
	})
	return runs, nil
}

// LatestPair returns the newest run and the newest earlier run that swept
// the same plan, so their configurations line up.
func (h *HistoryFile) LatestPair() (Run, Run, error) {
	runs, err := h.List()
	if err != nil {
		return Run{}, Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, Run{}, fmt.Errorf("%w: history is empty", ErrNoComparableRuns)
	}
	curr := runs[len(runs)-1]
	for i := len(runs) - 2; i >= 0; i-- {
		if runs[i].Plan == curr.Plan {
			return runs[i], curr, nil
		}
	}
	return Run{}, Run{}, fmt.Errorf("%w: no earlier run with plan %q", ErrNoComparableRuns, curr.Plan)
}
