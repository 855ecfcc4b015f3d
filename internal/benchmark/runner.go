package benchmark

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// MicroResult is one line of `go test -bench` output, used to cross-check
// the wall-clock sweep against the testing package's own measurements.
type MicroResult struct {
	Name        string  `json:"name"`
	Iterations  int64   `json:"iterations"`
	NsPerOp     float64 `json:"ns_per_op"`
	BytesPerOp  int64   `json:"bytes_per_op"`
	AllocsPerOp int64   `json:"allocs_per_op"`
}

// MsPerOp converts NsPerOp to the unit used in result files.
func (r MicroResult) MsPerOp() float64 {
	return r.NsPerOp / 1e6
}

// Runner defines the interface for running Go micro-benchmarks.
type Runner interface {
	Run(ctx context.Context, packagePath, pattern string) ([]MicroResult, error)
}

// GoRunner implements Runner using the 'go test' command.
type GoRunner struct {
	// Command builds the process; tests replace it.
	Command func(ctx context.Context, name string, args ...string) *exec.Cmd
}

var (
	// BenchmarkSort/bubble/random/1000-8   1000   1000 ns/op   100 B/op   10 allocs/op
	benchRegex = regexp.MustCompile(`^(Benchmark\S+?)(?:-\d+)?\s+(\d+)\s+([\d\.]+)\s+ns/op(?:\s+([\d\.]+)\s+B/op\s+(\d+)\s+allocs/op)?`)
)

func NewGoRunner() *GoRunner {
	return &GoRunner{Command: exec.CommandContext}
}

func (r *GoRunner) Run(ctx context.Context, packagePath, pattern string) ([]MicroResult, error) {
	if pattern == "" {
		pattern = "."
	}
	args := []string{"test", "-bench=" + pattern, "-benchmem", "-run=^$", packagePath}
	cmd := r.Command(ctx, "go", args...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("benchmark execution failed: %w\nOutput:\n%s", err, out.String())
	}

	return ParseOutput(out.String()), nil
}

// ParseOutput parses standard Go benchmark output.
func ParseOutput(output string) []MicroResult {
	var results []MicroResult
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		matches := benchRegex.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if matches == nil {
			continue
		}
		res := MicroResult{Name: matches[1]}

		if val, err := strconv.ParseInt(matches[2], 10, 64); err == nil {
			res.Iterations = val
		}
		if val, err := strconv.ParseFloat(matches[3], 64); err == nil {
			res.NsPerOp = val
		}
		// B/op and allocs/op only appear with -benchmem
		if matches[4] != "" {
			if val, err := strconv.ParseFloat(matches[4], 64); err == nil {
				res.BytesPerOp = int64(val)
			}
		}
		if matches[5] != "" {
			if val, err := strconv.ParseInt(matches[5], 10, 64); err == nil {
				res.AllocsPerOp = val
			}
		}

		results = append(results, res)
	}

	return results
}
