// Package profiling captures CPU profiles of a sweep and summarises them.
package profiling

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"sort"

	"github.com/google/pprof/profile"
)

// StartCPUProfile starts writing a CPU profile to path. The returned stop
// function ends profiling and closes the file.
func StartCPUProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start cpu profile: %w", err)
	}
	return func() error {
		pprof.StopCPUProfile()
		return f.Close()
	}, nil
}

// Entry is the sample total attributed to one function.
type Entry struct {
	Function string
	Flat     int64
	Cum      int64
}

// Summary is a flat/cumulative breakdown of a profile.
type Summary struct {
	SampleType string
	Unit       string
	Total      int64
	Entries    []Entry
}

// FlatPercent returns e.Flat as a percentage of the profile total.
func (s Summary) FlatPercent(e Entry) float64 {
	if s.Total == 0 {
		return 0
	}
	return 100 * float64(e.Flat) / float64(s.Total)
}

// Summarize parses a pprof-encoded profile and returns the top n functions
// by flat value (all when n <= 0). The last sample type is used, which is
// cpu time for CPU profiles.
func Summarize(r io.Reader, n int) (Summary, error) {
	prof, err := profile.Parse(r)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to parse profile: %w", err)
	}
	return summarizeProfile(prof, n)
}

func summarizeProfile(prof *profile.Profile, n int) (Summary, error) {
	if len(prof.SampleType) == 0 {
		return Summary{}, fmt.Errorf("profile has no sample types")
	}
	idx := len(prof.SampleType) - 1
	sum := Summary{
		SampleType: prof.SampleType[idx].Type,
		Unit:       prof.SampleType[idx].Unit,
	}

	flat := map[string]int64{}
	cum := map[string]int64{}
	for _, s := range prof.Sample {
		if idx >= len(s.Value) {
			continue
		}
		v := s.Value[idx]
		sum.Total += v

		seen := map[string]bool{}
		for i, loc := range s.Location {
			for j, line := range loc.Line {
				if line.Function == nil {
					continue
				}
				name := line.Function.Name
				// Location[0].Line[0] is the innermost frame.
				if i == 0 && j == 0 {
					flat[name] += v
				}
				if !seen[name] {
					seen[name] = true
					cum[name] += v
				}
			}
		}
	}

	for name, c := range cum {
		sum.Entries = append(sum.Entries, Entry{Function: name, Flat: flat[name], Cum: c})
	}
	sort.Slice(sum.Entries, func(i, j int) bool {
		a, b := sum.Entries[i], sum.Entries[j]
		if a.Flat != b.Flat {
			return a.Flat > b.Flat
		}
		if a.Cum != b.Cum {
			return a.Cum > b.Cum
		}
		return a.Function < b.Function
	})
	if n > 0 && len(sum.Entries) > n {
		sum.Entries = sum.Entries[:n]
	}
	return sum, nil
}

// Write prints the summary in the style of `pprof -top`.
func (s Summary) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Total: %d %s (%s)\n%12s %7s %12s  %s\n",
		s.Total, s.Unit, s.SampleType, "flat", "flat%", "cum", "function"); err != nil {
		return err
	}
	for _, e := range s.Entries {
		if _, err := fmt.Fprintf(w, "%12d %6.2f%% %12d  %s\n", e.Flat, s.FlatPercent(e), e.Cum, e.Function); err != nil {
			return err
		}
	}
	return nil
}
