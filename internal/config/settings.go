package config

import (
	"fmt"
	"strings"

	"sortbench/internal/benchmark"
	"sortbench/internal/dataset"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// StoreSettings selects the results store backend.
type StoreSettings struct {
	Type string
	DSN  string
}

// Settings is the typed view of the loaded configuration.
type Settings struct {
	Sizes         []int
	Start         int
	Step          int
	Max           int
	Shapes        []string
	Trials        int
	Output        string
	StatusColumn  bool
	FailurePolicy string
	Seed          int64
	MemoryLimit   int64
	Store         StoreSettings
	HistoryFile   string
	MetricsAddr   string
	Verbose       bool
	LogFile       string
}

// FromViper reads Settings from the global viper instance.
func FromViper() (Settings, error) {
	sizes, err := intList("sizes")
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Sizes:         sizes,
		Start:         viper.GetInt("sweep.start"),
		Step:          viper.GetInt("sweep.step"),
		Max:           viper.GetInt("sweep.max"),
		Shapes:        stringList("shapes"),
		Trials:        viper.GetInt("trials"),
		Output:        viper.GetString("output"),
		StatusColumn:  viper.GetBool("status_column"),
		FailurePolicy: viper.GetString("failure_policy"),
		Seed:          viper.GetInt64("seed"),
		MemoryLimit:   viper.GetInt64("memory_limit"),
		Store: StoreSettings{
			Type: viper.GetString("store.type"),
			DSN:  viper.GetString("store.dsn"),
		},
		HistoryFile: viper.GetString("history_file"),
		MetricsAddr: viper.GetString("metrics_addr"),
		Verbose:     viper.GetBool("verbose"),
		LogFile:     viper.GetString("log_file"),
	}, nil
}

// Plan converts the sweep settings into a benchmark plan.
func (s Settings) Plan() (benchmark.Plan, error) {
	shapes, err := dataset.ParseShapes(s.Shapes)
	if err != nil {
		return benchmark.Plan{}, err
	}
	return benchmark.Plan{
		Sizes:  s.Sizes,
		Start:  s.Start,
		Step:   s.Step,
		Max:    s.Max,
		Shapes: shapes,
		Trials: s.Trials,
	}, nil
}

// Policy parses the failure policy.
func (s Settings) Policy() (benchmark.Policy, error) {
	return benchmark.ParsePolicy(s.FailurePolicy)
}

// intList accepts a YAML list, a bound IntSlice flag or a comma separated
// environment value.
func intList(key string) ([]int, error) {
	raw := viper.Get(key)
	if s, ok := raw.(string); ok {
		var out []int
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(strings.Trim(strings.TrimSpace(part), "[]"))
			if part == "" {
				continue
			}
			n, err := cast.ToIntE(part)
			if err != nil {
				return nil, fmt.Errorf("%s: invalid integer %q", key, part)
			}
			out = append(out, n)
		}
		return out, nil
	}
	if raw == nil {
		return nil, nil
	}
	out, err := cast.ToIntSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return out, nil
}

// stringList splits comma separated entries, which is how environment
// variables carry lists.
func stringList(key string) []string {
	var out []string
	for _, item := range viper.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
