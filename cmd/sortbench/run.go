package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"sortbench/internal/benchmark"
	"sortbench/internal/config"
	"sortbench/internal/dataset"
	"sortbench/internal/db"
	"sortbench/internal/metrics"
	"sortbench/internal/profiling"
	"sortbench/internal/telemetry"
	"sortbench/internal/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	runCPUProfile string
	runSave       bool
)

// Seams replaced in tests.
var (
	newResultsStore = db.NewStore
	newHistoryStore = func(path string) (benchmark.History, error) { return benchmark.OpenHistory(path) }
	gitCommit       = func() string {
		out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(out))
	}
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the sorting benchmark sweep",
	Long: `Runs every algorithm on every (size, shape) configuration and writes one CSV row
per configuration with the mean time in milliseconds.

Sizes come from --sizes when given, otherwise from --start to --max in steps of
--step. A configuration that cannot allocate its data is marked as a Failure;
--policy decides whether the sweep halts or skips to the next configuration.`,
	Example: `  sortbench run --sizes 100,500,1000 --trials 5 --status=false
  sortbench run --max 2000 --shapes random,sorted --policy skip --save`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.IntSlice("sizes", nil, "Explicit comma-separated sizes (overrides --start/--step)")
	f.Int("start", benchmark.DefaultStart, "First size of the sweep")
	f.Int("step", benchmark.DefaultStep, "Size increment of the sweep")
	f.Int("max", benchmark.DefaultMax, "Largest size of the sweep (inclusive)")
	f.StringSlice("shapes", []string{"random", "sorted", "partially_sorted", "reverse_sorted"}, "Input shapes to measure")
	f.Int("trials", benchmark.DefaultTrials, "Trials averaged per configuration")
	f.StringP("output", "o", "results.csv", "CSV results file")
	f.Bool("status", true, "Add the Status column to the results file")
	f.String("policy", string(benchmark.PolicyHalt), "What to do after a failed configuration: halt or skip")
	f.Int64("seed", 0, "Random seed (0 seeds from the clock)")
	f.Int64("memory-limit", dataset.DefaultMemoryLimit, "Largest dataset allocation in bytes (0 disables the limit)")
	f.String("metrics-addr", "", "Serve Prometheus metrics on this address while running, e.g. :9090")
	f.StringVar(&runCPUProfile, "cpuprofile", "", "Write a CPU profile to this file")
	f.BoolVar(&runSave, "save", false, "Append the run to the JSON history file")

	bind := map[string]string{
		"sizes":          "sizes",
		"sweep.start":    "start",
		"sweep.step":     "step",
		"sweep.max":      "max",
		"shapes":         "shapes",
		"trials":         "trials",
		"output":         "output",
		"status_column":  "status",
		"failure_policy": "policy",
		"seed":           "seed",
		"memory_limit":   "memory-limit",
		"metrics_addr":   "metrics-addr",
	}
	for key, flag := range bind {
		viper.BindPFlag(key, f.Lookup(flag))
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	settings, err := config.FromViper()
	if err != nil {
		return err
	}
	plan, err := settings.Plan()
	if err != nil {
		return err
	}
	policy, err := settings.Policy()
	if err != nil {
		return err
	}
	configs, err := plan.Configs()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runCPUProfile != "" {
		stopProfile, err := profiling.StartCPUProfile(runCPUProfile)
		if err != nil {
			return err
		}
		defer func() {
			if err := stopProfile(); err != nil {
				telemetry.LogError("Failed to write CPU profile", err, "path", runCPUProfile)
			}
		}()
	}

	genOpts := []dataset.Option{dataset.WithMemoryLimit(settings.MemoryLimit)}
	if settings.Seed != 0 {
		genOpts = append(genOpts, dataset.WithSeed(settings.Seed))
	}
	gen := dataset.NewGenerator(genOpts...)

	m := metrics.NewMetrics()
	if settings.MetricsAddr != "" {
		go func() {
			if err := telemetry.StartMetricsServer(ctx, settings.MetricsAddr, m.Handler()); err != nil {
				slog.Warn("Failed to start metrics server", "addr", settings.MetricsAddr, "error", err)
			}
		}()
	}

	out, err := os.Create(settings.Output)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer out.Close()

	csvSink, err := benchmark.NewCSVSink(out, settings.StatusColumn)
	if err != nil {
		return err
	}

	store, err := newResultsStore(db.StoreConfig{Type: settings.Store.Type, ConnectionString: settings.Store.DSN})
	if err != nil {
		return fmt.Errorf("failed to open results store: %w", err)
	}
	defer store.Close()

	run := benchmark.Run{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		GoVersion: runtime.Version(),
		Plan:      describePlan(plan),
		Trials:    plan.Trials,
	}
	if err := store.SaveRun(db.RunInfo{
		ID:        run.ID,
		StartedAt: run.Timestamp,
		Trials:    plan.Trials,
		Policy:    string(policy),
		Plan:      run.Plan,
		Status:    db.RunRunning,
	}); err != nil {
		return fmt.Errorf("failed to register run: %w", err)
	}

	collector := &benchmark.Collector{}
	sink := benchmark.MultiSink{csvSink, db.RecordSink{Store: store, RunID: run.ID}, collector}
	driver := benchmark.NewDriver(gen,
		benchmark.WithPolicy(policy),
		benchmark.WithObserver(m),
		benchmark.WithTimer(benchmark.NewTimer(gen.Guard())),
	)

	telemetry.LogInfo("Starting sweep", "run_id", run.ID, "configurations", len(configs), "trials", plan.Trials,
		"policy", string(policy), "memory_limit", utils.FormatBytes(settings.MemoryLimit), "output", settings.Output)
	sum, sweepErr := driver.Sweep(ctx, configs, sink)

	if err := store.FinishRun(run.ID, runStatus(sweepErr)); err != nil {
		telemetry.LogError("Failed to finish run in results store", err, "run_id", run.ID)
	}

	if runSave {
		run.Commit = gitCommit()
		run.Records = collector.Records
		history, err := newHistoryStore(settings.HistoryFile)
		if err == nil {
			err = history.Save(run)
		}
		if err != nil {
			return fmt.Errorf("failed to save history: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Run saved to %s\n", settings.HistoryFile)
	}

	written, omitted := csvSink.Counts()
	fmt.Fprintf(cmd.OutOrStdout(), "Run %s: %d/%d configurations, %d succeeded, %d failed in %s\n",
		run.ID, sum.Configurations, len(configs), sum.Succeeded, sum.Failed, sum.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s", written, settings.Output)
	if omitted > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), " (%d failed configurations omitted)", omitted)
	}
	fmt.Fprintln(cmd.OutOrStdout())

	return sweepErr
}

func runStatus(err error) db.RunStatus {
	switch {
	case err == nil:
		return db.RunCompleted
	case errors.Is(err, benchmark.ErrSweepHalted):
		return db.RunHalted
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return db.RunCancelled
	}
	return db.RunFailed
}

func describePlan(p benchmark.Plan) string {
	shapes := make([]string, len(p.Shapes))
	for i, s := range p.Shapes {
		shapes[i] = s.String()
	}
	var sizes string
	if len(p.Sizes) > 0 {
		sizes = strings.Trim(strings.Join(strings.Fields(fmt.Sprint(p.Sizes)), ","), "[]")
	} else {
		sizes = fmt.Sprintf("%d..%d/%d", p.Start, p.Max, p.Step)
	}
	return fmt.Sprintf("sizes=%s shapes=%s", sizes, strings.Join(shapes, ","))
}
