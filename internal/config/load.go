package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"sortbench/internal/benchmark"
	"sortbench/internal/dataset"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultConfigName is the config file searched for in the working directory.
const DefaultConfigName = "sortbench"

// SetDefaults registers every key's default value.
func SetDefaults() {
	viper.SetDefault("sizes", []int{})
	viper.SetDefault("sweep.start", benchmark.DefaultStart)
	viper.SetDefault("sweep.step", benchmark.DefaultStep)
	viper.SetDefault("sweep.max", benchmark.DefaultMax)
	viper.SetDefault("shapes", shapeNames(dataset.AllShapes()))
	viper.SetDefault("trials", benchmark.DefaultTrials)
	viper.SetDefault("output", "results.csv")
	viper.SetDefault("status_column", true)
	viper.SetDefault("failure_policy", string(benchmark.PolicyHalt))
	viper.SetDefault("seed", 0)
	viper.SetDefault("memory_limit", dataset.DefaultMemoryLimit)
	viper.SetDefault("store.type", "sqlite")
	viper.SetDefault("store.dsn", ".sortbench/results.db")
	viper.SetDefault("history_file", ".sortbench/history.json")
	viper.SetDefault("metrics_addr", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
}

// Load initializes the configuration from file and environment variables.
// A missing config file is not an error; an unreadable one is.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(DefaultConfigName)
	}

	viper.SetEnvPrefix("SORTBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		if cfgFile == "" && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	slog.Debug("Using config file", "path", viper.ConfigFileUsed())
	return nil
}

// WriteDefault writes the current settings to path without overwriting an
// existing file.
func WriteDefault(path string) error {
	SetDefaults()
	if err := viper.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

func shapeNames(shapes []dataset.Shape) []string {
	names := make([]string, len(shapes))
	for i, s := range shapes {
		names[i] = s.String()
	}
	return names
}
