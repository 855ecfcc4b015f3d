package config

import (
	"fmt"
	"net"
	"strings"

	"sortbench/internal/benchmark"
	"sortbench/internal/dataset"

	"github.com/spf13/viper"
)

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	if trials := viper.GetInt("trials"); trials <= 0 {
		errors = append(errors, fmt.Sprintf("trials must be positive, got: %d", trials))
	}

	sizes, err := intList("sizes")
	if err != nil {
		errors = append(errors, err.Error())
	}
	for _, s := range sizes {
		if s <= 0 {
			errors = append(errors, fmt.Sprintf("sizes must be positive, got: %d", s))
		}
	}

	// The range only matters when no explicit sizes are given.
	if len(sizes) == 0 {
		start := viper.GetInt("sweep.start")
		step := viper.GetInt("sweep.step")
		max := viper.GetInt("sweep.max")
		if start <= 0 {
			errors = append(errors, fmt.Sprintf("sweep.start must be positive, got: %d", start))
		}
		if step <= 0 {
			errors = append(errors, fmt.Sprintf("sweep.step must be positive, got: %d", step))
		}
		if max < start {
			errors = append(errors, fmt.Sprintf("sweep.max must not be below sweep.start, got: %d < %d", max, start))
		}
	}

	shapes := stringList("shapes")
	if len(shapes) == 0 {
		errors = append(errors, "shapes must not be empty")
	}
	if _, err := dataset.ParseShapes(shapes); err != nil {
		errors = append(errors, err.Error())
	}

	if _, err := benchmark.ParsePolicy(viper.GetString("failure_policy")); err != nil {
		errors = append(errors, err.Error())
	}

	if limit := viper.GetInt64("memory_limit"); limit < 0 {
		errors = append(errors, fmt.Sprintf("memory_limit must not be negative, got: %d", limit))
	}

	switch t := strings.ToLower(viper.GetString("store.type")); t {
	case "", "none", "sqlite", "sqlite3", "postgres", "postgresql":
	default:
		errors = append(errors, fmt.Sprintf("store.type must be one of sqlite, postgres, none, got: %s", t))
	}

	if addr := viper.GetString("metrics_addr"); addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			errors = append(errors, fmt.Sprintf("metrics_addr must be host:port, got: %s", addr))
		}
	}

	// If there are any errors, return them
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}
