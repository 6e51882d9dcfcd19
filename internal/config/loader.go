package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config captures environment driven configuration values for the scheduler.
type Config struct {
	SQLiteDSN            string
	SeedFile             string
	SuggestWindowDays    int
	RecommendHorizonDays int
	LogLevel             string
}

// Load parses configuration values from the current process environment.
//
// The loader applies defaults for optional fields while validating supplied
// values and aggregating every invalid entry into a single error.
func Load() (Config, error) {
	cfg := Config{
		SQLiteDSN:            "file:committee-scheduler.db?_foreign_keys=on",
		SuggestWindowDays:    90,
		RecommendHorizonDays: 180,
		LogLevel:             "info",
	}

	invalid := make([]string, 0, 2)

	if dsn := strings.TrimSpace(os.Getenv("SCHEDULER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if seed := strings.TrimSpace(os.Getenv("SCHEDULER_SEED_FILE")); seed != "" {
		cfg.SeedFile = seed
	}

	if windowValue := strings.TrimSpace(os.Getenv("SCHEDULER_SUGGEST_WINDOW_DAYS")); windowValue != "" {
		window, err := strconv.Atoi(windowValue)
		if err != nil || window <= 0 {
			invalid = append(invalid, "SCHEDULER_SUGGEST_WINDOW_DAYS")
		} else {
			cfg.SuggestWindowDays = window
		}
	}

	if horizonValue := strings.TrimSpace(os.Getenv("SCHEDULER_RECOMMEND_HORIZON_DAYS")); horizonValue != "" {
		horizon, err := strconv.Atoi(horizonValue)
		if err != nil || horizon <= 0 {
			invalid = append(invalid, "SCHEDULER_RECOMMEND_HORIZON_DAYS")
		} else {
			cfg.RecommendHorizonDays = horizon
		}
	}

	if levelValue := strings.TrimSpace(os.Getenv("SCHEDULER_LOG_LEVEL")); levelValue != "" {
		switch strings.ToLower(levelValue) {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = strings.ToLower(levelValue)
		default:
			invalid = append(invalid, "SCHEDULER_LOG_LEVEL")
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
