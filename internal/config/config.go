package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// League shape
	Seed     int64
	NumTeams int
	NumLines int
	NumPairs int
	Goalies  int

	// Season
	StartWeek int
	EndWeek   int // 0 = through the last matchweek
	PBPWeeks  int // export play-by-play for the first N simulated weeks

	// Output
	DataDir    string
	SQLitePath string

	// Model tuning overrides (optional YAML file)
	TuningPath string

	// Feed server
	FeedAddr string
	// Game seconds replayed per wall-clock second; <= 0 disables pacing.
	FeedSpeed float64

	// Telemetry
	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Seed:     envInt64("BREAKAWAY_SEED", 2026),
		NumTeams: envInt("BREAKAWAY_TEAMS", 32),
		NumLines: envInt("BREAKAWAY_LINES", 4),
		NumPairs: envInt("BREAKAWAY_PAIRS", 3),
		Goalies:  envInt("BREAKAWAY_GOALIES", 2),

		StartWeek: envInt("BREAKAWAY_START_WEEK", 1),
		EndWeek:   envInt("BREAKAWAY_END_WEEK", 0),
		PBPWeeks:  envInt("BREAKAWAY_PBP_WEEKS", 5),

		DataDir:    envStr("BREAKAWAY_DATA_DIR", "data"),
		SQLitePath: envStr("BREAKAWAY_SQLITE_PATH", "data/season.db"),

		TuningPath: envStr("BREAKAWAY_TUNING_PATH", ""),

		FeedAddr:  envStr("BREAKAWAY_FEED_ADDR", ":9300"),
		FeedSpeed: envFloat("BREAKAWAY_FEED_SPEED", 60.0),

		LogLevel: envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
