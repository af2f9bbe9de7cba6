package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/quotedesk/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	envAPIURL              = "QUOTEDESK_API_URL"
	envRequestTimeout      = "QUOTEDESK_REQUEST_TIMEOUT"
	envOnlineCheckInterval = "QUOTEDESK_ONLINE_CHECK_INTERVAL"
	envSessionDB           = "QUOTEDESK_SESSION_DB"
	envLogLevel            = "QUOTEDESK_LOG_LEVEL"
)

// loadDotenv seeds the process environment from the dotenv file named by
// -e/-env, or from ./.env when it exists. Variables already set in the
// environment are not overridden. A missing default .env is not an error;
// a missing explicit file is.
func loadDotenv() {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
		return
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

// parseEnv overlays cfg with QUOTEDESK_* environment variables.
// Durations use time.ParseDuration syntax ("10s"). Invalid values panic.
func parseEnv(cfg *Config) {
	loadDotenv()

	if v := os.Getenv(envAPIURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(envRequestTimeout); v != "" {
		cfg.RequestTimeout = mustDuration(envRequestTimeout, v)
	}
	if v := os.Getenv(envOnlineCheckInterval); v != "" {
		cfg.OnlineCheckInterval = mustDuration(envOnlineCheckInterval, v)
	}
	if v := os.Getenv(envSessionDB); v != "" {
		cfg.SessionDBPath = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

func mustDuration(name, value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		panic(name + ": " + err.Error())
	}
	return d
}
