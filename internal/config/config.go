package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the process-wide configuration read once at startup.
type Config struct {
	FinnhubAPIKey   string
	FinnhubBaseURL  string
	FinnhubAPIDelay time.Duration
	DatabaseURL     string
	Port            string
}

func Load() (Config, error) {
	cfg := Config{
		FinnhubAPIKey:  os.Getenv("FINNHUB_API_KEY"),
		FinnhubBaseURL: os.Getenv("FINNHUB_BASE_URL"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Port:           envDefault("PORT", "8080"),
	}

	var validationErrs []string
	requireEnv("FINNHUB_API_KEY", cfg.FinnhubAPIKey, &validationErrs)
	requireEnv("DATABASE_URL", cfg.DatabaseURL, &validationErrs)

	delayMS := 1000
	if raw := strings.TrimSpace(os.Getenv("FINNHUB_API_DELAY_MS")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			validationErrs = append(validationErrs, "FINNHUB_API_DELAY_MS must be a non-negative integer")
		} else {
			delayMS = parsed
		}
	}
	cfg.FinnhubAPIDelay = time.Duration(delayMS) * time.Millisecond

	if len(validationErrs) > 0 {
		return cfg, errors.New(strings.Join(validationErrs, "; "))
	}

	return cfg, nil
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func requireEnv(name, value string, errs *[]string) {
	if strings.TrimSpace(value) == "" {
		*errs = append(*errs, name+" is required")
	}
}
