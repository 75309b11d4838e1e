package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	dErrors "noid/pkg/domain-errors"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr      string
	LogLevel  string
	LogFormat string

	// ShutdownTimeout bounds graceful shutdown after SIGINT/SIGTERM.
	ShutdownTimeout time.Duration

	Identifier Identifier
	RateLimit  RateLimit
}

// Identifier tunes the identifier service.
type Identifier struct {
	MaxBatchSize     int
	BatchConcurrency int
	MaxGenerate      int
	// GeneratorSeed makes generation reproducible when set.
	GeneratorSeed *uint64
}

// RateLimit is the per-IP request budget.
type RateLimit struct {
	PerMinute     int
	Disabled      bool
	SweepInterval time.Duration
}

const (
	defaultAddr             = ":8080"
	defaultMaxBatchSize     = 500
	defaultBatchConcurrency = 8
	defaultMaxGenerate      = 1000
	defaultRateLimit        = 600
)

// FromEnv builds a Server config from environment variables so main stays lean.
// Unset variables take their defaults; malformed ones are an error.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:            envOr("NOID_ADDR", defaultAddr),
		LogLevel:        strings.ToLower(envOr("NOID_LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(envOr("NOID_LOG_FORMAT", "json")),
		ShutdownTimeout: 10 * time.Second,
		RateLimit: RateLimit{
			SweepInterval: time.Minute,
		},
	}

	var err error
	if cfg.Identifier.MaxBatchSize, err = positiveInt("NOID_MAX_BATCH_SIZE", defaultMaxBatchSize); err != nil {
		return Server{}, err
	}
	if cfg.Identifier.BatchConcurrency, err = positiveInt("NOID_BATCH_CONCURRENCY", defaultBatchConcurrency); err != nil {
		return Server{}, err
	}
	if cfg.Identifier.MaxGenerate, err = positiveInt("NOID_MAX_GENERATE", defaultMaxGenerate); err != nil {
		return Server{}, err
	}
	if cfg.RateLimit.PerMinute, err = positiveInt("NOID_RATE_LIMIT_PER_MINUTE", defaultRateLimit); err != nil {
		return Server{}, err
	}
	cfg.RateLimit.Disabled = os.Getenv("NOID_RATE_LIMIT_DISABLED") == "true"

	if raw := os.Getenv("NOID_GENERATOR_SEED"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return Server{}, dErrors.Wrap(err, dErrors.CodeValidation, "NOID_GENERATOR_SEED must be an unsigned integer")
		}
		cfg.Identifier.GeneratorSeed = &seed
	}

	switch cfg.LogFormat {
	case "json", "text":
	default:
		return Server{}, dErrors.New(dErrors.CodeValidation, "NOID_LOG_FORMAT must be 'json' or 'text'")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func positiveInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeValidation, key+" must be a positive integer")
	}
	return n, nil
}
