package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"qcircsim/internal/quantum"
)

// Config holds simulator settings.
type Config struct {
	Qubits            int    // register size at startup
	MaxQubits         int    // ceiling for +/- and QASM qreg declarations
	Workers           int    // goroutines for the partitioned gate pass
	ParallelMinQubits int    // registers below this size always run serially
	DebugChecks       bool   // unitarity and norm assertions
	LogLevel          string // zerolog level name
	LogFile           string // empty disables logging; the TUI owns stdout
}

// Load reads configuration from the environment, after loading a .env file
// if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Qubits:            getEnvAsInt("QSIM_QUBITS", 3),
		MaxQubits:         getEnvAsInt("QSIM_MAX_QUBITS", quantum.DefaultMaxQubits),
		Workers:           getEnvAsInt("QSIM_WORKERS", runtime.NumCPU()),
		ParallelMinQubits: getEnvAsInt("QSIM_PARALLEL_MIN_QUBITS", 14),
		DebugChecks:       getEnvAsBool("QSIM_DEBUG_CHECKS", false),
		LogLevel:          getEnv("QSIM_LOG_LEVEL", "info"),
		LogFile:           getEnv("QSIM_LOG_FILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable together.
func (c *Config) Validate() error {
	if c.MaxQubits < 1 || c.MaxQubits > quantum.HardMaxQubits {
		return fmt.Errorf("QSIM_MAX_QUBITS must be between 1 and %d, got %d", quantum.HardMaxQubits, c.MaxQubits)
	}
	if c.Qubits < 1 || c.Qubits > c.MaxQubits {
		return fmt.Errorf("QSIM_QUBITS must be between 1 and %d, got %d", c.MaxQubits, c.Qubits)
	}
	if c.Workers < 1 {
		return fmt.Errorf("QSIM_WORKERS must be positive, got %d", c.Workers)
	}
	if c.ParallelMinQubits < 1 {
		return fmt.Errorf("QSIM_PARALLEL_MIN_QUBITS must be positive, got %d", c.ParallelMinQubits)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("QSIM_LOG_LEVEL: %w", err)
	}
	return nil
}

// SessionOptions translates the settings into session options.
func (c *Config) SessionOptions(log zerolog.Logger) []quantum.Option {
	return []quantum.Option{
		quantum.WithLogger(log),
		quantum.WithMaxQubits(c.MaxQubits),
		quantum.WithWorkers(c.Workers, c.ParallelMinQubits),
		quantum.WithDebugChecks(c.DebugChecks),
	}
}

// Logger builds the application logger. It returns zerolog.Nop() when no
// log file is configured. The returned close function is never nil.
func (c *Config) Logger() (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }
	if c.LogFile == "" {
		return zerolog.Nop(), noop, nil
	}

	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.Nop(), noop, err
	}

	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), noop, fmt.Errorf("open log file: %w", err)
	}

	log := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return log, f.Close, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
