package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qcircsim/internal/quantum"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"QSIM_QUBITS", "QSIM_MAX_QUBITS", "QSIM_WORKERS", "QSIM_PARALLEL_MIN_QUBITS",
		"QSIM_DEBUG_CHECKS", "QSIM_LOG_LEVEL", "QSIM_LOG_FILE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Qubits)
	assert.Equal(t, quantum.DefaultMaxQubits, cfg.MaxQubits)
	assert.Positive(t, cfg.Workers)
	assert.Equal(t, 14, cfg.ParallelMinQubits)
	assert.False(t, cfg.DebugChecks)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("QSIM_QUBITS", "5")
	t.Setenv("QSIM_MAX_QUBITS", "8")
	t.Setenv("QSIM_WORKERS", "2")
	t.Setenv("QSIM_PARALLEL_MIN_QUBITS", "6")
	t.Setenv("QSIM_DEBUG_CHECKS", "true")
	t.Setenv("QSIM_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Qubits)
	assert.Equal(t, 8, cfg.MaxQubits)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 6, cfg.ParallelMinQubits)
	assert.True(t, cfg.DebugChecks)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("QSIM_QUBITS", "three")
	t.Setenv("QSIM_DEBUG_CHECKS", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Qubits)
	assert.False(t, cfg.DebugChecks)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Qubits: 3, MaxQubits: 10, Workers: 1, ParallelMinQubits: 14, LogLevel: "info"}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no qubits", func(c *Config) { c.Qubits = 0 }},
		{"qubits above max", func(c *Config) { c.Qubits = 11 }},
		{"max above hard limit", func(c *Config) { c.MaxQubits = quantum.HardMaxQubits + 1 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"no parallel threshold", func(c *Config) { c.ParallelMinQubits = 0 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoggerWritesToFile(t *testing.T) {
	cfg := &Config{LogLevel: "warn", LogFile: filepath.Join(t.TempDir(), "qsim.log")}

	log, closeLog, err := cfg.Logger()
	require.NoError(t, err)
	log.Info().Msg("dropped")
	log.Warn().Msg("kept")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept")
	assert.NotContains(t, string(data), "dropped")
}

func TestLoggerDisabledWithoutFile(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}
	log, closeLog, err := cfg.Logger()
	require.NoError(t, err)
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
	assert.NoError(t, closeLog())
}

func TestSessionOptions(t *testing.T) {
	cfg := &Config{Qubits: 2, MaxQubits: 4, Workers: 2, ParallelMinQubits: 3, LogLevel: "info"}

	s, err := quantum.NewSession(cfg.Qubits, cfg.SessionOptions(zerolog.Nop())...)
	require.NoError(t, err)
	assert.Equal(t, 2, s.NumQubits())

	_, err = quantum.NewSession(5, cfg.SessionOptions(zerolog.Nop())...)
	assert.ErrorIs(t, err, quantum.ErrInvalidDimension)
}
