package genai

import (
	"os"
	"strconv"
	"time"
)

// Model variants. The small model is the safe default; the large one is
// picked only when the device probe reports enough memory.
const (
	SmallModel = "qwen2.5:0.5b-instruct"
	LargeModel = "qwen2.5:1.5b-instruct"

	// LargeModelRAMThresholdMB is the approximate device memory above
	// which the large variant is selected.
	LargeModelRAMThresholdMB = 6000
)

// Config holds all configuration for the generator subsystem.
type Config struct {
	Enabled   bool
	LogCalls  bool
	Endpoint  string
	Model     string // explicit override; empty selects by device probe
	TimeoutMs int

	// LoadMaxAttempts bounds model-load retries; backoff grows
	// linearly by LoadBackoff per attempt.
	LoadMaxAttempts int
	LoadBackoff     time.Duration
}

// DefaultConfig returns a Config with sensible defaults. Generation is
// disabled by default; the engine falls back to the question bank.
func DefaultConfig() Config {
	return Config{
		Enabled:         false,
		LogCalls:        false,
		Endpoint:        "http://localhost:11434",
		TimeoutMs:       15000,
		LoadMaxAttempts: 3,
		LoadBackoff:     2 * time.Second,
	}
}

// LoadConfig reads generator configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("CLARION_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CLARION_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CLARION_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("CLARION_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CLARION_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("CLARION_LLM_LOAD_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LoadMaxAttempts = n
		}
	}

	return cfg
}
