package llm

import (
	"os"
	"strconv"
)

// TaskType identifies which planning stage a generation call serves.
type TaskType string

const (
	TaskProfile       TaskType = "profile"
	TaskProfileUpdate TaskType = "profile_update"
	TaskMacroPlan     TaskType = "macro_plan"
	TaskMicroPlan     TaskType = "micro_plan"
	TaskOptimize      TaskType = "optimize"
	TaskFeedback      TaskType = "feedback"
)

// Provider selects which completion backend the client talks to.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the completion subsystem.
type Config struct {
	Provider   Provider
	LogCalls   bool
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults for a local Ollama
// instance.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderOllama,
		LogCalls:   false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  30000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskProfile:       {Temperature: 0.2, MaxTokens: 1024, TimeoutMs: 20000},
			TaskProfileUpdate: {Temperature: 0.2, MaxTokens: 1024, TimeoutMs: 20000},
			TaskMacroPlan:     {Temperature: 0.4, MaxTokens: 4096, TimeoutMs: 60000},
			TaskMicroPlan:     {Temperature: 0.2, MaxTokens: 2048, TimeoutMs: 45000},
			TaskOptimize:      {Temperature: 0.3, MaxTokens: 2048, TimeoutMs: 30000},
			TaskFeedback:      {Temperature: 0.3, MaxTokens: 1536, TimeoutMs: 30000},
		},
	}
}

// LoadConfig reads completion configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("STRIDE_LLM_PROVIDER"); v == string(ProviderOpenAI) {
		cfg.Provider = ProviderOpenAI
		cfg.Endpoint = "https://api.openai.com/v1"
		cfg.Model = "gpt-4o-mini"
	}
	if v := os.Getenv("STRIDE_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STRIDE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("STRIDE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("STRIDE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("STRIDE_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
