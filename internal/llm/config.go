package llm

import "time"

// Config holds all configuration for the local model client. Drafting is
// disabled by default.
type Config struct {
	Enabled     bool    `yaml:"enabled"`
	LogCalls    bool    `yaml:"log_calls"`
	Endpoint    string  `yaml:"endpoint"`
	Model       string  `yaml:"model"`
	TimeoutMs   int     `yaml:"timeout_ms"`
	MaxRetries  int     `yaml:"max_retries"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// DefaultConfig returns a Config pointing at a local Ollama instance.
func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		LogCalls:    false,
		Endpoint:    "http://localhost:11434",
		Model:       "llama3.2",
		TimeoutMs:   60000,
		MaxRetries:  1,
		Temperature: 0.2,
		MaxTokens:   4096,
	}
}

// Timeout is the per-attempt request deadline.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
