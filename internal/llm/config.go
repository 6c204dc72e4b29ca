package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "anthropic", "openai", "mock"
	Provider string

	Gemini    GeminiConfig
	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Retry     RetryConfig

	// MaxAttempts is the content-level retry budget: how many times a
	// call may be reissued when the response fails to parse or validate.
	MaxAttempts int

	// MaxTokens is the token budget for a single response.
	MaxTokens int
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// RetryConfig configures transport-level retry behavior.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
// Gemini is the default provider.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		MaxAttempts: 3,
		MaxTokens:   8192,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values. QBANK_-prefixed variables take priority;
// the provider-standard key variables (GEMINI_API_KEY etc.) are honored
// so existing deployments keep working.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("QBANK_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := firstEnv("QBANK_GEMINI_API_KEY", "GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("QBANK_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if k := firstEnv("QBANK_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("QBANK_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := firstEnv("QBANK_OPENAI_API_KEY", "OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("QBANK_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("QBANK_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	return cfg
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
