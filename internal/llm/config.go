package llm

import (
	"fmt"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"
)

// Config selects and configures one provider. It is built by the config
// package from the TOML file and environment.
type Config struct {
	Provider string
	Model    string // empty selects DefaultModel(Provider)
	APIKey   string
	BaseURL  string // openai only; any OpenAI-compatible endpoint

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
	Retry   RetryConfig
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns three attempts starting at one second.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2.0,
	}
}

// DefaultTimeout bounds a single generation.
const DefaultTimeout = 60 * time.Second

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-3-flash-preview"
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-haiku"
	case ProviderMock:
		return "mock"
	}
	return ""
}

// ModelOrDefault returns the configured model or the provider default.
func (c Config) ModelOrDefault() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel(c.Provider)
}

// Validate checks that the selected provider can be constructed.
func (c Config) Validate() error {
	switch c.Provider {
	case "":
		return ErrNotConfigured
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
		if c.APIKey == "" {
			return fmt.Errorf("an API key is required for the %s provider", c.Provider)
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
