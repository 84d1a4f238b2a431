package config

import (
	"os"

	"github.com/abhisek/flashmaster/internal/llm"
)

// apiKeyEnv lists, per provider, the variables holding its API key in
// lookup order. The order of providers is the discovery order.
var apiKeyEnv = []struct {
	provider string
	vars     []string
}{
	{llm.ProviderGemini, []string{"FLASHMASTER_GEMINI_API_KEY", "GEMINI_API_KEY"}},
	{llm.ProviderOpenAI, []string{"FLASHMASTER_OPENAI_API_KEY", "OPENAI_API_KEY"}},
	{llm.ProviderAnthropic, []string{"FLASHMASTER_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"}},
}

// APIKey returns the API key for provider from the environment.
func APIKey(provider string) string {
	for _, p := range apiKeyEnv {
		if p.provider != provider {
			continue
		}
		for _, v := range p.vars {
			if k := os.Getenv(v); k != "" {
				return k
			}
		}
	}
	return ""
}

// Provider resolves the llm.Config to build a provider from. With no
// provider configured, the first provider with an API key in the
// environment is used (Gemini, OpenAI, Anthropic). If none is found the
// returned config fails Validate with llm.ErrNotConfigured.
func (c *Config) Provider() llm.Config {
	timeout, err := c.Timeout()
	if err != nil {
		timeout = llm.DefaultTimeout
	}
	retry := llm.DefaultRetryConfig()
	if c.LLM.MaxAttempts > 0 {
		retry.MaxAttempts = c.LLM.MaxAttempts
	}

	out := llm.Config{
		Provider: c.LLM.Provider,
		Model:    c.LLM.Model,
		BaseURL:  c.LLM.BaseURL,
		Timeout:  timeout,
		Retry:    retry,
	}

	if out.Provider != "" {
		out.APIKey = APIKey(out.Provider)
		return out
	}
	for _, p := range apiKeyEnv {
		if k := APIKey(p.provider); k != "" {
			out.Provider = p.provider
			out.APIKey = k
			return out
		}
	}
	return out
}
