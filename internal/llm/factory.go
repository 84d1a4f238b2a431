package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/flashmaster/internal/store"
)

// NewProvider builds the configured provider wrapped as
// caller → retry → logging → provider. Request events are recorded in events
// when it is non-nil.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.APIKey, cfg.ModelOrDefault())
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.APIKey, cfg.ModelOrDefault(), cfg.BaseURL)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.APIKey, cfg.ModelOrDefault())
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if events != nil {
		base = WithLogging(base, cfg.Provider, events, logger)
	}
	retry := cfg.Retry
	if retry.MaxAttempts <= 0 {
		retry = DefaultRetryConfig()
	}
	return WithRetry(base, retry), nil
}
