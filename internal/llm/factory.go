package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/interviewx/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped so that
// callers go through the deadline first and every attempt is logged.
// eventRepo may be nil, in which case events only reach the log.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller -> timeout -> logging -> base
	logged := WithLogging(base, cfg.Provider, eventRepo)
	return WithTimeout(logged, cfg.Timeout), nil
}
