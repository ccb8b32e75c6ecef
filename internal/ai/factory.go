package ai

import (
	"context"
	"errors"
	"fmt"

	"wayfarer/internal/config"
)

var (
	ErrNotConfigured   = errors.New("llm provider not configured")
	ErrUnknownProvider = errors.New("unknown llm provider")
)

// NewExtractor selects the provider named in cfg. A provider without its API key
// yields ErrNotConfigured so callers can run with the LLM disabled.
func NewExtractor(ctx context.Context, cfg config.LLMConfig) (Extractor, error) {
	switch cfg.Provider {
	case "", "gemini":
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("gemini: %w", ErrNotConfigured)
		}
		p, err := NewGeminiProvider(ctx, cfg.GeminiKey, cfg.GeminiModel, cfg.Temperature, cfg.HistoryTurns)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("openai: %w", ErrNotConfigured)
		}
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIModel, cfg.Temperature, cfg.HistoryTurns, cfg.Timeout), nil
	case "claude", "anthropic":
		if cfg.ClaudeKey == "" {
			return nil, fmt.Errorf("claude: %w", ErrNotConfigured)
		}
		p, err := NewClaudeProvider(cfg.ClaudeKey, cfg.ClaudeModel, cfg.Temperature, cfg.HistoryTurns, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "mock":
		return NewMockExtractor(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
}
