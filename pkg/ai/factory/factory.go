package factory

import (
	"fmt"

	"ai-resume-be/pkg/ai"
	"ai-resume-be/pkg/ai/groq"
	"ai-resume-be/pkg/ai/ollama"
)

// ProviderConfig describes one provider and its own retry budget.
type ProviderConfig struct {
	Type          string // "groq" or "ollama"
	Model         string
	APIKey        string
	BaseURL       string
	RetryAttempts int
}

func newChatProvider(cfg ProviderConfig) (ai.ChatProvider, error) {
	switch cfg.Type {
	case "groq":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("groq provider requires an API key")
		}
		p := groq.NewGroqProvider(cfg.APIKey, cfg.Model)
		if cfg.BaseURL != "" {
			p.BaseURL = cfg.BaseURL
		}
		return p, nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Type)
	}
}

func newRetried(cfg ProviderConfig) (ai.Enhancer, error) {
	provider, err := newChatProvider(cfg)
	if err != nil {
		return nil, err
	}
	return ai.NewRetry(ai.NewEnhancer(provider), ai.WithAttempts(cfg.RetryAttempts)), nil
}

// NewEnhancer composes the orchestrator once at startup: primary provider
// wrapped in retry, optionally decorated with a fallback provider carrying
// its own retry loop. The composed instance is injected everywhere.
func NewEnhancer(primary ProviderConfig, fallback *ProviderConfig) (ai.Enhancer, error) {
	primaryEnhancer, err := newRetried(primary)
	if err != nil {
		return nil, err
	}

	if fallback == nil {
		return primaryEnhancer, nil
	}

	fallbackEnhancer, err := newRetried(*fallback)
	if err != nil {
		return nil, err
	}
	return ai.NewFallback(primaryEnhancer, fallbackEnhancer), nil
}
