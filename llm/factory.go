package llm

import (
	"fmt"
	"os"

	"mend/config"
)

// CreateAdapter creates an LLM adapter for the configured provider
func CreateAdapter(cfg *config.Config) (Adapter, error) {
	adapterCfg := AdapterConfig{
		Model:       cfg.Model,
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}

	switch cfg.Provider {
	case "openai":
		if adapterCfg.APIKey == "" {
			adapterCfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if adapterCfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key not provided (set OPENAI_API_KEY or run: mend config set api_key <key>)")
		}
		return NewOpenAIAdapter(adapterCfg), nil

	case "anthropic":
		if adapterCfg.APIKey == "" {
			adapterCfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if adapterCfg.APIKey == "" {
			return nil, fmt.Errorf("Anthropic API key not provided (set ANTHROPIC_API_KEY or run: mend config set api_key <key>)")
		}
		return NewAnthropicAdapter(adapterCfg), nil

	case "ollama":
		return NewOllamaAdapter(adapterCfg), nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: openai, anthropic, ollama)", cfg.Provider)
	}
}
