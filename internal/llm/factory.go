package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/govgate/internal/model"
)

// DefaultOllamaBaseURL is the OpenAI-compatible endpoint of a local Ollama server
const DefaultOllamaBaseURL = "http://localhost:11434/v1"

// NewProvider creates a provider from configuration. An empty provider name
// disables briefs and returns nil, nil.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config), nil

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}

// NewOllamaProvider creates a provider for a local Ollama server through its
// OpenAI-compatible API. Ollama ignores the key but the client requires one.
func NewOllamaProvider(config Config) *OpenAIProvider {
	if config.BaseURL == "" {
		config.BaseURL = DefaultOllamaBaseURL
	}
	if config.APIKey == "" {
		config.APIKey = "ollama"
	}
	if config.Timeout == 0 {
		config.Timeout = 60
	}
	return newCompatibleProvider("ollama", config)
}

// ConfigFromModel converts application configuration to llm.Config
func ConfigFromModel(cfg *model.Config) Config {
	return Config{
		Provider:       cfg.LLM.Provider,
		Model:          cfg.LLM.Model,
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Timeout:        cfg.LLM.Timeout,
		StrictEvidence: cfg.LLM.StrictEvidence,
		MaxTokens:      cfg.LLM.MaxTokens,
		HTTPProxy:      cfg.HTTP.HTTPProxy,
		HTTPSProxy:     cfg.HTTP.HTTPSProxy,
		NoProxy:        cfg.HTTP.NoProxy,
	}
}
