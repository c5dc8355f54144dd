package llm

import (
	"fmt"
	"strings"

	"github.com/dkoval/ctxpress/internal/model"
)

// NewProvider creates a new LLM provider based on configuration. An empty
// provider name means digests are disabled and returns (nil, nil).
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:  modelConfig.Provider,
		Model:     modelConfig.Model,
		APIKey:    modelConfig.APIKey,
		BaseURL:   modelConfig.BaseURL,
		Timeout:   modelConfig.Timeout,
		MaxTokens: modelConfig.MaxTokens,
	}
}
