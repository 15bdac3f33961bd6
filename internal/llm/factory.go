package llm

import (
	"fmt"

	"github.com/Nidhi-Chauhan111/Eco-App/config"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/llm/ollama"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/llm/openai"
)

type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

const backendLLM = "llm"

// Enabled reports whether the classifier or the inspiration generator is
// configured to call a language model.
func Enabled(cfg *config.Config) bool {
	return cfg.Sentiment.Classifier == backendLLM || cfg.Inspiration.Provider == backendLLM
}

// NewLLMClient creates the client for cfg.LLM.Provider.
func NewLLMClient(cfg *config.Config) (LLM, error) {
	switch Provider(cfg.LLM.Provider) {
	case ProviderOllama:
		return ollama.NewClient(&cfg.Ollama)
	case ProviderOpenAI:
		return openai.NewClient(&cfg.OpenAI)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLM.Provider)
	}
}
