package factory

import (
	"fmt"

	"ai-chatbox-be/pkg/llm"
	"ai-chatbox-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai", "deepseek":
		if baseURL == "" {
			baseURL = "https://api.deepseek.com/v1" // Default
		}
		return openai.NewOpenAIProvider(baseURL, apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
