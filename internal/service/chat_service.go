package service

import (
	"context"

	"ai-chatbox-be/internal/dto"
	"ai-chatbox-be/pkg/llm"
)

// IChatService is the stateless proxy path: one message list in, one reply
// out. Reliability engineering (retries, backoff, rate limiting) is
// deliberately left to the external provider.
type IChatService interface {
	Complete(ctx context.Context, messages []dto.ChatMessage) (string, error)
}

type chatService struct {
	llmProvider llm.LLMProvider
	maxTokens   int
	temperature float64
}

func NewChatService(llmProvider llm.LLMProvider, maxTokens int, temperature float64) IChatService {
	return &chatService{
		llmProvider: llmProvider,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

func (s *chatService) Complete(ctx context.Context, messages []dto.ChatMessage) (string, error) {
	history := make([]llm.Message, len(messages))
	for i, m := range messages {
		history[i] = llm.Message{Role: m.Role, Content: m.Content}
	}

	return s.llmProvider.Chat(ctx, history,
		llm.WithMaxTokens(s.maxTokens),
		llm.WithTemperature(s.temperature),
	)
}
