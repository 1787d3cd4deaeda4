package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenRouterSummarizer calls an OpenAI-compatible chat completions endpoint.
type OpenRouterSummarizer struct {
	client    *goopenai.Client
	model     string
	system    string
	maxTokens int
}

// NewOpenRouter builds a chat completions summarizer. Empty baseURL and model use the OpenRouter defaults.
func NewOpenRouter(apiKey, baseURL, model, system string, maxTokens int) *OpenRouterSummarizer {
	cfg := goopenai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(orDefault(baseURL, DefaultOpenRouterBaseURL), "/")

	return &OpenRouterSummarizer{
		client:    goopenai.NewClientWithConfig(cfg),
		model:     orDefault(model, DefaultOpenRouterModel),
		system:    system,
		maxTokens: maxTokens,
	}
}

func (s *OpenRouterSummarizer) Provider() (string, string) { return ProviderOpenRouter, s.model }

func (s *OpenRouterSummarizer) Summarize(ctx context.Context, input Input) (string, error) {
	p, err := newPrompt(s.system, input)
	if err != nil {
		return "", err
	}

	resp, err := s.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: s.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: p.System},
			{Role: goopenai.ChatMessageRoleUser, Content: p.User},
		},
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("response has no choices")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("empty completion (finish reason = %s)", resp.Choices[0].FinishReason)
	}
	return summary, nil
}
