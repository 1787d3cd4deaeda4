package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicSummarizer calls the Anthropic Messages API.
type AnthropicSummarizer struct {
	client    *anthropic.Client
	model     string
	system    string
	maxTokens int64
}

// NewAnthropic builds a Messages API summarizer. An empty baseURL uses the SDK default.
func NewAnthropic(apiKey, baseURL, model, system string, maxTokens int) *AnthropicSummarizer {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &AnthropicSummarizer{
		client:    anthropic.NewClient(opts...),
		model:     orDefault(model, DefaultAnthropicModel),
		system:    system,
		maxTokens: int64(maxTokens),
	}
}

func (s *AnthropicSummarizer) Provider() (string, string) { return ProviderAnthropic, s.model }

func (s *AnthropicSummarizer) Summarize(ctx context.Context, input Input) (string, error) {
	p, err := newPrompt(s.system, input)
	if err != nil {
		return "", err
	}

	msg := anthropic.MessageNewParams{
		Model:     anthropic.F(anthropic.Model(s.model)),
		MaxTokens: anthropic.Int(s.maxTokens),
		System: anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(p.System),
		}),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(p.User)),
		}),
	}

	resp, err := s.client.Messages.New(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", errors.New("received empty response from API")
	}

	return strings.TrimSpace(resp.Content[0].Text), nil
}
