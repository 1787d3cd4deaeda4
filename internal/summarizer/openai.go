package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

// OpenAISummarizer calls OpenAI's Responses API to produce summaries.
type OpenAISummarizer struct {
	client    openai.Client
	model     string
	system    string
	maxTokens int64
}

// NewOpenAI builds a Responses API summarizer. An empty baseURL uses the SDK default.
func NewOpenAI(apiKey, baseURL, model, system string, maxTokens int) *OpenAISummarizer {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAISummarizer{
		client:    openai.NewClient(opts...),
		model:     orDefault(model, DefaultOpenAIModel),
		system:    system,
		maxTokens: int64(maxTokens),
	}
}

func (s *OpenAISummarizer) Provider() (string, string) { return ProviderOpenAI, s.model }

func (s *OpenAISummarizer) Summarize(ctx context.Context, input Input) (string, error) {
	p, err := newPrompt(s.system, input)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           s.model,
		MaxOutputTokens: openai.Int(s.maxTokens),
		Instructions:    openai.String(p.System),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(p.User),
		},
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if resp.Status == "incomplete" {
		return "", fmt.Errorf("response is incomplete (reason = %s)", resp.IncompleteDetails.Reason)
	}

	summary := strings.TrimSpace(resp.OutputText())
	if summary == "" {
		return "", fmt.Errorf("output text is missing (status = %s)", resp.Status)
	}
	return summary, nil
}
