// package summarizer turns article text into a short summary using a hosted language model.
package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/skim/internal/shared"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"

	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel   = "deepseek/deepseek-chat:free"
	DefaultOpenAIModel       = "gpt-4.1-mini"
	DefaultAnthropicModel    = "claude-3-5-haiku-latest"

	DefaultSystemPrompt    = "You are a helpful assistant that summarizes articles concisely and accurately."
	DefaultMaxOutputTokens = 1024

	userPromptPrefix = "Please provide a concise summary of this article: "
)

// Input describes the payload for a summary request.
type Input struct {
	// Text is the extracted article text, already truncated.
	Text string
	// SourceURL is the page the text came from.
	SourceURL string
	// Language is the ISO 639-1 code of Text, when known.
	Language string
}

// Summarizer produces a single summary for a given input text.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
	// Provider returns the provider name and model, for cache records.
	Provider() (string, string)
}

// prompt is the system and user message pair shared by every provider.
type prompt struct {
	System string
	User   string
}

func newPrompt(system string, input Input) (prompt, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return prompt{}, fmt.Errorf("%w: input is empty", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(system) == "" {
		system = DefaultSystemPrompt
	}

	b := strings.Builder{}
	b.WriteString(userPromptPrefix)
	b.WriteString(text)
	if lang := strings.TrimSpace(input.Language); lang != "" && lang != "en" {
		b.WriteString("\n\nThe article is written in language code ")
		b.WriteString(lang)
		b.WriteString("; write the summary in the same language.")
	}

	return prompt{System: system, User: b.String()}, nil
}

// New builds the summarizer named by cfg.Provider.
//
// BaseURL only applies to the OpenAI-compatible openrouter provider.
func New(cfg shared.SummarizerConfig) (Summarizer, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if name == "" {
		name = ProviderOpenRouter
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: no API key for provider %q", shared.ErrMissingCredentials, name)
	}

	maxTokens := cfg.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxOutputTokens
	}

	switch name {
	case ProviderOpenRouter:
		return NewOpenRouter(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.SystemPrompt, maxTokens), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg.APIKey, "", cfg.Model, cfg.SystemPrompt, maxTokens), nil
	case ProviderAnthropic:
		return NewAnthropic(cfg.APIKey, "", cfg.Model, cfg.SystemPrompt, maxTokens), nil
	default:
		return nil, fmt.Errorf("%w: unknown summarizer provider %q", shared.ErrInvalidConfig, cfg.Provider)
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
