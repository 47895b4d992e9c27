package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"kyclens/internal/config"
	"kyclens/internal/domain"
	"kyclens/internal/parser"
	"kyclens/internal/port"
)

// Parser implements port.PageParser using the OpenAI Chat Completions API.
// A custom BaseURL points it at any OpenAI-compatible endpoint (Groq, Ollama).
type Parser struct {
	client *openai.Client
	model  string
	prompt string
}

// NewParser creates an OpenAI-based page parser from a provider config.
// It satisfies parser.ProviderFactory.
func NewParser(cfg *config.ParserProviderConfig) (port.PageParser, error) {
	model := cfg.DefaultModel
	if model == "" {
		model = "gpt-4o"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Parser{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		prompt: parser.BuildPagePrompt(domain.CanonicalKeys()),
	}, nil
}

func (p *Parser) ParsePage(ctx context.Context, input port.PageInput) (*port.RawPageResult, error) {
	dataURI := fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(input.ImagePNG))

	req := openai.ChatCompletionRequest{
		Model:     p.model,
		MaxTokens: 4096,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: p.prompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURI,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return nil, parser.NewRateLimitError("openai", err, 0)
		}
		return nil, fmt.Errorf("calling openai API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API: no choices")
	}
	if resp.Choices[0].FinishReason == openai.FinishReasonLength {
		return nil, fmt.Errorf("output truncated (finish_reason: length): response exceeded output token limit")
	}

	return parser.DecodeRawPage(resp.Choices[0].Message.Content)
}
