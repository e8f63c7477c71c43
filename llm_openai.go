package main

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient implements LLMClient using the official openai-go SDK
// (chat completions).
type OpenAIClient struct {
	settings ProviderSettings
	opts     []option.RequestOption
}

// NewOpenAIClient creates an OpenAI-backed client.
func NewOpenAIClient(apiKey string, settings ProviderSettings) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if settings.Model == "" {
		return nil, errors.New("openai model is required")
	}
	return &OpenAIClient{
		settings: settings,
		opts:     []option.RequestOption{option.WithAPIKey(apiKey)},
	}, nil
}

// GenerateContent sends the full prompt and returns the completion text.
// Transport, auth and quota errors propagate to the caller; there is no
// retry here.
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string) (*LLMResponse, error) {
	client := openai.NewClient(c.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.settings.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.settings.Temperature),
		MaxTokens:   openai.Int(int64(c.settings.MaxTokens)),
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: empty choices")
	}

	return &LLMResponse{Text: resp.Choices[0].Message.Content, Model: c.settings.Model}, nil
}

// ModelName returns the configured model identifier.
func (c *OpenAIClient) ModelName() string {
	return c.settings.Model
}
