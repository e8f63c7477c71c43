package main

import (
	"context"
	"errors"
	"fmt"

	deepseek "github.com/cohesion-org/deepseek-go"
	"github.com/cohesion-org/deepseek-go/constants"
)

// DeepSeekClient implements LLMClient using the deepseek-go SDK.
type DeepSeekClient struct {
	settings ProviderSettings
	client   *deepseek.Client
}

// NewDeepSeekClient creates a DeepSeek-backed client.
func NewDeepSeekClient(apiKey string, settings ProviderSettings) (*DeepSeekClient, error) {
	if apiKey == "" {
		return nil, errors.New("deepseek api key is required")
	}
	if settings.Model == "" {
		return nil, errors.New("deepseek model is required")
	}
	return &DeepSeekClient{settings: settings, client: deepseek.NewClient(apiKey)}, nil
}

// GenerateContent sends the full prompt and returns the completion text.
func (c *DeepSeekClient) GenerateContent(ctx context.Context, prompt string) (*LLMResponse, error) {
	resp, err := c.client.CreateChatCompletion(ctx, &deepseek.ChatCompletionRequest{
		Model: c.settings.Model,
		Messages: []deepseek.ChatCompletionMessage{
			{Role: constants.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(c.settings.Temperature),
		MaxTokens:   c.settings.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("deepseek chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("deepseek: empty choices")
	}

	return &LLMResponse{Text: resp.Choices[0].Message.Content, Model: c.settings.Model}, nil
}

// ModelName returns the configured model identifier.
func (c *DeepSeekClient) ModelName() string {
	return c.settings.Model
}
