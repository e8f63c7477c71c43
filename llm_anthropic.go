package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"
)

const anthropicSystemPrompt = "You are an expert technical writer producing markdown articles about software projects."

// AnthropicClient implements LLMClient using llmkit's Anthropic bindings.
type AnthropicClient struct {
	settings ProviderSettings
	apiKey   string
}

// NewAnthropicClient creates an Anthropic-backed client.
func NewAnthropicClient(apiKey string, settings ProviderSettings) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}
	if settings.Model == "" {
		return nil, errors.New("anthropic model is required")
	}
	return &AnthropicClient{settings: settings, apiKey: apiKey}, nil
}

// GenerateContent sends the full prompt and returns the completion text.
// llmkit manages its own HTTP round trip and takes no context, so the call
// runs in a goroutine and the context deadline bounds the wait.
func (c *AnthropicClient) GenerateContent(ctx context.Context, prompt string) (*LLMResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	settings := types.RequestSettings{
		Model:       c.settings.Model,
		MaxTokens:   c.settings.MaxTokens,
		Temperature: c.settings.Temperature,
	}

	done := make(chan struct{})
	var resp *LLMResponse
	var callErr error
	go func() {
		defer close(done)
		response, err := anthropic.PromptWithSettings(anthropicSystemPrompt, prompt, "", c.apiKey, settings)
		if err != nil {
			callErr = fmt.Errorf("anthropic prompt: %w", err)
			return
		}
		if len(response.Content) == 0 {
			callErr = errors.New("anthropic: no content in response")
			return
		}
		resp = &LLMResponse{Text: response.Content[0].Text, Model: c.settings.Model}
	}()

	select {
	case <-done:
		return resp, callErr
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ModelName returns the configured model identifier.
func (c *AnthropicClient) ModelName() string {
	return c.settings.Model
}
