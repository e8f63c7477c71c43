package main

import (
	"context"
	"log"
	"os"
)

// Provider names as they appear in the UI dropdown and --provider flag.
const (
	ProviderOpenAI    = "OpenAI GPT-4"
	ProviderAnthropic = "Anthropic Claude"
	ProviderDeepSeek  = "DeepSeek Chat"
)

// providerEnvKeys maps each provider to its designated API key variable.
var providerEnvKeys = map[string]string{
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderDeepSeek:  "DEEPSEEK_API_KEY",
}

// placeholderKeys are the sample values shipped in .env templates. They are
// treated the same as no key at all.
var placeholderKeys = map[string]bool{
	"your-openai-key-here":    true,
	"your-anthropic-key-here": true,
	"your-deepseek-key-here":  true,
}

// LLMResponse is a single completed generation.
type LLMResponse struct {
	Text  string
	Model string
}

// LLMClient abstracts a text-generation backend so providers stay
// swappable and tests can run offline.
type LLMClient interface {
	GenerateContent(ctx context.Context, prompt string) (*LLMResponse, error)
	ModelName() string
}

// ClientFactory builds LLM clients by provider name. Creation never fails:
// any unknown provider, missing key, or constructor error downgrades to the
// deterministic mock client. Only GenerateContent calls may fail.
type ClientFactory struct {
	settings *Settings
}

// NewClientFactory creates a factory bound to the given settings.
func NewClientFactory(settings *Settings) *ClientFactory {
	return &ClientFactory{settings: settings}
}

// CreateClient returns a usable client for the provider. An explicit
// non-placeholder API key wins; otherwise the provider's environment
// variable is consulted; otherwise the mock client is returned.
func (f *ClientFactory) CreateClient(provider, apiKey string) LLMClient {
	envKey, known := providerEnvKeys[provider]
	if !known {
		log.Printf("Unknown provider %q, using mock client", provider)
		return NewMockLLM(provider)
	}

	if apiKey == "" || placeholderKeys[apiKey] {
		apiKey = os.Getenv(envKey)
	}
	if apiKey == "" {
		log.Printf("%s not set, using mock client for %s", envKey, provider)
		return NewMockLLM(provider)
	}

	client, err := f.newProviderClient(provider, apiKey)
	if err != nil {
		log.Printf("Failed to create %s client: %v, falling back to mock", provider, err)
		return NewMockLLM(provider)
	}
	return client
}

func (f *ClientFactory) newProviderClient(provider, apiKey string) (LLMClient, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIClient(apiKey, f.settings.Providers.OpenAI)
	case ProviderAnthropic:
		return NewAnthropicClient(apiKey, f.settings.Providers.Anthropic)
	case ProviderDeepSeek:
		return NewDeepSeekClient(apiKey, f.settings.Providers.DeepSeek)
	}
	// Unreachable: CreateClient filters unknown providers first.
	return NewMockLLM(provider), nil
}
