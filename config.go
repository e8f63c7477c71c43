package main

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultConfigDir = ".project-writer"

// Embedded defaults. Files under .project-writer/ override these at runtime.
//
//go:embed prompts/planner-prompt.md
var defaultPlannerPrompt string

//go:embed prompts/section-prompt.md
var defaultSectionPrompt string

// ProviderSettings pins the fixed model parameters for one backend.
type ProviderSettings struct {
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// Settings represents the YAML configuration structure.
type Settings struct {
	OutputDirectory string `yaml:"output_directory"`
	// RequestTimeoutSeconds bounds each LLM round trip.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
	Providers             struct {
		OpenAI    ProviderSettings `yaml:"openai"`
		Anthropic ProviderSettings `yaml:"anthropic"`
		DeepSeek  ProviderSettings `yaml:"deepseek"`
	} `yaml:"providers"`
}

// RequestTimeout returns the per-call timeout as a duration.
func (s *Settings) RequestTimeout() time.Duration {
	if s.RequestTimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// ConfigOverrides allows overriding embedded defaults with file paths.
type ConfigOverrides struct {
	PlannerPromptPath *string
	SectionPromptPath *string
	SettingsPath      *string
}

// Config holds settings and prompt overrides.
type Config struct {
	Settings  *Settings
	Overrides *ConfigOverrides
}

// NewConfig loads settings (writing defaults on first run) and attaches
// overrides.
func NewConfig(overrides *ConfigOverrides) (*Config, error) {
	if err := ensureConfigExists(); err != nil {
		return nil, fmt.Errorf("ensuring config exists: %w", err)
	}

	settingsPath := getConfigPath("settings.yaml")
	if overrides != nil && overrides.SettingsPath != nil {
		settingsPath = *overrides.SettingsPath
	}

	settings, err := loadSettings(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	return &Config{Settings: settings, Overrides: overrides}, nil
}

// GetPlannerPrompt returns the planner prompt template (override file or
// embedded default).
func (c *Config) GetPlannerPrompt() string {
	if c.Overrides != nil && c.Overrides.PlannerPromptPath != nil {
		if content, err := os.ReadFile(*c.Overrides.PlannerPromptPath); err == nil {
			return string(content)
		}
		log.Printf("Warning: planner prompt override %s not readable, using embedded default", *c.Overrides.PlannerPromptPath)
	}
	return defaultPlannerPrompt
}

// GetSectionPrompt returns the per-section prompt template (override file or
// embedded default).
func (c *Config) GetSectionPrompt() string {
	if c.Overrides != nil && c.Overrides.SectionPromptPath != nil {
		if content, err := os.ReadFile(*c.Overrides.SectionPromptPath); err == nil {
			return string(content)
		}
		log.Printf("Warning: section prompt override %s not readable, using embedded default", *c.Overrides.SectionPromptPath)
	}
	return defaultSectionPrompt
}

// loadSettings loads settings from a YAML file, falling back to defaults when
// the file is missing.
func loadSettings(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultSettings(), nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", settingsPath, err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}

	applySettingsDefaults(&settings)
	return &settings, nil
}

func defaultSettings() *Settings {
	s := &Settings{}
	applySettingsDefaults(s)
	return s
}

func applySettingsDefaults(s *Settings) {
	if s.OutputDirectory == "" {
		s.OutputDirectory = "articles"
	}
	if s.RequestTimeoutSeconds == 0 {
		s.RequestTimeoutSeconds = 120
	}
	if s.Providers.OpenAI.Model == "" {
		s.Providers.OpenAI = ProviderSettings{Model: "gpt-4", MaxTokens: 4000, Temperature: 0.7}
	}
	if s.Providers.Anthropic.Model == "" {
		s.Providers.Anthropic = ProviderSettings{Model: "claude-3-sonnet-20240229", MaxTokens: 4000, Temperature: 0.7}
	}
	if s.Providers.DeepSeek.Model == "" {
		s.Providers.DeepSeek = ProviderSettings{Model: "deepseek-chat", MaxTokens: 4000, Temperature: 0.7}
	}
}

// getConfigPath returns the path to a config file in the .project-writer
// directory.
func getConfigPath(filename string) string {
	return filepath.Join(defaultConfigDir, filename)
}

// ensureConfigExists creates the config directory and default settings file
// if they don't exist.
func ensureConfigExists() error {
	if _, err := os.Stat(defaultConfigDir); os.IsNotExist(err) {
		if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	settingsPath := getConfigPath("settings.yaml")
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		defaultYAML := `output_directory: articles
request_timeout_seconds: 120
providers:
  openai:
    model: gpt-4
    max_tokens: 4000
    temperature: 0.7
  anthropic:
    model: claude-3-sonnet-20240229
    max_tokens: 4000
    temperature: 0.7
  deepseek:
    model: deepseek-chat
    max_tokens: 4000
    temperature: 0.7
`
		if err := os.WriteFile(settingsPath, []byte(defaultYAML), 0644); err != nil {
			return fmt.Errorf("writing default settings: %w", err)
		}
	}

	return nil
}
