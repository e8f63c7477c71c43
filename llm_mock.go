package main

import (
	"context"
	"encoding/json"
	"strings"
)

// MockLLM is the deterministic stand-in client. It inspects the prompt for
// lexical cues (planning vs section writing, tone, depth, audience) and
// returns a canned but structurally valid response. It never fails, which
// makes it the universal factory fallback and the offline test backend.
type MockLLM struct {
	providerName string
}

// NewMockLLM creates a stand-in client labelled with the provider it
// replaces.
func NewMockLLM(providerName string) *MockLLM {
	if providerName == "" {
		providerName = "Mock"
	}
	return &MockLLM{providerName: providerName}
}

// GenerateContent returns a canned plan for planner prompts and canned
// section prose otherwise.
func (m *MockLLM) GenerateContent(_ context.Context, prompt string) (*LLMResponse, error) {
	lower := strings.ToLower(prompt)

	var text string
	if strings.Contains(lower, "planner") {
		text = m.mockPlan(lower)
	} else {
		text = m.mockSection(lower)
	}
	return &LLMResponse{Text: text, Model: m.ModelName()}, nil
}

// ModelName returns the stand-in pseudo-model identifier.
func (m *MockLLM) ModelName() string {
	return "Mock-" + m.providerName
}

func (m *MockLLM) mockPlan(lower string) string {
	tone := inferTone(lower)
	audience := "intermediate"
	if strings.Contains(lower, "beginner") {
		audience = "beginner"
	} else if strings.Contains(lower, "advanced") {
		audience = "advanced"
	}

	var sections []Section
	if strings.Contains(lower, "detailed") {
		sections = []Section{
			{Heading: "Introduction", ContentType: "overview", KeyPoints: []string{"Project overview", "Main features", "What you'll learn"}, EstimatedLength: "short"},
			{Heading: "Architecture Deep Dive", ContentType: "code_analysis", KeyPoints: []string{"Code structure", "Key components", "Design patterns"}, EstimatedLength: "long"},
			{Heading: "Getting Started", ContentType: "setup", KeyPoints: []string{"Prerequisites", "Installation", "Configuration"}, EstimatedLength: "medium"},
			{Heading: "Implementation Details", ContentType: "code_analysis", KeyPoints: []string{"Core functions", "Data flow", "Error handling"}, EstimatedLength: "long"},
			{Heading: "Advanced Features", ContentType: "features", KeyPoints: []string{"Advanced functionality", "Customization options", "Performance tips"}, EstimatedLength: "medium"},
			{Heading: "Conclusion", ContentType: "conclusion", KeyPoints: []string{"Summary", "Next steps", "Resources"}, EstimatedLength: "short"},
		}
	} else {
		sections = []Section{
			{Heading: "Introduction", ContentType: "overview", KeyPoints: []string{"Project overview", "Main features", "What you'll learn"}, EstimatedLength: "short"},
			{Heading: "Getting Started", ContentType: "setup", KeyPoints: []string{"Prerequisites", "Installation", "Configuration"}, EstimatedLength: "medium"},
			{Heading: "Features and Usage", ContentType: "features", KeyPoints: []string{"Main functionality", "Key features", "Usage examples"}, EstimatedLength: "medium"},
			{Heading: "Conclusion", ContentType: "conclusion", KeyPoints: []string{"Summary", "Next steps", "Resources"}, EstimatedLength: "short"},
		}
	}

	plan := ArticlePlan{
		Title:         "Sample Project Article",
		Sections:      sections,
		ToneNotes:     "Use " + tone + " tone",
		AudienceNotes: "Target " + audience + " developers",
	}

	data, _ := json.MarshalIndent(plan, "", "  ")
	return string(data)
}

func (m *MockLLM) mockSection(lower string) string {
	switch inferTone(lower) {
	case "explanatory":
		return `This section provides a comprehensive overview of the project's key components and functionality. The implementation follows established best practices and demonstrates effective software engineering principles.

### Key Features

- **Feature 1**: A well-structured component that handles core functionality
- **Feature 2**: An efficient module that processes data with optimal performance
- **Feature 3**: A robust system that ensures reliability and maintainability

### Code Example

` + "```python\ndef example_function():\n    print(\"Hello, World!\")\n    return True\n```" + `

This example illustrates the project's coding standards and architectural patterns.`
	case "marketing":
		return `Discover the game-changing capabilities that make this project stand out from the competition! You won't believe how this innovative solution can transform your development workflow.

### Amazing Features

- **Feature 1**: The most powerful component you've ever seen
- **Feature 2**: Lightning-fast performance that leaves competitors in the dust
- **Feature 3**: Premium quality that ensures your success every time

### Incredible Code Example

` + "```python\ndef amazing_function():\n    print(\"Prepare to be amazed!\")\n    return True\n```" + `

This is just the beginning - wait until you see what else this project can do!`
	default: // conversational
		return `Hey there! I'm excited to walk you through this part of the project. When I first started working on this, I had no idea how much fun it would be to build. Let me share what I've learned along the way.

### What I Love About This

- **Feature 1**: This is honestly one of my favorite parts - it just works so smoothly
- **Feature 2**: I spent way too much time on this, but it was totally worth it
- **Feature 3**: You're going to love how easy this makes everything

### Here's Some Code I'm Proud Of

` + "```python\ndef my_favorite_function():\n    print(\"Isn't this cool?\")\n    return True\n```" + `

I hope you find this as useful as I do. Let me know if you have any questions!`
	}
}

// inferTone picks the tone a prompt asks for, defaulting to conversational.
func inferTone(lower string) string {
	switch {
	case strings.Contains(lower, "explanatory"):
		return "explanatory"
	case strings.Contains(lower, "marketing"):
		return "marketing"
	default:
		return "conversational"
	}
}
