package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
)

// Planner is the second pipeline stage. It asks the LLM for a structured
// article plan and falls back to a canonical outline when the call fails or
// the response doesn't parse. The planner always produces a usable plan and
// never fails the run.
type Planner struct {
	client LLMClient
	config *Config
}

// NewPlanner creates the planner stage bound to a client.
func NewPlanner(client LLMClient, config *Config) *Planner {
	return &Planner{client: client, config: config}
}

// Name identifies the stage in logs.
func (p *Planner) Name() string { return "planner" }

// Run populates state.ArticlePlan.
func (p *Planner) Run(ctx context.Context, state *WorkflowState) {
	log.Printf("→ Planning article sections...")

	prompt := p.formatPlannerPrompt(state)

	callCtx, cancel := context.WithTimeout(ctx, p.config.Settings.RequestTimeout())
	defer cancel()

	response, err := p.client.GenerateContent(callCtx, prompt)
	if err != nil {
		log.Printf("✗ Planner LLM call failed: %v, using fallback plan", err)
		state.ArticlePlan = fallbackPlan(state.Config)
		return
	}

	plan, err := parsePlan(response.Text)
	if err != nil {
		log.Printf("✗ Failed to parse plan response: %v, using fallback plan", err)
		state.ArticlePlan = fallbackPlan(state.Config)
		return
	}

	state.ArticlePlan = plan
	log.Printf("✓ Planned %d sections", len(plan.Sections))
}

// formatPlannerPrompt substitutes the project metadata into the planner
// template. The planner prompt intentionally uses only analysis counts and
// file lists, not extracted file contents.
func (p *Planner) formatPlannerPrompt(state *WorkflowState) string {
	analysis := state.Analysis
	cfg := state.Config

	replacer := strings.NewReplacer(
		"{{.ProjectName}}", cfg.ProjectName(),
		"{{.AnalysisDepth}}", cfg.AnalysisDepth,
		"{{.ArticleTone}}", cfg.ArticleTone,
		"{{.TargetAudience}}", cfg.TargetAudience,
		"{{.TotalFiles}}", strconv.Itoa(analysis.TotalFiles),
		"{{.CodeFiles}}", strconv.Itoa(analysis.CodeFiles),
		"{{.ReadmeFiles}}", strconv.Itoa(analysis.ReadmeFiles),
		"{{.ConfigFiles}}", strconv.Itoa(analysis.ConfigFiles),
		"{{.ReadmeFilesList}}", joinPaths(analysis.FileTree.ReadmeFiles),
		"{{.ConfigFilesList}}", joinPaths(analysis.FileTree.ConfigFiles),
		"{{.CodeFilesList}}", joinPaths(analysis.FileTree.CodeFiles),
	)
	return replacer.Replace(p.config.GetPlannerPrompt())
}

// parsePlan decodes the LLM response as an ArticlePlan. Models routinely
// wrap JSON in markdown code fences, so fences are stripped before decoding.
func parsePlan(text string) (*ArticlePlan, error) {
	cleaned := stripCodeFences(text)

	var plan ArticlePlan
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		return nil, fmt.Errorf("decoding plan JSON: %w", err)
	}
	if len(plan.Sections) == 0 {
		return nil, fmt.Errorf("plan contains no sections")
	}
	return &plan, nil
}

// stripCodeFences removes a surrounding ``` or ```json fence, if present.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if newline := strings.Index(trimmed, "\n"); newline >= 0 {
		// Drop the language tag on the opening fence line.
		trimmed = trimmed[newline+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// fallbackPlan is the canonical four-section outline used whenever planning
// fails. Tone and audience notes are derived from the user configuration so
// the generator still writes in the requested register.
func fallbackPlan(cfg *GenerationConfig) *ArticlePlan {
	title := cfg.ArticleTitle
	if title == "" {
		title = "Project Overview"
	}

	return &ArticlePlan{
		Title: title,
		Sections: []Section{
			{Heading: "Introduction", ContentType: "overview", KeyPoints: []string{"Project overview", "Main features", "What you'll learn"}, EstimatedLength: "short"},
			{Heading: "Getting Started", ContentType: "setup", KeyPoints: []string{"Prerequisites", "Installation", "Configuration"}, EstimatedLength: "medium"},
			{Heading: "Features and Usage", ContentType: "features", KeyPoints: []string{"Main functionality", "Key features", "Usage examples"}, EstimatedLength: "medium"},
			{Heading: "Conclusion", ContentType: "conclusion", KeyPoints: []string{"Summary", "Next steps", "Resources"}, EstimatedLength: "short"},
		},
		ToneNotes:     "Use " + strings.ToLower(cfg.ArticleTone) + " tone",
		AudienceNotes: "Target " + strings.ToLower(cfg.TargetAudience) + " developers",
	}
}

// joinPaths renders a file list as a comma-separated path list for prompts.
func joinPaths(files []FileInfo) string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return strings.Join(paths, ", ")
}
