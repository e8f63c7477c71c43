package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
)

// sectionFailurePlaceholder substitutes for a single section whose
// generation failed. The rest of the article is unaffected.
const sectionFailurePlaceholder = "*Content generation for this section encountered an error. Please review the project files manually.*"

// Generator is the third pipeline stage. It writes each planned section with
// the LLM, in plan order. A failed section is replaced by a placeholder and
// never aborts the stage; only a failure outside the per-section loop is
// fatal for the run.
type Generator struct {
	client LLMClient
	config *Config
	// Parallel runs the per-section calls concurrently. Sections are
	// data-independent given the plan and extracted content, and output
	// order is preserved either way.
	Parallel bool
}

// NewGenerator creates the generator stage bound to a client.
func NewGenerator(client LLMClient, config *Config) *Generator {
	return &Generator{client: client, config: config}
}

// Name identifies the stage in logs.
func (g *Generator) Name() string { return "generator" }

// Run populates state.GeneratedSections with one rendered markdown block per
// planned section.
func (g *Generator) Run(ctx context.Context, state *WorkflowState) {
	if state.ArticlePlan == nil || state.ExtractedContent == nil {
		state.Err = fmt.Errorf("generator: missing article plan or extracted content")
		return
	}

	sections := state.ArticlePlan.Sections
	log.Printf("→ Generating %d sections...", len(sections))

	rendered := make([]string, len(sections))
	if g.Parallel {
		var wg sync.WaitGroup
		for i, section := range sections {
			wg.Add(1)
			go func(i int, section Section) {
				defer wg.Done()
				rendered[i] = g.generateSection(ctx, i, len(sections), section, state)
			}(i, section)
		}
		wg.Wait()
	} else {
		for i, section := range sections {
			rendered[i] = g.generateSection(ctx, i, len(sections), section, state)
		}
	}

	state.GeneratedSections = rendered
	log.Printf("✓ Generated content for %d sections", len(rendered))
}

// generateSection writes one section, substituting the placeholder when the
// client call fails.
func (g *Generator) generateSection(ctx context.Context, i, total int, section Section, state *WorkflowState) string {
	log.Printf("  [%d/%d] %s", i+1, total, section.Heading)

	prompt := g.formatSectionPrompt(section, state)

	callCtx, cancel := context.WithTimeout(ctx, g.config.Settings.RequestTimeout())
	defer cancel()

	response, err := g.client.GenerateContent(callCtx, prompt)
	if err != nil {
		log.Printf("✗ Failed to generate section %q: %v", section.Heading, err)
		return fmt.Sprintf("## %s\n\n%s\n\n", section.Heading, sectionFailurePlaceholder)
	}

	return fmt.Sprintf("## %s\n\n%s\n\n", section.Heading, response.Text)
}

// formatSectionPrompt substitutes the section plan, guidance notes and
// extracted content into the per-section template.
func (g *Generator) formatSectionPrompt(section Section, state *WorkflowState) string {
	cfg := state.Config
	plan := state.ArticlePlan
	extracted := state.ExtractedContent

	replacer := strings.NewReplacer(
		"{{.ArticleTone}}", cfg.ArticleTone,
		"{{.TargetAudience}}", cfg.TargetAudience,
		"{{.ProjectName}}", cfg.ProjectName(),
		"{{.SectionHeading}}", section.Heading,
		"{{.ContentType}}", section.ContentType,
		"{{.KeyPoints}}", strings.Join(section.KeyPoints, ", "),
		"{{.ToneNotes}}", plan.ToneNotes,
		"{{.AudienceNotes}}", plan.AudienceNotes,
		"{{.ReadmeContent}}", extracted.ReadmeContent,
		"{{.ConfigContent}}", extracted.ConfigContent,
		"{{.CodeFilesInfo}}", extracted.CodeFilesInfo,
		"{{.ProjectStructure}}", extracted.ProjectStructure,
	)
	return replacer.Replace(g.config.GetSectionPrompt())
}
