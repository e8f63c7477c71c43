package main

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Assembler is the final pipeline stage. Pure formatting: title heading,
// the rendered section blocks in order, then a metadata footer.
type Assembler struct{}

// NewAssembler creates the assembler stage.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Name identifies the stage in logs.
func (a *Assembler) Name() string { return "assembler" }

// Run populates state.FinalArticle.
func (a *Assembler) Run(_ context.Context, state *WorkflowState) {
	log.Printf("→ Assembling final article...")

	if state.ArticlePlan == nil || state.GeneratedSections == nil {
		state.Err = fmt.Errorf("assembler: missing article plan or generated sections")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", state.ArticlePlan.Title)
	for _, section := range state.GeneratedSections {
		sb.WriteString(section)
	}
	sb.WriteString(metadataFooter(state))

	state.FinalArticle = sb.String()
	log.Printf("✓ Article assembled (%d bytes)", len(state.FinalArticle))
}

// metadataFooter renders the fixed article-information trailer.
func metadataFooter(state *WorkflowState) string {
	cfg := state.Config
	analysis := state.Analysis

	return fmt.Sprintf(`
---

## Article Information

- **Generated by**: project-writer
- **Analysis Depth**: %s
- **Article Tone**: %s
- **Target Audience**: %s
- **Project Files Analyzed**: %d
- **Code Files**: %d
- **README Files**: %d
- **Configuration Files**: %d

*This article was automatically generated from your project files. Please review and edit as needed before publishing.*
`,
		titleCase(cfg.AnalysisDepth),
		cfg.ArticleTone,
		cfg.TargetAudience,
		analysis.TotalFiles,
		analysis.CodeFiles,
		analysis.ReadmeFiles,
		analysis.ConfigFiles,
	)
}

// titleCase upper-cases the first letter of an ASCII word ("detailed" →
// "Detailed").
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
