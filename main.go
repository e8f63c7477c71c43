package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagDepth         string
	flagTone          string
	flagAudience      string
	flagProvider      string
	flagAPIKey        string
	flagTitle         string
	flagOutput        string
	flagHTML          bool
	flagParallel      bool
	flagPlannerPrompt string
	flagSectionPrompt string
	flagSettings      string
)

var rootCmd = &cobra.Command{
	Use:   "project-writer <archive-or-directory>",
	Short: "Generate a technical article from a project archive using AI",
	Long: `project-writer analyzes a source-code archive (or directory) and runs a
four-stage pipeline - extract, plan, generate, assemble - to produce a
publishable markdown article about the project.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func run(projectPath string) error {
	overrides := &ConfigOverrides{}
	if flagPlannerPrompt != "" {
		overrides.PlannerPromptPath = &flagPlannerPrompt
	}
	if flagSectionPrompt != "" {
		overrides.SectionPromptPath = &flagSectionPrompt
	}
	if flagSettings != "" {
		overrides.SettingsPath = &flagSettings
	}

	config, err := NewConfig(overrides)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	depth := strings.ToLower(flagDepth)
	if depth != "overview" && depth != "detailed" {
		return fmt.Errorf("invalid depth %q: must be overview or detailed", flagDepth)
	}

	analyzer := NewProjectAnalyzer()
	analysis, err := analyzer.AnalyzePath(projectPath, depth)
	if err != nil {
		return fmt.Errorf("analyzing project: %w", err)
	}
	log.Printf("Analyzed %d files (%d code, %d readme, %d config)",
		analysis.TotalFiles, analysis.CodeFiles, analysis.ReadmeFiles, analysis.ConfigFiles)

	genConfig := &GenerationConfig{
		AnalysisDepth:  depth,
		ArticleTone:    flagTone,
		TargetAudience: flagAudience,
		LLMProvider:    flagProvider,
		APIKey:         flagAPIKey,
		ArticleTitle:   flagTitle,
	}

	workflow := NewWorkflow(config)
	workflow.ParallelSections = flagParallel

	result := workflow.Run(context.Background(), analysis, genConfig)
	if !result.Success {
		return fmt.Errorf("article generation failed: %s", result.Error)
	}

	outputPath := flagOutput
	if outputPath == "" {
		outputPath = defaultOutputPath(config.Settings.OutputDirectory, genConfig.ProjectName())
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(result.Article), 0644); err != nil {
		return fmt.Errorf("writing article: %w", err)
	}
	log.Printf("✓ Article written to %s", outputPath)

	if flagHTML {
		htmlPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".html"
		if err := WriteHTMLPreview(result.Article, htmlPath); err != nil {
			return fmt.Errorf("writing HTML preview: %w", err)
		}
		log.Printf("✓ HTML preview written to %s", htmlPath)
	}

	return nil
}

// defaultOutputPath builds <outputDir>/<date>-<slug>.md from the project
// name.
func defaultOutputPath(outputDir, projectName string) string {
	slug := generateSlug(projectName)
	date := time.Now().Format("2006-01-02")
	return filepath.Join(outputDir, fmt.Sprintf("%s-%s.md", date, slug))
}

// generateSlug creates a filesystem-safe slug from a title.
func generateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = regexp.MustCompile(`[^a-z0-9]+`).ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > 50 {
		slug = strings.Trim(slug[:50], "-")
	}
	if slug == "" {
		return "article"
	}
	return slug
}

func init() {
	rootCmd.Flags().StringVar(&flagDepth, "depth", "overview", "Analysis depth: overview or detailed")
	rootCmd.Flags().StringVar(&flagTone, "tone", "Explanatory", "Article tone: Explanatory, Conversational or Marketing")
	rootCmd.Flags().StringVar(&flagAudience, "audience", "Intermediate", "Target audience: Beginner, Intermediate or Advanced")
	rootCmd.Flags().StringVar(&flagProvider, "provider", ProviderOpenAI, "LLM provider: \"OpenAI GPT-4\", \"Anthropic Claude\" or \"DeepSeek Chat\"")
	rootCmd.Flags().StringVar(&flagAPIKey, "api-key", "", "Provider API key (falls back to the provider's environment variable)")
	rootCmd.Flags().StringVar(&flagTitle, "title", "", "Article title (defaults to a generated one)")
	rootCmd.Flags().StringVar(&flagOutput, "output", "", "Output markdown path (defaults to the configured articles directory)")
	rootCmd.Flags().BoolVar(&flagHTML, "html", false, "Also write an HTML preview next to the markdown")
	rootCmd.Flags().BoolVar(&flagParallel, "parallel", false, "Generate independent sections concurrently")
	rootCmd.Flags().StringVar(&flagPlannerPrompt, "planner-prompt", "", "Path to a custom planner prompt template")
	rootCmd.Flags().StringVar(&flagSectionPrompt, "section-prompt", "", "Path to a custom section prompt template")
	rootCmd.Flags().StringVar(&flagSettings, "settings", "", "Path to a custom settings.yaml")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
