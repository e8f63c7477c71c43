package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// codeExcerptLimit caps per-file code excerpts to stay inside prompt token
// budgets.
const codeExcerptLimit = 2000

// Extractor is the first pipeline stage. It reads the project files named by
// the analysis and collects the raw text the later stages feed to the LLM.
// It performs no generation itself.
type Extractor struct {
	converter *md.Converter
}

// NewExtractor creates the extractor stage.
func NewExtractor() *Extractor {
	return &Extractor{converter: md.NewConverter("", true, nil)}
}

// Name identifies the stage in logs.
func (e *Extractor) Name() string { return "extractor" }

// Run populates state.ExtractedContent. Unreadable files are skipped with a
// warning; only serialization failures are fatal for the run.
func (e *Extractor) Run(_ context.Context, state *WorkflowState) {
	log.Printf("→ Extracting project content...")

	tree := &state.Analysis.FileTree

	readmeContent := e.extractReadmeContent(tree)
	configContent := e.extractConfigContent(tree)

	codeFilesInfo, err := e.extractCodeSummaries(tree, state.Analysis.AnalysisDepth)
	if err != nil {
		state.Err = fmt.Errorf("extracting code summaries: %w", err)
		return
	}

	projectStructure, err := buildProjectStructure(tree)
	if err != nil {
		state.Err = fmt.Errorf("building project structure: %w", err)
		return
	}

	state.ExtractedContent = &ExtractedContent{
		ReadmeContent:    readmeContent,
		ConfigContent:    configContent,
		CodeFilesInfo:    codeFilesInfo,
		ProjectStructure: projectStructure,
	}

	log.Printf("✓ Extraction completed")
}

// extractReadmeContent concatenates every readable readme under its
// relative-path heading. HTML readmes are converted to markdown first.
func (e *Extractor) extractReadmeContent(tree *FileTree) string {
	var sb strings.Builder

	for _, f := range tree.ReadmeFiles {
		content, err := os.ReadFile(f.FullPath)
		if err != nil {
			log.Printf("Warning: failed to read README file %s: %v", f.Path, err)
			continue
		}

		text := string(content)
		ext := strings.ToLower(filepath.Ext(f.Name))
		if ext == ".html" || ext == ".htm" {
			converted, err := e.converter.ConvertString(text)
			if err != nil {
				log.Printf("Warning: failed to convert HTML readme %s: %v", f.Path, err)
			} else {
				text = converted
			}
		}

		fmt.Fprintf(&sb, "\n## %s\n%s\n", f.Path, text)
	}

	return strings.TrimSpace(sb.String())
}

// extractConfigContent concatenates every readable config file, fenced as a
// code block under its relative-path heading.
func (e *Extractor) extractConfigContent(tree *FileTree) string {
	var sb strings.Builder

	for _, f := range tree.ConfigFiles {
		content, err := os.ReadFile(f.FullPath)
		if err != nil {
			log.Printf("Warning: failed to read config file %s: %v", f.Path, err)
			continue
		}
		fmt.Fprintf(&sb, "\n## %s\n```\n%s\n```\n", f.Path, string(content))
	}

	return strings.TrimSpace(sb.String())
}

// extractCodeSummaries emits a JSON descriptor per code file. Content
// excerpts are included only at detailed depth, capped at codeExcerptLimit
// characters with a truncation flag.
func (e *Extractor) extractCodeSummaries(tree *FileTree, depth string) (string, error) {
	summaries := make([]CodeFileInfo, 0, len(tree.CodeFiles))

	for _, f := range tree.CodeFiles {
		if _, err := os.Stat(f.FullPath); err != nil {
			log.Printf("Warning: failed to process code file %s: %v", f.Path, err)
			continue
		}

		info := CodeFileInfo{Path: f.Path, Name: f.Name, Size: f.Size}

		if depth == "detailed" {
			content, err := os.ReadFile(f.FullPath)
			if err != nil {
				log.Printf("Warning: failed to read code file %s: %v", f.Path, err)
				info.Content = "# Error reading file content"
			} else if len(content) > codeExcerptLimit {
				// Back off to a rune boundary so the excerpt stays valid UTF-8.
				cut := codeExcerptLimit
				for cut > 0 && !utf8.RuneStart(content[cut]) {
					cut--
				}
				info.Content = string(content[:cut]) + "..."
				info.Truncated = true
			} else {
				info.Content = string(content)
			}
		}

		summaries = append(summaries, info)
	}

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling code summaries: %w", err)
	}
	return string(data), nil
}

// projectStructure is the JSON shape of the structure summary.
type projectStructure struct {
	TotalFiles  int            `json:"total_files"`
	Directories []string       `json:"directories"`
	FileTypes   map[string]int `json:"file_types"`
}

// buildProjectStructure summarizes the tree: file count, directory paths and
// an extension histogram.
func buildProjectStructure(tree *FileTree) (string, error) {
	structure := projectStructure{
		TotalFiles:  len(tree.Files),
		Directories: make([]string, 0, len(tree.Directories)),
		FileTypes:   make(map[string]int),
	}

	for _, d := range tree.Directories {
		structure.Directories = append(structure.Directories, d.Path)
	}
	for _, f := range tree.Files {
		structure.FileTypes[filepath.Ext(f.Name)]++
	}

	data, err := json.MarshalIndent(structure, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling project structure: %w", err)
	}
	return string(data), nil
}
