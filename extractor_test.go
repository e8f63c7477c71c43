package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

// writeProjectFixture lays out a small project on disk and returns its
// analysis.
func writeProjectFixture(t *testing.T, depth string) *ProjectAnalysis {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"README.md":        "# Fixture Project\n\nA tiny project used in tests.",
		"requirements.txt": "flask==2.0\nrequests>=2.25",
		"main.py":          "def main():\n    print('hello')\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
	}

	fileInfo := func(name string) FileInfo {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("stat fixture %s: %v", name, err)
		}
		return FileInfo{Name: name, Path: name, FullPath: filepath.Join(dir, name), Size: info.Size()}
	}

	tree := FileTree{
		ReadmeFiles: []FileInfo{fileInfo("README.md")},
		ConfigFiles: []FileInfo{fileInfo("requirements.txt")},
		CodeFiles:   []FileInfo{fileInfo("main.py")},
		Files:       []FileInfo{fileInfo("README.md"), fileInfo("requirements.txt"), fileInfo("main.py")},
		Directories: []DirInfo{},
	}

	return &ProjectAnalysis{
		FileTree:      tree,
		AnalysisDepth: depth,
		TotalFiles:    3,
		CodeFiles:     1,
		ReadmeFiles:   1,
		ConfigFiles:   1,
	}
}

func TestExtractorCollectsContent(t *testing.T) {
	analysis := writeProjectFixture(t, "detailed")
	state := createInitialState(analysis, &GenerationConfig{AnalysisDepth: "detailed"})

	NewExtractor().Run(context.Background(), state)

	if state.Err != nil {
		t.Fatalf("unexpected error: %v", state.Err)
	}
	extracted := state.ExtractedContent
	if extracted == nil {
		t.Fatal("extracted content is nil")
	}

	if !strings.Contains(extracted.ReadmeContent, "## README.md") {
		t.Errorf("readme content missing path heading:\n%s", extracted.ReadmeContent)
	}
	if !strings.Contains(extracted.ReadmeContent, "Fixture Project") {
		t.Error("readme content missing file body")
	}
	if !strings.Contains(extracted.ConfigContent, "## requirements.txt") || !strings.Contains(extracted.ConfigContent, "```") {
		t.Errorf("config content not fenced under its heading:\n%s", extracted.ConfigContent)
	}
	if !strings.Contains(extracted.CodeFilesInfo, "main.py") {
		t.Error("code files info missing main.py")
	}

	var structure struct {
		TotalFiles  int            `json:"total_files"`
		Directories []string       `json:"directories"`
		FileTypes   map[string]int `json:"file_types"`
	}
	if err := json.Unmarshal([]byte(extracted.ProjectStructure), &structure); err != nil {
		t.Fatalf("project structure is not valid JSON: %v", err)
	}
	if structure.TotalFiles != 3 {
		t.Errorf("total files = %d, want 3", structure.TotalFiles)
	}
	if structure.FileTypes[".py"] != 1 || structure.FileTypes[".md"] != 1 || structure.FileTypes[".txt"] != 1 {
		t.Errorf("extension histogram = %v", structure.FileTypes)
	}
}

func TestExtractorDepthSensitivity(t *testing.T) {
	codeContent := func(depth string) []CodeFileInfo {
		analysis := writeProjectFixture(t, depth)
		state := createInitialState(analysis, &GenerationConfig{AnalysisDepth: depth})
		NewExtractor().Run(context.Background(), state)
		if state.Err != nil {
			t.Fatalf("unexpected error: %v", state.Err)
		}

		var infos []CodeFileInfo
		if err := json.Unmarshal([]byte(state.ExtractedContent.CodeFilesInfo), &infos); err != nil {
			t.Fatalf("code files info is not valid JSON: %v", err)
		}
		return infos
	}

	overview := codeContent("overview")
	detailed := codeContent("detailed")

	if len(overview) != 1 || len(detailed) != 1 {
		t.Fatalf("descriptor counts: overview=%d detailed=%d", len(overview), len(detailed))
	}
	if overview[0].Content != "" {
		t.Errorf("overview descriptor has content excerpt: %q", overview[0].Content)
	}
	if detailed[0].Content == "" {
		t.Error("detailed descriptor missing content excerpt")
	}

	// The raw JSON must differ in whether the content key is present at all.
	analysis := writeProjectFixture(t, "overview")
	state := createInitialState(analysis, &GenerationConfig{})
	NewExtractor().Run(context.Background(), state)
	if strings.Contains(state.ExtractedContent.CodeFilesInfo, `"content"`) {
		t.Error("overview code descriptors must not contain a content key")
	}
}

func TestExtractorTruncatesLongCode(t *testing.T) {
	dir := t.TempDir()
	longBody := strings.Repeat("x", codeExcerptLimit+500)
	path := filepath.Join(dir, "big.py")
	if err := os.WriteFile(path, []byte(longBody), 0644); err != nil {
		t.Fatal(err)
	}

	analysis := &ProjectAnalysis{
		FileTree: FileTree{
			CodeFiles: []FileInfo{{Name: "big.py", Path: "big.py", FullPath: path, Size: int64(len(longBody))}},
		},
		AnalysisDepth: "detailed",
	}
	state := createInitialState(analysis, &GenerationConfig{})

	NewExtractor().Run(context.Background(), state)

	var infos []CodeFileInfo
	if err := json.Unmarshal([]byte(state.ExtractedContent.CodeFilesInfo), &infos); err != nil {
		t.Fatal(err)
	}
	if !infos[0].Truncated {
		t.Error("long file not flagged as truncated")
	}
	if len(infos[0].Content) != codeExcerptLimit+len("...") {
		t.Errorf("excerpt length = %d, want %d", len(infos[0].Content), codeExcerptLimit+3)
	}
	if !strings.HasSuffix(infos[0].Content, "...") {
		t.Error("truncated excerpt missing ellipsis")
	}
}

func TestExtractorTruncatesOnRuneBoundary(t *testing.T) {
	dir := t.TempDir()
	// Three-byte runes that never align with the cap, so a byte slice at
	// the limit would split one mid-sequence.
	longBody := strings.Repeat("世", codeExcerptLimit)
	path := filepath.Join(dir, "unicode.py")
	if err := os.WriteFile(path, []byte(longBody), 0644); err != nil {
		t.Fatal(err)
	}

	analysis := &ProjectAnalysis{
		FileTree: FileTree{
			CodeFiles: []FileInfo{{Name: "unicode.py", Path: "unicode.py", FullPath: path, Size: int64(len(longBody))}},
		},
		AnalysisDepth: "detailed",
	}
	state := createInitialState(analysis, &GenerationConfig{})

	NewExtractor().Run(context.Background(), state)

	var infos []CodeFileInfo
	if err := json.Unmarshal([]byte(state.ExtractedContent.CodeFilesInfo), &infos); err != nil {
		t.Fatal(err)
	}
	if !infos[0].Truncated {
		t.Error("long file not flagged as truncated")
	}
	excerpt := strings.TrimSuffix(infos[0].Content, "...")
	if !utf8.ValidString(excerpt) {
		t.Error("excerpt is not valid UTF-8")
	}
	if strings.ContainsRune(excerpt, utf8.RuneError) {
		t.Error("excerpt contains a replacement character")
	}
	if len(excerpt) > codeExcerptLimit {
		t.Errorf("excerpt length = %d, want at most %d", len(excerpt), codeExcerptLimit)
	}
}

func TestExtractorSkipsMissingFiles(t *testing.T) {
	analysis := writeProjectFixture(t, "overview")
	analysis.FileTree.ReadmeFiles = append(analysis.FileTree.ReadmeFiles,
		FileInfo{Name: "GONE.md", Path: "GONE.md", FullPath: "/nonexistent/GONE.md"})
	analysis.FileTree.CodeFiles = append(analysis.FileTree.CodeFiles,
		FileInfo{Name: "gone.py", Path: "gone.py", FullPath: "/nonexistent/gone.py"})

	state := createInitialState(analysis, &GenerationConfig{})
	NewExtractor().Run(context.Background(), state)

	if state.Err != nil {
		t.Fatalf("missing files must not be fatal: %v", state.Err)
	}
	if !strings.Contains(state.ExtractedContent.ReadmeContent, "Fixture Project") {
		t.Error("readable readme lost when a sibling is missing")
	}
	if strings.Contains(state.ExtractedContent.CodeFilesInfo, "gone.py") {
		t.Error("missing code file should be skipped entirely")
	}
}

func TestExtractorConvertsHTMLReadme(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "README.html")
	html := "<html><body><h1>Web Readme</h1><p>Hello <strong>world</strong>.</p></body></html>"
	if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
		t.Fatal(err)
	}

	analysis := &ProjectAnalysis{
		FileTree: FileTree{
			ReadmeFiles: []FileInfo{{Name: "README.html", Path: "README.html", FullPath: htmlPath}},
		},
		AnalysisDepth: "overview",
	}
	state := createInitialState(analysis, &GenerationConfig{})

	NewExtractor().Run(context.Background(), state)

	if state.Err != nil {
		t.Fatalf("unexpected error: %v", state.Err)
	}
	got := state.ExtractedContent.ReadmeContent
	if strings.Contains(got, "<h1>") || strings.Contains(got, "<p>") {
		t.Errorf("HTML readme was not converted to markdown:\n%s", got)
	}
	if !strings.Contains(got, "Web Readme") || !strings.Contains(got, "**world**") {
		t.Errorf("converted readme lost content:\n%s", got)
	}
}
