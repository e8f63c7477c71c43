package main

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClassifyFile(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"README.md", "readme"},
		{"readme.txt", "readme"},
		{"README.html", "readme"},
		{"requirements.txt", "config"},
		{"go.mod", "config"},
		{"settings.yaml", "config"},
		{"package.json", "config"},
		{"Dockerfile", "config"},
		{"main.py", "code"},
		{"server.go", "code"},
		{"app.tsx", "code"},
		{"photo.png", "other"},
		{"notes.txt", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyFile(tt.name); got != tt.want {
				t.Errorf("classifyFile(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestAnalyzeDirectory(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"README.md":            "# Test",
		"requirements.txt":     "flask",
		"src/main.py":          "print('hi')",
		"src/util.py":          "pass",
		".git/config":          "ignored",
		"node_modules/x/y.js":  "ignored",
		"__pycache__/main.pyc": "ignored",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	analysis, err := NewProjectAnalyzer().AnalyzeDirectory(dir, "overview")
	if err != nil {
		t.Fatalf("AnalyzeDirectory() error: %v", err)
	}

	if analysis.AnalysisDepth != "overview" {
		t.Errorf("depth = %q", analysis.AnalysisDepth)
	}
	if analysis.TotalFiles != 4 {
		t.Errorf("total files = %d, want 4 (ignored trees must be excluded)", analysis.TotalFiles)
	}
	if analysis.ReadmeFiles != 1 || analysis.ConfigFiles != 1 || analysis.CodeFiles != 2 {
		t.Errorf("counts = readme:%d config:%d code:%d", analysis.ReadmeFiles, analysis.ConfigFiles, analysis.CodeFiles)
	}

	for _, f := range analysis.FileTree.Files {
		if strings.Contains(f.Path, "node_modules") || strings.Contains(f.Path, ".git") {
			t.Errorf("ignored path leaked into analysis: %s", f.Path)
		}
	}

	foundSrc := false
	for _, d := range analysis.FileTree.Directories {
		if d.Path == "src" {
			foundSrc = true
		}
	}
	if !foundSrc {
		t.Error("src directory missing from analysis")
	}
}

func TestValidateArchive(t *testing.T) {
	analyzer := NewProjectAnalyzer()

	tests := []struct {
		name    string
		path    string
		size    int64
		wantErr bool
	}{
		{"zip ok", "project.zip", 1024, false},
		{"tar.gz ok", "project.tar.gz", 1024, false},
		{"tgz ok", "project.tgz", 1024, false},
		{"oversized", "project.zip", maxArchiveSizeMB*1024*1024 + 1, true},
		{"unsupported type", "project.rar", 1024, true},
		{"plain file", "project.txt", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := analyzer.ValidateArchive(tt.path, tt.size)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateArchive(%q, %d) error = %v, wantErr %v", tt.path, tt.size, err, tt.wantErr)
			}
		})
	}
}

func TestAnalyzePathWithZipArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "project.zip")

	out, err := os.Create(archivePath)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(out)
	entries := map[string]string{
		"README.md":   "# Zipped Project",
		"app/main.go": "package main",
		"config.yaml": "key: value",
	}
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}

	analysis, err := NewProjectAnalyzer().AnalyzePath(archivePath, "detailed")
	if err != nil {
		t.Fatalf("AnalyzePath() error: %v", err)
	}

	if analysis.TotalFiles != 3 {
		t.Errorf("total files = %d, want 3", analysis.TotalFiles)
	}
	if analysis.ReadmeFiles != 1 || analysis.CodeFiles != 1 || analysis.ConfigFiles != 1 {
		t.Errorf("counts = readme:%d code:%d config:%d",
			analysis.ReadmeFiles, analysis.CodeFiles, analysis.ConfigFiles)
	}

	// Extracted files must be readable at their recorded locations.
	for _, f := range analysis.FileTree.ReadmeFiles {
		content, err := os.ReadFile(f.FullPath)
		if err != nil {
			t.Errorf("reading extracted file %s: %v", f.Path, err)
		}
		if !strings.Contains(string(content), "Zipped Project") {
			t.Errorf("extracted readme content mismatch: %q", content)
		}
	}
}

func TestAnalyzePathWithTarGzArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "project.tgz")

	out, err := os.Create(archivePath)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	// `tar -czf x.tgz .` prefixes every entry with ./ and includes the
	// root directory itself.
	if err := tw.WriteHeader(&tar.Header{Name: "./", Typeflag: tar.TypeDir, Mode: 0755}); err != nil {
		t.Fatal(err)
	}
	entries := map[string]string{
		"./README.md":   "# Tarred Project",
		"./src/main.py": "print('hi')",
		"./config.yaml": "key: value",
	}
	if err := tw.WriteHeader(&tar.Header{Name: "./src/", Typeflag: tar.TypeDir, Mode: 0755}); err != nil {
		t.Fatal(err)
	}
	for name, content := range entries {
		header := &tar.Header{Name: name, Typeflag: tar.TypeReg, Mode: 0644, Size: int64(len(content))}
		if err := tw.WriteHeader(header); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}

	analysis, err := NewProjectAnalyzer().AnalyzePath(archivePath, "overview")
	if err != nil {
		t.Fatalf("AnalyzePath() error: %v", err)
	}

	if analysis.TotalFiles != 3 {
		t.Errorf("total files = %d, want 3", analysis.TotalFiles)
	}
	if analysis.ReadmeFiles != 1 || analysis.CodeFiles != 1 || analysis.ConfigFiles != 1 {
		t.Errorf("counts = readme:%d code:%d config:%d",
			analysis.ReadmeFiles, analysis.CodeFiles, analysis.ConfigFiles)
	}

	for _, f := range analysis.FileTree.ReadmeFiles {
		content, err := os.ReadFile(f.FullPath)
		if err != nil {
			t.Errorf("reading extracted file %s: %v", f.Path, err)
		}
		if !strings.Contains(string(content), "Tarred Project") {
			t.Errorf("extracted readme content mismatch: %q", content)
		}
	}
}

func TestSecurePathRejectsEscapes(t *testing.T) {
	dest := t.TempDir()

	if _, err := securePath(dest, "../outside.txt"); err == nil {
		t.Error("securePath must reject entries escaping the destination")
	}
	if _, err := securePath(dest, "nested/ok.txt"); err != nil {
		t.Errorf("securePath rejected a safe entry: %v", err)
	}

	// The root entry of a `tar -czf x.tgz .` archive cleans to "." and maps
	// to the destination itself.
	target, err := securePath(dest, "./")
	if err != nil {
		t.Fatalf("securePath rejected the archive root entry: %v", err)
	}
	if target != filepath.Clean(dest) {
		t.Errorf("root entry target = %q, want %q", target, filepath.Clean(dest))
	}
}

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Title: With & Special!", "title-with-special"},
		{"", "article"},
		{"---", "article"},
	}
	for _, tt := range tests {
		if got := generateSlug(tt.title); got != tt.want {
			t.Errorf("generateSlug(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
