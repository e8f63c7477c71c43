package main

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// maxArchiveSizeMB caps uploaded archives.
const maxArchiveSizeMB = 20

// ignoreDirs are directory names skipped during the project walk.
var ignoreDirs = map[string]bool{
	".git":          true,
	"__pycache__":   true,
	".pytest_cache": true,
	".venv":         true,
	"venv":          true,
	"env":           true,
	"node_modules":  true,
	".tox":          true,
	".mypy_cache":   true,
	".ruff_cache":   true,
	"vendor":        true,
}

// ignoreFileSuffixes are file suffixes skipped during the project walk.
var ignoreFileSuffixes = []string{".pyc", ".pyo", ".pyd", ".DS_Store", ".coverage"}

// codeExtensions classify a file as source code.
var codeExtensions = map[string]bool{
	".go": true, ".py": true, ".js": true, ".ts": true, ".jsx": true,
	".tsx": true, ".java": true, ".c": true, ".h": true, ".cpp": true,
	".hpp": true, ".rs": true, ".rb": true, ".php": true, ".cs": true,
	".kt": true, ".swift": true, ".sh": true, ".sql": true,
}

// configNames and configExtensions classify a file as configuration.
var configNames = map[string]bool{
	"makefile": true, "dockerfile": true, "requirements.txt": true,
	"go.mod": true, "go.sum": true, "package.json": true,
	"pyproject.toml": true, "setup.py": true, "cargo.toml": true,
}

var configExtensions = map[string]bool{
	".yaml": true, ".yml": true, ".toml": true, ".ini": true,
	".cfg": true, ".conf": true, ".env": true,
}

// ProjectAnalyzer turns an uploaded archive (or plain directory) into a
// ProjectAnalysis for the workflow. It owns archive validation, extraction
// and the classified file walk.
type ProjectAnalyzer struct {
	maxSizeBytes int64
}

// NewProjectAnalyzer creates an analyzer with the default size cap.
func NewProjectAnalyzer() *ProjectAnalyzer {
	return &ProjectAnalyzer{maxSizeBytes: maxArchiveSizeMB * 1024 * 1024}
}

// AnalyzePath analyzes an archive file or project directory. Archives are
// extracted to a temporary directory that the caller does not need to clean
// up between runs (it lives for the process).
func (a *ProjectAnalyzer) AnalyzePath(path, depth string) (*ProjectAnalysis, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	root := path
	if !info.IsDir() {
		if err := a.ValidateArchive(path, info.Size()); err != nil {
			return nil, err
		}
		root, err = a.ExtractArchive(path)
		if err != nil {
			return nil, fmt.Errorf("extracting archive: %w", err)
		}
	}

	return a.AnalyzeDirectory(root, depth)
}

// ValidateArchive enforces the size cap and supported archive types.
func (a *ProjectAnalyzer) ValidateArchive(path string, size int64) error {
	if size > a.maxSizeBytes {
		return fmt.Errorf("file size (%.1fMB) exceeds maximum allowed size (%dMB)",
			float64(size)/1024/1024, maxArchiveSizeMB)
	}

	lower := strings.ToLower(path)
	if !strings.HasSuffix(lower, ".zip") && !strings.HasSuffix(lower, ".tar.gz") && !strings.HasSuffix(lower, ".tgz") {
		return fmt.Errorf("unsupported file type %s: allowed are .zip, .tar.gz, .tgz", filepath.Ext(path))
	}
	return nil
}

// ExtractArchive extracts a .zip or .tar.gz archive into a fresh temporary
// directory and returns its path.
func (a *ProjectAnalyzer) ExtractArchive(path string) (string, error) {
	tempDir, err := os.MkdirTemp("", "project_analysis_")
	if err != nil {
		return "", fmt.Errorf("creating temp directory: %w", err)
	}

	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		err = extractZip(path, tempDir)
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		err = extractTarGz(path, tempDir)
	default:
		err = fmt.Errorf("unsupported archive type: %s", path)
	}
	if err != nil {
		return "", err
	}

	log.Printf("Extracted archive to %s", tempDir)
	return tempDir, nil
}

// AnalyzeDirectory walks the project tree, classifies files and computes the
// counts the workflow consumes.
func (a *ProjectAnalyzer) AnalyzeDirectory(root, depth string) (*ProjectAnalysis, error) {
	tree := FileTree{}

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Printf("Warning: skipping %s: %v", path, err)
			return nil
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if ignoreDirs[d.Name()] {
				return filepath.SkipDir
			}
			tree.Directories = append(tree.Directories, DirInfo{Name: d.Name(), Path: rel})
			return nil
		}

		for _, suffix := range ignoreFileSuffixes {
			if strings.HasSuffix(d.Name(), suffix) {
				return nil
			}
		}

		info, err := d.Info()
		if err != nil {
			log.Printf("Warning: skipping %s: %v", rel, err)
			return nil
		}

		file := FileInfo{Name: d.Name(), Path: rel, FullPath: path, Size: info.Size()}
		tree.Files = append(tree.Files, file)

		switch classifyFile(d.Name()) {
		case "readme":
			tree.ReadmeFiles = append(tree.ReadmeFiles, file)
		case "config":
			tree.ConfigFiles = append(tree.ConfigFiles, file)
		case "code":
			tree.CodeFiles = append(tree.CodeFiles, file)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking project tree: %w", err)
	}

	sort.Slice(tree.Files, func(i, j int) bool { return tree.Files[i].Path < tree.Files[j].Path })

	return &ProjectAnalysis{
		FileTree:      tree,
		AnalysisDepth: depth,
		TotalFiles:    len(tree.Files),
		CodeFiles:     len(tree.CodeFiles),
		ReadmeFiles:   len(tree.ReadmeFiles),
		ConfigFiles:   len(tree.ConfigFiles),
	}, nil
}

// classifyFile assigns a file a role: readme, config, code or other.
func classifyFile(name string) string {
	lower := strings.ToLower(name)
	ext := filepath.Ext(lower)

	switch {
	case strings.HasPrefix(lower, "readme"):
		return "readme"
	case configNames[lower], configExtensions[ext], ext == ".json":
		return "config"
	case codeExtensions[ext]:
		return "code"
	}
	return "other"
}

func extractZip(archivePath, dest string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer reader.Close()

	for _, f := range reader.File {
		target, err := securePath(dest, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", target, err)
		}

		src, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening zip entry %s: %w", f.Name, err)
		}
		if err := writeFile(target, src); err != nil {
			src.Close()
			return err
		}
		src.Close()
	}
	return nil
}

func extractTarGz(archivePath, dest string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("opening gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}

		target, err := securePath(dest, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("creating directory for %s: %w", target, err)
			}
			if err := writeFile(target, tr); err != nil {
				return err
			}
		}
	}
}

// securePath joins an archive entry name onto dest, rejecting entries that
// would escape it. Entries that clean to "." (the leading "./" entry in
// tarballs built with `tar -czf x.tgz .`) resolve to dest itself.
func securePath(dest, name string) (string, error) {
	root := filepath.Clean(dest)
	target := filepath.Join(dest, filepath.Clean(name))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes extraction directory: %s", name)
	}
	return target, nil
}

func writeFile(target string, src io.Reader) error {
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return nil
}
