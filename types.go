package main

// FileInfo describes a single file discovered during project analysis.
type FileInfo struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	FullPath string `json:"full_path"`
	Size     int64  `json:"size"`
}

// DirInfo describes a directory discovered during project analysis.
type DirInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// FileTree groups the analyzed files by role.
type FileTree struct {
	ReadmeFiles []FileInfo `json:"readme_files"`
	ConfigFiles []FileInfo `json:"config_files"`
	CodeFiles   []FileInfo `json:"code_files"`
	Files       []FileInfo `json:"files"`
	Directories []DirInfo  `json:"directories"`
}

// ProjectAnalysis is the output of the project analyzer and the immutable
// input to the article workflow.
type ProjectAnalysis struct {
	FileTree      FileTree `json:"file_tree"`
	AnalysisDepth string   `json:"analysis_depth"` // "overview" or "detailed"
	TotalFiles    int      `json:"total_files"`
	CodeFiles     int      `json:"code_files"`
	ReadmeFiles   int      `json:"readme_files"`
	ConfigFiles   int      `json:"config_files"`
}

// GenerationConfig carries the user-facing article options.
type GenerationConfig struct {
	AnalysisDepth  string // "overview" or "detailed"
	ArticleTone    string // Explanatory, Conversational or Marketing
	TargetAudience string // Beginner, Intermediate or Advanced
	LLMProvider    string
	APIKey         string
	ArticleTitle   string
}

// ProjectName returns the configured article title, or a generic default.
// The planner and section prompts use it as the project name.
func (c *GenerationConfig) ProjectName() string {
	if c.ArticleTitle != "" {
		return c.ArticleTitle
	}
	return "Project"
}

// Section is one planned article section.
type Section struct {
	Heading         string   `json:"heading"`
	ContentType     string   `json:"content_type"` // overview, setup, features, code_analysis, conclusion, ...
	KeyPoints       []string `json:"key_points"`
	EstimatedLength string   `json:"estimated_length"` // short, medium or long (advisory only)
}

// ArticlePlan is the planner stage output: an ordered section outline plus
// free-text guidance consumed by the generator prompts.
type ArticlePlan struct {
	Title         string    `json:"title"`
	Sections      []Section `json:"sections"`
	ToneNotes     string    `json:"tone_notes"`
	AudienceNotes string    `json:"audience_notes"`
}

// CodeFileInfo is the per-file descriptor emitted by the extractor. Content
// is present only at detailed analysis depth.
type CodeFileInfo struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	Content   string `json:"content,omitempty"`
	Truncated bool   `json:"truncated,omitempty"`
}

// ExtractedContent is the extractor stage output.
type ExtractedContent struct {
	ReadmeContent    string
	ConfigContent    string
	CodeFilesInfo    string // JSON list of CodeFileInfo
	ProjectStructure string // JSON structure summary
}

// WorkflowState is the single mutable record threaded through the four
// pipeline stages. Derived fields are populated strictly in stage order;
// once Err is set the remaining stages are skipped.
type WorkflowState struct {
	Analysis *ProjectAnalysis
	Config   *GenerationConfig

	ExtractedContent  *ExtractedContent
	ArticlePlan       *ArticlePlan
	GeneratedSections []string
	FinalArticle      string
	Err               error
}

// GenerationResult is what the workflow reports back to the caller.
type GenerationResult struct {
	Success bool
	Article string
	Error   string
}
