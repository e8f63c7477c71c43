package main

import (
	"context"
	"fmt"
	"log"
)

// genericErrorArticle is the user-facing body returned on any fatal failure.
// Internal error detail is logged, never displayed.
const genericErrorArticle = "# Error Generating Article\n\nAn error occurred during article generation. Please try again."

// Stage is one transformation step of the pipeline. A stage reads and writes
// the shared state record; fatal failures are recorded on state.Err.
type Stage interface {
	Name() string
	Run(ctx context.Context, state *WorkflowState)
}

// stageOrder is the fixed pipeline definition. Stages run strictly in this
// sequence and are never skipped or reordered while the run is healthy.
var stageOrder = []string{"extractor", "planner", "generator", "assembler"}

// Workflow runs the four-stage article generation pipeline. It holds no
// per-request state: every Run owns a fresh WorkflowState and a client built
// for that run's configuration.
type Workflow struct {
	factory *ClientFactory
	config  *Config
	// ParallelSections runs the generator's per-section calls concurrently.
	ParallelSections bool
}

// NewWorkflow creates a workflow bound to the application config.
func NewWorkflow(config *Config) *Workflow {
	return &Workflow{
		factory: NewClientFactory(config.Settings),
		config:  config,
	}
}

// createInitialState builds the state record for one run with all derived
// fields unset.
func createInitialState(analysis *ProjectAnalysis, cfg *GenerationConfig) *WorkflowState {
	return &WorkflowState{Analysis: analysis, Config: cfg}
}

// buildStages wires the pipeline for one run, binding the planner and
// generator to the run's client.
func (w *Workflow) buildStages(client LLMClient) []Stage {
	generator := NewGenerator(client, w.config)
	generator.Parallel = w.ParallelSections

	byName := map[string]Stage{
		"extractor": NewExtractor(),
		"planner":   NewPlanner(client, w.config),
		"generator": generator,
		"assembler": NewAssembler(),
	}

	stages := make([]Stage, len(stageOrder))
	for i, name := range stageOrder {
		stages[i] = byName[name]
	}
	return stages
}

// Run executes the pipeline against the given analysis and configuration.
// It always returns a result: success with the final article, or failure
// with the generic error body.
func (w *Workflow) Run(ctx context.Context, analysis *ProjectAnalysis, cfg *GenerationConfig) *GenerationResult {
	if analysis == nil || cfg == nil {
		return failureResult(fmt.Errorf("workflow: analysis and config are required"))
	}

	log.Printf("Starting article generation workflow (provider: %s)", cfg.LLMProvider)

	client := w.factory.CreateClient(cfg.LLMProvider, cfg.APIKey)
	state := createInitialState(analysis, cfg)

	runStages(ctx, w.buildStages(client), state)

	if state.Err != nil {
		return failureResult(state.Err)
	}
	if state.FinalArticle == "" {
		return failureResult(fmt.Errorf("workflow: no article produced"))
	}

	log.Printf("✓ Workflow completed")
	return &GenerationResult{Success: true, Article: state.FinalArticle}
}

// runStages executes the stages in order. Once a stage has failed, every
// later stage is skipped explicitly: no stage may do its main work on top of
// a failed predecessor.
func runStages(ctx context.Context, stages []Stage, state *WorkflowState) {
	for _, stage := range stages {
		if state.Err != nil {
			log.Printf("Skipping stage %s: earlier stage failed", stage.Name())
			continue
		}
		stage.Run(ctx, state)
		if state.Err != nil {
			log.Printf("✗ Stage %s failed: %v", stage.Name(), state.Err)
		}
	}
}

func failureResult(err error) *GenerationResult {
	log.Printf("✗ Workflow failed: %v", err)
	return &GenerationResult{
		Success: false,
		Article: genericErrorArticle,
		Error:   err.Error(),
	}
}
