package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driven"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driving"
	"github.com/bioref-labs/taxref-cli/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.PipelineService = (*Pipeline)(nil)

// DefaultTool is the external toolkit binary driving classification,
// filtering and rarefaction.
const DefaultTool = "qiime"

// Pipeline drives the downstream external-tool steps. Each method
// assembles one invocation, checks the exit status and registers the
// output artefact; the tool's internals are a consumed contract only.
type Pipeline struct {
	runner    driven.ToolRunner
	artifacts driven.ArtifactStore
	tool      string
}

// NewPipeline creates a new pipeline service. tool may be empty to use
// DefaultTool.
func NewPipeline(runner driven.ToolRunner, artifacts driven.ArtifactStore, tool string) *Pipeline {
	if tool == "" {
		tool = DefaultTool
	}
	return &Pipeline{runner: runner, artifacts: artifacts, tool: tool}
}

// Classify runs consensus classification against a reference database.
func (p *Pipeline) Classify(ctx context.Context, req driving.ClassifyRequest) (*domain.Artifact, error) {
	if req.Query == "" || req.ReferenceFasta == "" || req.ReferenceTaxonomy == "" || req.Output == "" {
		return nil, fmt.Errorf("%w: query, reference and output are required", domain.ErrInvalidInput)
	}
	identity := req.Identity
	if identity == 0 {
		identity = 0.97
	}

	logger.Section("Classify")
	err := p.runner.Run(ctx, p.tool,
		"feature-classifier", "classify-consensus-vsearch",
		"--i-query", req.Query,
		"--i-reference-reads", req.ReferenceFasta,
		"--i-reference-taxonomy", req.ReferenceTaxonomy,
		"--p-perc-identity", strconv.FormatFloat(identity, 'f', -1, 64),
		"--o-classification", req.Output,
	)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	return registerArtifact(ctx, p.artifacts, "", domain.ArtifactClassification, req.Output)
}

// FilterTable removes features whose taxonomy matches excluded taxa.
func (p *Pipeline) FilterTable(ctx context.Context, req driving.FilterRequest) (*domain.Artifact, error) {
	if req.Table == "" || req.Taxonomy == "" || req.Output == "" {
		return nil, fmt.Errorf("%w: table, taxonomy and output are required", domain.ErrInvalidInput)
	}

	logger.Section("Filter table")
	args := []string{
		"taxa", "filter-table",
		"--i-table", req.Table,
		"--i-taxonomy", req.Taxonomy,
	}
	if len(req.Exclude) > 0 {
		args = append(args, "--p-exclude", strings.Join(req.Exclude, ","))
	}
	args = append(args, "--o-filtered-table", req.Output)

	if err := p.runner.Run(ctx, p.tool, args...); err != nil {
		return nil, fmt.Errorf("filter table: %w", err)
	}
	return registerArtifact(ctx, p.artifacts, "", domain.ArtifactTable, req.Output)
}

// Rarefy subsamples the table to a uniform per-sample depth.
func (p *Pipeline) Rarefy(ctx context.Context, req driving.RarefyRequest) (*domain.Artifact, error) {
	if req.Table == "" || req.Output == "" || req.Depth <= 0 {
		return nil, fmt.Errorf("%w: table, positive depth and output are required", domain.ErrInvalidInput)
	}

	logger.Section("Rarefy")
	err := p.runner.Run(ctx, p.tool,
		"feature-table", "rarefy",
		"--i-table", req.Table,
		"--p-sampling-depth", strconv.Itoa(req.Depth),
		"--o-rarefied-table", req.Output,
	)
	if err != nil {
		return nil, fmt.Errorf("rarefy: %w", err)
	}
	return registerArtifact(ctx, p.artifacts, "", domain.ArtifactTable, req.Output)
}
