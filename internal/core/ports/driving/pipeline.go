package driving

import (
	"context"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
)

// ClassifyRequest names the inputs of one external classification run.
type ClassifyRequest struct {
	// Query is the sample representative-sequences FASTA.
	Query string

	// ReferenceFasta and ReferenceTaxonomy form the reference database
	// (base or extended).
	ReferenceFasta    string
	ReferenceTaxonomy string

	// Identity is the minimum fractional identity for a hit (0..1).
	Identity float64

	// Output receives the classification result.
	Output string
}

// FilterRequest names the inputs of one feature-table filter run.
type FilterRequest struct {
	// Table is the input feature table.
	Table string

	// Taxonomy is the classification used for taxon-based exclusion.
	Taxonomy string

	// Exclude lists taxon substrings to remove (e.g. mitochondria,
	// chloroplast).
	Exclude []string

	// Output receives the filtered table.
	Output string
}

// RarefyRequest names the inputs of one rarefaction run.
type RarefyRequest struct {
	// Table is the input feature table.
	Table string

	// Depth is the uniform per-sample sequence count.
	Depth int

	// Output receives the rarefied table.
	Output string
}

// PipelineService drives the downstream external-tool steps. Every
// method is a thin contract around one external invocation: run, check
// exit status, register the output artefact.
type PipelineService interface {
	// Classify runs consensus classification against a reference.
	Classify(ctx context.Context, req ClassifyRequest) (*domain.Artifact, error)

	// FilterTable removes features matching excluded taxa.
	FilterTable(ctx context.Context, req FilterRequest) (*domain.Artifact, error)

	// Rarefy subsamples the table to a uniform depth.
	Rarefy(ctx context.Context, req RarefyRequest) (*domain.Artifact, error)
}
