package driving

import (
	"context"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
)

// BuildRequest names the inputs and outputs of one supplementer run.
type BuildRequest struct {
	// MitochondriaFasta is the Metaxa2 SSU mitochondria extraction.
	MitochondriaFasta string

	// ChloroplastFasta is the PhytoRef plastid reference.
	ChloroplastFasta string

	// OutputDir receives the combined FASTA and the per-convention
	// taxonomy mappings. Existing outputs are truncated.
	OutputDir string

	// Prefixes overrides the configured prefix pair per convention.
	// Conventions absent from the map use their defaults.
	Prefixes map[domain.Convention]domain.PrefixPair

	// BaseFasta and BaseTaxonomies optionally name a base reference to
	// concatenate the organelle outputs onto, producing the extended
	// database files. BaseTaxonomies maps convention to the base
	// taxonomy TSV for that convention.
	BaseFasta      string
	BaseTaxonomies map[domain.Convention]string
}

// BuildResult summarises one supplementer run.
type BuildResult struct {
	// OrganelleFasta is the combined organelle FASTA artefact.
	OrganelleFasta domain.Artifact

	// TaxonomyMappings holds one taxonomy TSV artefact per convention.
	TaxonomyMappings map[domain.Convention]domain.Artifact

	// ExtendedFasta and ExtendedTaxonomies are present only when a base
	// reference was supplied.
	ExtendedFasta      *domain.Artifact
	ExtendedTaxonomies map[domain.Convention]domain.Artifact

	// MitochondriaKept and MitochondriaSeen count retained versus total
	// input records; likewise for chloroplast.
	MitochondriaKept int
	MitochondriaSeen int
	ChloroplastKept  int
	ChloroplastSeen  int
}

// BuildService runs the organelle taxonomy supplementer.
type BuildService interface {
	// Build runs the supplementer and registers the output artefacts.
	Build(ctx context.Context, req BuildRequest) (*BuildResult, error)
}
