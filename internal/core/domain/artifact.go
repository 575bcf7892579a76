package domain

import "time"

// ArtifactKind identifies what a registered file is.
type ArtifactKind string

const (
	// ArtifactDownload is a raw downloaded bundle.
	ArtifactDownload ArtifactKind = "download"

	// ArtifactExtracted is a file extracted from a downloaded archive.
	ArtifactExtracted ArtifactKind = "extracted"

	// ArtifactOrganelleFasta is the combined organelle FASTA produced by
	// the supplementer.
	ArtifactOrganelleFasta ArtifactKind = "organelle-fasta"

	// ArtifactTaxonomyTSV is a taxonomy-mapping TSV produced by the
	// supplementer (one per naming convention).
	ArtifactTaxonomyTSV ArtifactKind = "taxonomy-tsv"

	// ArtifactExtendedFasta is a base reference concatenated with the
	// organelle FASTA.
	ArtifactExtendedFasta ArtifactKind = "extended-fasta"

	// ArtifactExtendedTSV is a base taxonomy concatenated with an
	// organelle taxonomy mapping.
	ArtifactExtendedTSV ArtifactKind = "extended-tsv"

	// ArtifactClassification is an external classifier output.
	ArtifactClassification ArtifactKind = "classification"

	// ArtifactTable is a filtered or rarefied feature table.
	ArtifactTable ArtifactKind = "table"
)

// Artifact is a file produced or downloaded by the pipeline, registered
// in the provenance store.
type Artifact struct {
	// ID is a generated unique identifier.
	ID string

	// SourceID links to the ReferenceSource the artifact derives from.
	// Empty for artifacts not tied to a single source (e.g. the combined
	// organelle FASTA).
	SourceID string

	// Kind describes what the file is.
	Kind ArtifactKind

	// Path is the absolute location on disk.
	Path string

	// SHA256 is the hex digest of the file contents at registration time.
	SHA256 string

	// SizeBytes is the file size at registration time.
	SizeBytes int64

	// CreatedAt is when the artifact was registered.
	CreatedAt time.Time
}

// RunStatus is the terminal state of a recorded invocation.
type RunStatus string

const (
	// RunOK indicates the command completed successfully.
	RunOK RunStatus = "ok"

	// RunFailed indicates the command aborted with an error.
	RunFailed RunStatus = "failed"
)

// Run records one pipeline invocation for provenance.
type Run struct {
	// ID is a generated unique identifier.
	ID string

	// Command is the subcommand that ran (fetch, build, classify, ...).
	Command string

	// StartedAt and FinishedAt bound the invocation.
	StartedAt  time.Time
	FinishedAt time.Time

	// Status is the terminal state.
	Status RunStatus

	// Detail carries a short human-readable outcome summary.
	Detail string
}
