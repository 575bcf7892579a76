package domain

import "time"

// SourceFormat identifies how a downloaded reference is packaged.
type SourceFormat string

const (
	// FormatFasta is a plain FASTA file.
	FormatFasta SourceFormat = "fasta"

	// FormatFastaGz is a gzip-compressed FASTA file.
	FormatFastaGz SourceFormat = "fasta-gz"

	// FormatTarGz is a gzip-compressed tar archive containing FASTA and
	// taxonomy files.
	FormatTarGz SourceFormat = "tar-gz"
)

// SourceCategory identifies what role a reference source plays in the
// extended database build.
type SourceCategory string

const (
	// CategoryBase is a base taxonomy reference (Silva, Greengenes).
	CategoryBase SourceCategory = "base-reference"

	// CategoryMitochondria is a mitochondrial SSU reference (Metaxa2).
	CategoryMitochondria SourceCategory = "mitochondria"

	// CategoryChloroplast is a plastid reference (PhytoRef).
	CategoryChloroplast SourceCategory = "chloroplast"
)

// ValidFormat reports whether f is a known source format.
func ValidFormat(f SourceFormat) bool {
	switch f {
	case FormatFasta, FormatFastaGz, FormatTarGz:
		return true
	}
	return false
}

// ValidCategory reports whether c is a known source category.
func ValidCategory(c SourceCategory) bool {
	switch c {
	case CategoryBase, CategoryMitochondria, CategoryChloroplast:
		return true
	}
	return false
}

// ReferenceSource is a configured public reference database.
type ReferenceSource struct {
	// ID is a short user-chosen identifier (e.g. "silva-132", "phytoref").
	ID string

	// Name is a human-readable name for display.
	Name string

	// URL is the HTTPS location of the reference bundle.
	URL string

	// Format describes the packaging of the download.
	Format SourceFormat

	// Category describes the source's role in the extended build.
	Category SourceCategory

	// CreatedAt is when the source was first configured.
	CreatedAt time.Time

	// UpdatedAt is when the source was last modified.
	UpdatedAt time.Time
}

// Validate checks the source is well-formed enough to fetch.
func (s ReferenceSource) Validate() error {
	if s.ID == "" || s.URL == "" {
		return ErrInvalidInput
	}
	if !ValidFormat(s.Format) {
		return ErrUnsupportedFormat
	}
	if !ValidCategory(s.Category) {
		return ErrInvalidInput
	}
	return nil
}
