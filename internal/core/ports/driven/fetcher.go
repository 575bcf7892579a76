package driven

import (
	"context"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
)

// FetchProgress reports bytes transferred for one download.
type FetchProgress struct {
	// SourceID identifies the download.
	SourceID string

	// BytesRead is the running byte count.
	BytesRead int64

	// TotalBytes is the Content-Length, or -1 when unknown.
	TotalBytes int64
}

// Fetcher downloads a reference source bundle to a local file.
// Downloads are single-shot: a failure surfaces immediately with no
// retry, matching the pipeline's run-to-completion error model.
type Fetcher interface {
	// Fetch downloads source.URL into destDir and returns the local path.
	// progress may be nil; when set it is called from the download
	// goroutine as bytes arrive.
	Fetch(ctx context.Context, source domain.ReferenceSource, destDir string, progress func(FetchProgress)) (string, error)
}

// Extractor unpacks a downloaded bundle.
type Extractor interface {
	// Extract unpacks the bundle at path into destDir according to the
	// source format and returns the extracted file paths.
	// Plain FASTA bundles pass through unchanged.
	Extract(path string, format domain.SourceFormat, destDir string) ([]string, error)
}
