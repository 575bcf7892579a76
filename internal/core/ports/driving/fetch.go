package driving

import (
	"context"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
)

// FetchResult summarises one fetched source.
type FetchResult struct {
	// Source is the fetched reference source.
	Source domain.ReferenceSource

	// Download is the registered download artefact.
	Download domain.Artifact

	// Extracted lists artefacts unpacked from the download, if any.
	Extracted []domain.Artifact
}

// FetchService downloads and registers reference sources.
type FetchService interface {
	// Fetch downloads one source by ID.
	Fetch(ctx context.Context, sourceID string) (*FetchResult, error)

	// FetchAll downloads every configured source, continuing past
	// per-source failures and returning them joined.
	FetchAll(ctx context.Context) ([]FetchResult, error)
}

// SourceService manages configured reference sources.
type SourceService interface {
	// Add validates and stores a new source.
	Add(ctx context.Context, source domain.ReferenceSource) error

	// Remove deletes a source by ID.
	Remove(ctx context.Context, id string) error

	// List returns all configured sources.
	List(ctx context.Context) ([]domain.ReferenceSource, error)
}
