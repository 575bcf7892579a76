package driven

import (
	"context"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
)

// SourceStore persists configured reference sources.
type SourceStore interface {
	// Save stores or updates a source.
	Save(ctx context.Context, source domain.ReferenceSource) error

	// Get retrieves a source by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.ReferenceSource, error)

	// Delete removes a source.
	Delete(ctx context.Context, id string) error

	// List returns all configured sources.
	List(ctx context.Context) ([]domain.ReferenceSource, error)
}

// ArtifactStore persists registered pipeline artefacts.
type ArtifactStore interface {
	// Save registers an artefact.
	Save(ctx context.Context, artifact domain.Artifact) error

	// Get retrieves an artefact by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Artifact, error)

	// ListBySource returns artefacts derived from a source, newest first.
	ListBySource(ctx context.Context, sourceID string) ([]domain.Artifact, error)

	// ListByKind returns artefacts of one kind, newest first.
	ListByKind(ctx context.Context, kind domain.ArtifactKind) ([]domain.Artifact, error)

	// List returns all registered artefacts, newest first.
	List(ctx context.Context) ([]domain.Artifact, error)
}

// RunStore persists invocation provenance.
type RunStore interface {
	// Save records a completed run.
	Save(ctx context.Context, run domain.Run) error

	// List returns recorded runs, newest first.
	List(ctx context.Context) ([]domain.Run, error)
}

// ConfigStore persists user configuration as key-value pairs.
type ConfigStore interface {
	// Get retrieves a raw configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	GetBool(key string) bool

	// Set stores a configuration value and persists immediately.
	Set(key string, value any) error

	// Keys returns all configured keys.
	Keys() []string
}
