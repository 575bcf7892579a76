package memory

import (
	"context"
	"sync"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is an in-memory driven.ArtifactStore. Artefacts are
// kept in insertion order and listed newest first.
type ArtifactStore struct {
	mu        sync.RWMutex
	artifacts []domain.Artifact
}

// NewArtifactStore creates an empty in-memory artifact store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{}
}

// Save registers an artefact.
func (s *ArtifactStore) Save(_ context.Context, artifact domain.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts = append(s.artifacts, artifact)
	return nil
}

// Get retrieves an artefact by ID.
func (s *ArtifactStore) Get(_ context.Context, id string) (*domain.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.artifacts {
		if s.artifacts[i].ID == id {
			art := s.artifacts[i]
			return &art, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListBySource returns artefacts derived from a source, newest first.
func (s *ArtifactStore) ListBySource(_ context.Context, sourceID string) ([]domain.Artifact, error) {
	return s.filter(func(a domain.Artifact) bool { return a.SourceID == sourceID }), nil
}

// ListByKind returns artefacts of one kind, newest first.
func (s *ArtifactStore) ListByKind(_ context.Context, kind domain.ArtifactKind) ([]domain.Artifact, error) {
	return s.filter(func(a domain.Artifact) bool { return a.Kind == kind }), nil
}

// List returns all registered artefacts, newest first.
func (s *ArtifactStore) List(_ context.Context) ([]domain.Artifact, error) {
	return s.filter(func(domain.Artifact) bool { return true }), nil
}

func (s *ArtifactStore) filter(keep func(domain.Artifact) bool) []domain.Artifact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Artifact
	for i := len(s.artifacts) - 1; i >= 0; i-- {
		if keep(s.artifacts[i]) {
			out = append(out, s.artifacts[i])
		}
	}
	return out
}
