// Package memory provides in-memory implementations of the storage
// ports. They back unit tests and ephemeral runs where no on-disk
// provenance is wanted.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driven"
)

// Ensure SourceStore implements the interface.
var _ driven.SourceStore = (*SourceStore)(nil)

// SourceStore is an in-memory driven.SourceStore.
type SourceStore struct {
	mu      sync.RWMutex
	sources map[string]domain.ReferenceSource
}

// NewSourceStore creates an empty in-memory source store.
func NewSourceStore() *SourceStore {
	return &SourceStore{sources: make(map[string]domain.ReferenceSource)}
}

// Save stores or updates a source.
func (s *SourceStore) Save(_ context.Context, source domain.ReferenceSource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[source.ID] = source
	return nil
}

// Get retrieves a source by ID.
func (s *SourceStore) Get(_ context.Context, id string) (*domain.ReferenceSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	source, ok := s.sources[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &source, nil
}

// Delete removes a source.
func (s *SourceStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sources, id)
	return nil
}

// List returns all configured sources ordered by ID.
func (s *SourceStore) List(_ context.Context) ([]domain.ReferenceSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ReferenceSource, 0, len(s.sources))
	for _, source := range s.sources {
		out = append(out, source)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
