package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driven"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driving"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService manages configured reference sources.
type SourceService struct {
	store driven.SourceStore
}

// NewSourceService creates a new source service.
func NewSourceService(store driven.SourceStore) *SourceService {
	return &SourceService{store: store}
}

// Add validates and stores a new source. Adding an existing ID fails;
// replacing a source is an explicit remove-then-add.
func (s *SourceService) Add(ctx context.Context, source domain.ReferenceSource) error {
	if err := source.Validate(); err != nil {
		return fmt.Errorf("validating source: %w", err)
	}

	existing, err := s.store.Get(ctx, source.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("checking source: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("source %s: %w", source.ID, domain.ErrAlreadyExists)
	}

	now := time.Now().UTC()
	source.CreatedAt = now
	source.UpdatedAt = now
	if err := s.store.Save(ctx, source); err != nil {
		return fmt.Errorf("saving source: %w", err)
	}
	return nil
}

// Remove deletes a source by ID.
func (s *SourceService) Remove(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return fmt.Errorf("get source: %w", err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	return nil
}

// List returns all configured sources.
func (s *SourceService) List(ctx context.Context) ([]domain.ReferenceSource, error) {
	sources, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}
	return sources, nil
}
