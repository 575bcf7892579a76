package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driven"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driving"
	"github.com/bioref-labs/taxref-cli/internal/logger"
)

// Ensure FetchOrchestrator implements the interface.
var _ driving.FetchService = (*FetchOrchestrator)(nil)

// FetchOrchestrator downloads configured reference sources, extracts
// archives and registers every resulting file in the provenance store.
type FetchOrchestrator struct {
	sources   driven.SourceStore
	artifacts driven.ArtifactStore
	fetcher   driven.Fetcher
	extractor driven.Extractor
	workspace string

	// Progress, when set, receives download progress callbacks.
	Progress func(driven.FetchProgress)
}

// NewFetchOrchestrator creates a new fetch orchestrator. workspace is
// the directory downloads and extractions land in.
func NewFetchOrchestrator(
	sources driven.SourceStore,
	artifacts driven.ArtifactStore,
	fetcher driven.Fetcher,
	extractor driven.Extractor,
	workspace string,
) *FetchOrchestrator {
	return &FetchOrchestrator{
		sources:   sources,
		artifacts: artifacts,
		fetcher:   fetcher,
		extractor: extractor,
		workspace: workspace,
	}
}

// Fetch downloads one source by ID.
func (o *FetchOrchestrator) Fetch(ctx context.Context, sourceID string) (*driving.FetchResult, error) {
	source, err := o.sources.Get(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("get source: %w", err)
	}

	logger.Section("Fetch " + source.ID)

	downloadDir := filepath.Join(o.workspace, "downloads", source.ID)
	if err := os.MkdirAll(downloadDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating download dir: %w", err)
	}

	path, err := o.fetcher.Fetch(ctx, *source, downloadDir, o.Progress)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source.ID, err)
	}
	logger.Info("downloaded %s", path)

	download, err := registerArtifact(ctx, o.artifacts, source.ID, domain.ArtifactDownload, path)
	if err != nil {
		return nil, err
	}

	result := &driving.FetchResult{Source: *source, Download: *download}

	if source.Format == domain.FormatFasta {
		return result, nil
	}

	extractDir := filepath.Join(o.workspace, "extracted", source.ID)
	if err := os.MkdirAll(extractDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating extract dir: %w", err)
	}

	files, err := o.extractor.Extract(path, source.Format, extractDir)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", source.ID, err)
	}
	for _, f := range files {
		art, err := registerArtifact(ctx, o.artifacts, source.ID, domain.ArtifactExtracted, f)
		if err != nil {
			return nil, err
		}
		result.Extracted = append(result.Extracted, *art)
	}
	logger.Info("extracted %d files", len(files))

	return result, nil
}

// FetchAll downloads every configured source, continuing past
// per-source failures.
func (o *FetchOrchestrator) FetchAll(ctx context.Context) ([]driving.FetchResult, error) {
	sources, err := o.sources.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	var (
		results []driving.FetchResult
		errs    []error
	)
	for _, source := range sources {
		res, err := o.Fetch(ctx, source.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("fetch %s: %w", source.ID, err))
			continue
		}
		results = append(results, *res)
	}
	return results, errors.Join(errs...)
}
