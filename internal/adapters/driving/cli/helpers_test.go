package cli

import (
	"context"
	"errors"

	"github.com/bioref-labs/taxref-cli/internal/adapters/driven/storage/memory"
	"github.com/bioref-labs/taxref-cli/internal/core/domain"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driving"
	"github.com/bioref-labs/taxref-cli/internal/core/services"
)

// setupTestServices swaps the package globals for in-memory backed
// services and returns a cleanup restoring the originals.
func setupTestServices() func() {
	oldSource := sourceService
	oldFetch := fetchService
	oldBuild := buildService
	oldPipeline := pipelineService
	oldArtifacts := artifactStore
	oldRuns := runStore

	sources := memory.NewSourceStore()
	_ = sources.Save(context.Background(), domain.ReferenceSource{
		ID:       "source-123",
		URL:      "https://example.org/ref.fasta",
		Format:   domain.FormatFasta,
		Category: domain.CategoryChloroplast,
	})

	artifacts := memory.NewArtifactStore()
	artifactStore = artifacts
	runStore = memory.NewRunStore()
	sourceService = services.NewSourceService(sources)
	buildService = services.NewSupplementer(artifacts)
	fetchService = &stubFetchService{}
	pipelineService = &stubPipelineService{}

	return func() {
		sourceService = oldSource
		fetchService = oldFetch
		buildService = oldBuild
		pipelineService = oldPipeline
		artifactStore = oldArtifacts
		runStore = oldRuns
	}
}

type stubFetchService struct {
	err error
}

func (s *stubFetchService) Fetch(_ context.Context, sourceID string) (*driving.FetchResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &driving.FetchResult{
		Source:   domain.ReferenceSource{ID: sourceID},
		Download: domain.Artifact{ID: "dl-1", SourceID: sourceID, Kind: domain.ArtifactDownload, Path: "/w/" + sourceID + ".fasta", SizeBytes: 42},
	}, nil
}

func (s *stubFetchService) FetchAll(ctx context.Context) ([]driving.FetchResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	res, _ := s.Fetch(ctx, "source-123")
	return []driving.FetchResult{*res}, nil
}

type stubPipelineService struct {
	err error
}

func (s *stubPipelineService) Classify(_ context.Context, req driving.ClassifyRequest) (*domain.Artifact, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Artifact{Kind: domain.ArtifactClassification, Path: req.Output}, nil
}

func (s *stubPipelineService) FilterTable(_ context.Context, req driving.FilterRequest) (*domain.Artifact, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Artifact{Kind: domain.ArtifactTable, Path: req.Output}, nil
}

func (s *stubPipelineService) Rarefy(_ context.Context, req driving.RarefyRequest) (*domain.Artifact, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Artifact{Kind: domain.ArtifactTable, Path: req.Output}, nil
}

var errStub = errors.New("stub failure")
