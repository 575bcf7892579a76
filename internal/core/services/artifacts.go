package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driven"
)

// registerArtifact checksums a produced file and records it in the
// provenance store. Registration failure is surfaced: an artefact the
// store does not know about is invisible to later pipeline steps.
func registerArtifact(ctx context.Context, store driven.ArtifactStore, sourceID string, kind domain.ArtifactKind, path string) (*domain.Artifact, error) {
	sum, size, err := hashFile(path)
	if err != nil {
		return nil, fmt.Errorf("hashing %s: %w", path, err)
	}

	art := domain.Artifact{
		ID:        uuid.New().String(),
		SourceID:  sourceID,
		Kind:      kind,
		Path:      path,
		SHA256:    sum,
		SizeBytes: size,
		CreatedAt: time.Now().UTC(),
	}
	if store != nil {
		if err := store.Save(ctx, art); err != nil {
			return nil, fmt.Errorf("registering artifact %s: %w", path, err)
		}
	}
	return &art, nil
}

// hashFile returns the hex SHA-256 digest and size of the file at path.
func hashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), size, nil
}
