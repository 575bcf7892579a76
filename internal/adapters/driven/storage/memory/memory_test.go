package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
)

func TestSourceStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store := NewSourceStore()

	source := domain.ReferenceSource{
		ID:       "phytoref",
		Name:     "PhytoRef plastid 16S",
		URL:      "https://example.org/phytoref.fasta",
		Format:   domain.FormatFasta,
		Category: domain.CategoryChloroplast,
	}
	require.NoError(t, store.Save(ctx, source))

	got, err := store.Get(ctx, "phytoref")
	require.NoError(t, err)
	assert.Equal(t, source, *got)

	_, err = store.Get(ctx, "absent")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Save(ctx, domain.ReferenceSource{ID: "metaxa2"}))
	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "metaxa2", list[0].ID, "listed in ID order")

	require.NoError(t, store.Delete(ctx, "phytoref"))
	_, err = store.Get(ctx, "phytoref")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArtifactStore_ListFilters(t *testing.T) {
	ctx := context.Background()
	store := NewArtifactStore()

	first := domain.Artifact{ID: "a1", SourceID: "silva", Kind: domain.ArtifactDownload}
	second := domain.Artifact{ID: "a2", SourceID: "silva", Kind: domain.ArtifactExtracted}
	third := domain.Artifact{ID: "a3", SourceID: "phytoref", Kind: domain.ArtifactDownload}
	for _, a := range []domain.Artifact{first, second, third} {
		require.NoError(t, store.Save(ctx, a))
	}

	got, err := store.Get(ctx, "a2")
	require.NoError(t, err)
	assert.Equal(t, second, *got)

	bySource, err := store.ListBySource(ctx, "silva")
	require.NoError(t, err)
	require.Len(t, bySource, 2)
	assert.Equal(t, "a2", bySource[0].ID, "newest first")

	byKind, err := store.ListByKind(ctx, domain.ArtifactDownload)
	require.NoError(t, err)
	require.Len(t, byKind, 2)
	assert.Equal(t, "a3", byKind[0].ID)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRunStore_NewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewRunStore()

	require.NoError(t, store.Save(ctx, domain.Run{ID: "r1", Command: "fetch"}))
	require.NoError(t, store.Save(ctx, domain.Run{ID: "r2", Command: "build"}))

	runs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r2", runs[0].ID)
	assert.Equal(t, "r1", runs[1].ID)
}
