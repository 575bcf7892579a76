package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioref-labs/taxref-cli/internal/adapters/driven/storage/memory"
	"github.com/bioref-labs/taxref-cli/internal/core/domain"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driving"
)

const mitoFixture = `>acc1;Eukaryota;Opisthokonta;Metazoa;Mitochondria;Homo sapiens
ACGTACGT
>acc2;Eukaryota;Viridiplantae;nucleus;Arabidopsis thaliana
TTTTGGGG
>acc3;Eukaryota;Fungi;mitochondria;Saccharomyces cerevisiae
CCCCAAAA
`

const chloroFixture = `>AB001|Chloroplast|Arabidopsis thaliana
ACGTACGTACGT
>AB002|Chloroplast|Unknown placeholder
ACGTXXXXXXXXXXACGT
>AB003|Chloroplast|Chlamydomonas reinhardtii
GGGGCCCC
`

// testPrefixes keeps expectations readable.
var testPrefixes = map[domain.Convention]domain.PrefixPair{
	domain.ConventionGreengenes: {
		Mitochondria: "k__Bacteria; s__",
		Chloroplast:  "k__Cyano; s__",
	},
	domain.ConventionSilva: {
		Mitochondria: "D_0__Bacteria;D_6__",
		Chloroplast:  "D_0__Cyano;D_6__",
	},
}

func writeFixtures(t *testing.T) (mito, chloro, outDir string) {
	t.Helper()
	dir := t.TempDir()
	mito = filepath.Join(dir, "mitochondria.fasta")
	chloro = filepath.Join(dir, "chloroplast.fasta")
	outDir = filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(mito, []byte(mitoFixture), 0o600))
	require.NoError(t, os.WriteFile(chloro, []byte(chloroFixture), 0o600))
	return mito, chloro, outDir
}

func runBuild(t *testing.T, req driving.BuildRequest) (*driving.BuildResult, *memory.ArtifactStore) {
	t.Helper()
	store := memory.NewArtifactStore()
	svc := NewSupplementer(store)
	result, err := svc.Build(context.Background(), req)
	require.NoError(t, err)
	return result, store
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestBuild_CombinedFasta(t *testing.T) {
	mito, chloro, outDir := writeFixtures(t)
	result, _ := runBuild(t, driving.BuildRequest{
		MitochondriaFasta: mito,
		ChloroplastFasta:  chloro,
		OutputDir:         outDir,
		Prefixes:          testPrefixes,
	})

	// acc2 lacks the mitochondria literal, AB002 carries the masked run.
	assert.Equal(t, 2, result.MitochondriaKept)
	assert.Equal(t, 3, result.MitochondriaSeen)
	assert.Equal(t, 2, result.ChloroplastKept)
	assert.Equal(t, 3, result.ChloroplastSeen)

	want := ">metaxa2_mitochondria_0\nACGTACGT\n" +
		">metaxa2_mitochondria_1\nCCCCAAAA\n" +
		">phytoref_chloroplast_0\nACGTACGTACGT\n" +
		">phytoref_chloroplast_1\nGGGGCCCC\n"
	assert.Equal(t, want, readFile(t, result.OrganelleFasta.Path))
}

func TestBuild_TaxonomyMappings(t *testing.T) {
	mito, chloro, outDir := writeFixtures(t)
	result, _ := runBuild(t, driving.BuildRequest{
		MitochondriaFasta: mito,
		ChloroplastFasta:  chloro,
		OutputDir:         outDir,
		Prefixes:          testPrefixes,
	})

	gg := readFile(t, result.TaxonomyMappings[domain.ConventionGreengenes].Path)
	assert.Equal(t,
		"Feature ID\tTaxon\n"+
			"metaxa2_mitochondria_0\tk__Bacteria; s__Homo sapiens\n"+
			"metaxa2_mitochondria_1\tk__Bacteria; s__Saccharomyces cerevisiae\n"+
			"phytoref_chloroplast_0\tk__Cyano; s__Arabidopsis thaliana\n"+
			"phytoref_chloroplast_1\tk__Cyano; s__Chlamydomonas reinhardtii\n",
		gg)

	silva := readFile(t, result.TaxonomyMappings[domain.ConventionSilva].Path)
	assert.Contains(t, silva, "metaxa2_mitochondria_0\tD_0__Bacteria;D_6__Homo sapiens\n")
	assert.Contains(t, silva, "phytoref_chloroplast_1\tD_0__Cyano;D_6__Chlamydomonas reinhardtii\n")
}

// Row count per mapping equals the FASTA entry count for that category.
func TestBuild_MappingRowsMatchFasta(t *testing.T) {
	mito, chloro, outDir := writeFixtures(t)
	result, _ := runBuild(t, driving.BuildRequest{
		MitochondriaFasta: mito,
		ChloroplastFasta:  chloro,
		OutputDir:         outDir,
		Prefixes:          testPrefixes,
	})

	fasta := readFile(t, result.OrganelleFasta.Path)
	mitoHeaders := strings.Count(fasta, ">metaxa2_mitochondria_")
	chloroHeaders := strings.Count(fasta, ">phytoref_chloroplast_")

	for conv, art := range result.TaxonomyMappings {
		mapping := readFile(t, art.Path)
		assert.Equal(t, mitoHeaders, strings.Count(mapping, "metaxa2_mitochondria_"), "convention %s", conv)
		assert.Equal(t, chloroHeaders, strings.Count(mapping, "phytoref_chloroplast_"), "convention %s", conv)
	}
}

func TestBuild_FilteredRecordsAbsentEverywhere(t *testing.T) {
	mito, chloro, outDir := writeFixtures(t)
	result, _ := runBuild(t, driving.BuildRequest{
		MitochondriaFasta: mito,
		ChloroplastFasta:  chloro,
		OutputDir:         outDir,
		Prefixes:          testPrefixes,
	})

	fasta := readFile(t, result.OrganelleFasta.Path)
	assert.NotContains(t, fasta, "TTTTGGGG", "non-mitochondria record dropped")
	assert.NotContains(t, fasta, "XXXXXXXXXX", "degenerate chloroplast dropped")

	gg := readFile(t, result.TaxonomyMappings[domain.ConventionGreengenes].Path)
	assert.NotContains(t, gg, "k__Bacteria; s__Arabidopsis thaliana", "no mitochondria row for dropped record")
	for _, art := range result.TaxonomyMappings {
		assert.NotContains(t, readFile(t, art.Path), "Unknown placeholder")
	}
}

func TestBuild_EmptyInputsYieldEmptyOutputs(t *testing.T) {
	dir := t.TempDir()
	mito := filepath.Join(dir, "m.fasta")
	chloro := filepath.Join(dir, "c.fasta")
	require.NoError(t, os.WriteFile(mito, nil, 0o600))
	require.NoError(t, os.WriteFile(chloro, nil, 0o600))

	result, _ := runBuild(t, driving.BuildRequest{
		MitochondriaFasta: mito,
		ChloroplastFasta:  chloro,
		OutputDir:         filepath.Join(dir, "out"),
		Prefixes:          testPrefixes,
	})

	assert.Zero(t, result.MitochondriaSeen)
	assert.Zero(t, result.ChloroplastSeen)
	assert.Empty(t, readFile(t, result.OrganelleFasta.Path))
	for _, art := range result.TaxonomyMappings {
		assert.Equal(t, "Feature ID\tTaxon\n", readFile(t, art.Path), "header only")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	mito, chloro, outDir := writeFixtures(t)
	req := driving.BuildRequest{
		MitochondriaFasta: mito,
		ChloroplastFasta:  chloro,
		OutputDir:         outDir,
		Prefixes:          testPrefixes,
	}

	first, _ := runBuild(t, req)
	firstFasta := readFile(t, first.OrganelleFasta.Path)
	firstGG := readFile(t, first.TaxonomyMappings[domain.ConventionGreengenes].Path)

	second, _ := runBuild(t, req)
	assert.Equal(t, firstFasta, readFile(t, second.OrganelleFasta.Path))
	assert.Equal(t, firstGG, readFile(t, second.TaxonomyMappings[domain.ConventionGreengenes].Path))
	assert.Equal(t, first.OrganelleFasta.SHA256, second.OrganelleFasta.SHA256)
}

func TestBuild_DefaultPrefixesApplied(t *testing.T) {
	mito, chloro, outDir := writeFixtures(t)
	result, _ := runBuild(t, driving.BuildRequest{
		MitochondriaFasta: mito,
		ChloroplastFasta:  chloro,
		OutputDir:         outDir,
	})

	pair, err := domain.DefaultPrefixes(domain.ConventionGreengenes)
	require.NoError(t, err)
	gg := readFile(t, result.TaxonomyMappings[domain.ConventionGreengenes].Path)
	assert.Contains(t, gg, "metaxa2_mitochondria_0\t"+pair.Mitochondria+"Homo sapiens\n")
}

func TestBuild_ExtendedDatabase(t *testing.T) {
	mito, chloro, outDir := writeFixtures(t)
	dir := t.TempDir()
	baseFasta := filepath.Join(dir, "base.fasta")
	baseTax := filepath.Join(dir, "base_taxonomy.tsv")
	require.NoError(t, os.WriteFile(baseFasta, []byte(">ref1\nAAAA\n"), 0o600))
	require.NoError(t, os.WriteFile(baseTax, []byte("ref1\tk__Bacteria; s__Escherichia coli\n"), 0o600))

	result, _ := runBuild(t, driving.BuildRequest{
		MitochondriaFasta: mito,
		ChloroplastFasta:  chloro,
		OutputDir:         outDir,
		Prefixes:          testPrefixes,
		BaseFasta:         baseFasta,
		BaseTaxonomies: map[domain.Convention]string{
			domain.ConventionGreengenes: baseTax,
		},
	})

	require.NotNil(t, result.ExtendedFasta)
	ext := readFile(t, result.ExtendedFasta.Path)
	assert.True(t, strings.HasPrefix(ext, ">ref1\nAAAA\n"), "base reference comes first")
	assert.Contains(t, ext, ">metaxa2_mitochondria_0\n")
	assert.Contains(t, ext, ">phytoref_chloroplast_1\n")

	extTax := readFile(t, result.ExtendedTaxonomies[domain.ConventionGreengenes].Path)
	assert.True(t, strings.HasPrefix(extTax, "ref1\t"), "base taxonomy comes first")
	assert.NotContains(t, extTax, "Feature ID", "mapping header not embedded mid-file")
	assert.Contains(t, extTax, "metaxa2_mitochondria_0\tk__Bacteria; s__Homo sapiens\n")
}

func TestBuild_MissingInputSurfaces(t *testing.T) {
	dir := t.TempDir()
	chloro := filepath.Join(dir, "c.fasta")
	require.NoError(t, os.WriteFile(chloro, []byte(chloroFixture), 0o600))

	svc := NewSupplementer(memory.NewArtifactStore())
	_, err := svc.Build(context.Background(), driving.BuildRequest{
		MitochondriaFasta: filepath.Join(dir, "missing.fasta"),
		ChloroplastFasta:  chloro,
		OutputDir:         filepath.Join(dir, "out"),
		Prefixes:          testPrefixes,
	})
	assert.Error(t, err)
}

func TestBuild_ArtifactsRegistered(t *testing.T) {
	mito, chloro, outDir := writeFixtures(t)
	_, store := runBuild(t, driving.BuildRequest{
		MitochondriaFasta: mito,
		ChloroplastFasta:  chloro,
		OutputDir:         outDir,
		Prefixes:          testPrefixes,
	})

	fastas, err := store.ListByKind(context.Background(), domain.ArtifactOrganelleFasta)
	require.NoError(t, err)
	require.Len(t, fastas, 1)
	assert.NotEmpty(t, fastas[0].SHA256)
	assert.Positive(t, fastas[0].SizeBytes)

	tsvs, err := store.ListByKind(context.Background(), domain.ArtifactTaxonomyTSV)
	require.NoError(t, err)
	assert.Len(t, tsvs, len(domain.Conventions()))
}
