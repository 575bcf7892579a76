package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driven"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driving"
	"github.com/bioref-labs/taxref-cli/internal/fastx"
	"github.com/bioref-labs/taxref-cli/internal/logger"
	"github.com/bioref-labs/taxref-cli/internal/taxmap"
)

// Ensure Supplementer implements the interface.
var _ driving.BuildService = (*Supplementer)(nil)

// Organelle category tags used in synthetic feature IDs. The tag names
// the origin database so extended-database hits are traceable.
const (
	mitochondriaTag = "metaxa2_mitochondria"
	chloroplastTag  = "phytoref_chloroplast"
)

// degenerateRun marks placeholder chloroplast sequences that carry a
// run of masked bases instead of real nucleotides.
const degenerateRun = "XXXXXXXXXX"

// Output file names within the build output directory.
const (
	organelleFastaName = "organelle.fasta"
	extendedFastaName  = "extended.fasta"
)

// Supplementer builds the organelle-extended taxonomy database: it
// filters and relabels mitochondria and chloroplast reference records
// into one combined FASTA plus one taxonomy mapping per naming
// convention, and optionally concatenates them onto a base reference.
type Supplementer struct {
	artifacts driven.ArtifactStore
}

// NewSupplementer creates a new supplementer service.
func NewSupplementer(artifacts driven.ArtifactStore) *Supplementer {
	return &Supplementer{artifacts: artifacts}
}

// organelleOutputs bundles the open output writers for one build.
// All files stay open across the single pass and close on every exit
// path; a failure mid-run leaves the outputs incomplete by design.
type organelleOutputs struct {
	fastaFile *os.File
	fasta     *fastx.Writer

	mapFiles map[domain.Convention]*os.File
	maps     map[domain.Convention]*taxmap.Writer
	prefixes map[domain.Convention]domain.PrefixPair
}

func (o *organelleOutputs) close() {
	if o.fastaFile != nil {
		o.fastaFile.Close()
	}
	for _, f := range o.mapFiles {
		f.Close()
	}
}

func (o *organelleOutputs) flush() error {
	if err := o.fasta.Flush(); err != nil {
		return err
	}
	for conv, w := range o.maps {
		if err := w.Flush(); err != nil {
			return fmt.Errorf("flushing %s mapping: %w", conv, err)
		}
	}
	return nil
}

// Build runs the supplementer.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (s *Supplementer) Build(ctx context.Context, req driving.BuildRequest) (*driving.BuildResult, error) {
	if req.MitochondriaFasta == "" || req.ChloroplastFasta == "" || req.OutputDir == "" {
		return nil, fmt.Errorf("%w: mitochondria, chloroplast and output dir are required", domain.ErrInvalidInput)
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	outs, err := openOutputs(req)
	if err != nil {
		return nil, err
	}
	defer outs.close()

	logger.Section("Supplement")

	result := &driving.BuildResult{
		TaxonomyMappings: make(map[domain.Convention]domain.Artifact),
	}

	// Mitochondria first, chloroplast second: category order in the
	// combined FASTA is fixed, source order preserved within each.
	result.MitochondriaKept, result.MitochondriaSeen, err = s.supplementMitochondria(req.MitochondriaFasta, outs)
	if err != nil {
		return nil, err
	}
	logger.Info("mitochondria: kept %d of %d records", result.MitochondriaKept, result.MitochondriaSeen)

	result.ChloroplastKept, result.ChloroplastSeen, err = s.supplementChloroplast(req.ChloroplastFasta, outs)
	if err != nil {
		return nil, err
	}
	logger.Info("chloroplast: kept %d of %d records", result.ChloroplastKept, result.ChloroplastSeen)

	if err := outs.flush(); err != nil {
		return nil, err
	}

	// Register outputs.
	fastaPath := filepath.Join(req.OutputDir, organelleFastaName)
	art, err := registerArtifact(ctx, s.artifacts, "", domain.ArtifactOrganelleFasta, fastaPath)
	if err != nil {
		return nil, err
	}
	result.OrganelleFasta = *art

	for conv := range outs.maps {
		art, err := registerArtifact(ctx, s.artifacts, "", domain.ArtifactTaxonomyTSV, mappingPath(req.OutputDir, conv))
		if err != nil {
			return nil, err
		}
		result.TaxonomyMappings[conv] = *art
	}

	if req.BaseFasta != "" {
		if err := s.buildExtended(ctx, req, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// supplementMitochondria streams the Metaxa2 extraction: records whose
// description mentions mitochondria are relabelled and emitted; the
// rest are silently dropped (a filter, not an error).
func (s *Supplementer) supplementMitochondria(path string, outs *organelleOutputs) (kept, seen int, err error) {
	err = fastx.EachRecordInFile(path, func(rec domain.SequenceRecord) error {
		seen++
		if !rec.DescriptionContains("mitochondria", "Mitochondria") {
			return nil
		}
		id := fmt.Sprintf("%s_%d", mitochondriaTag, kept)
		species := rec.LastField(";")
		if err := outs.fasta.Write(id, rec.Seq); err != nil {
			return err
		}
		for conv, w := range outs.maps {
			if err := w.Write(id, outs.prefixes[conv].Mitochondria+species); err != nil {
				return err
			}
		}
		kept++
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("supplementing mitochondria: %w", err)
	}
	return kept, seen, nil
}

// supplementChloroplast streams the PhytoRef reference: records whose
// sequence carries a masked-base run are placeholders and are dropped.
func (s *Supplementer) supplementChloroplast(path string, outs *organelleOutputs) (kept, seen int, err error) {
	err = fastx.EachRecordInFile(path, func(rec domain.SequenceRecord) error {
		seen++
		if rec.SeqContains(degenerateRun) {
			return nil
		}
		id := fmt.Sprintf("%s_%d", chloroplastTag, kept)
		species := rec.LastField("|")
		if err := outs.fasta.Write(id, rec.Seq); err != nil {
			return err
		}
		for conv, w := range outs.maps {
			if err := w.Write(id, outs.prefixes[conv].Chloroplast+species); err != nil {
				return err
			}
		}
		kept++
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("supplementing chloroplast: %w", err)
	}
	return kept, seen, nil
}

// buildExtended concatenates the base reference and the organelle
// outputs into the extended database files.
func (s *Supplementer) buildExtended(ctx context.Context, req driving.BuildRequest, result *driving.BuildResult) error {
	extFasta := filepath.Join(req.OutputDir, extendedFastaName)
	if err := concatFiles(extFasta, req.BaseFasta, result.OrganelleFasta.Path); err != nil {
		return fmt.Errorf("building extended fasta: %w", err)
	}
	art, err := registerArtifact(ctx, s.artifacts, "", domain.ArtifactExtendedFasta, extFasta)
	if err != nil {
		return err
	}
	result.ExtendedFasta = art

	result.ExtendedTaxonomies = make(map[domain.Convention]domain.Artifact)
	for conv, baseTax := range req.BaseTaxonomies {
		mapping, ok := result.TaxonomyMappings[conv]
		if !ok {
			return fmt.Errorf("%w: no organelle mapping for convention %s", domain.ErrUnknownConvention, conv)
		}
		extTax := filepath.Join(req.OutputDir, fmt.Sprintf("extended_taxonomy_%s.tsv", conv))
		if err := concatTaxonomies(extTax, baseTax, mapping.Path); err != nil {
			return fmt.Errorf("building extended taxonomy (%s): %w", conv, err)
		}
		art, err := registerArtifact(ctx, s.artifacts, "", domain.ArtifactExtendedTSV, extTax)
		if err != nil {
			return err
		}
		result.ExtendedTaxonomies[conv] = *art
	}
	return nil
}

// openOutputs creates (or truncates) the combined FASTA and one mapping
// file per convention.
func openOutputs(req driving.BuildRequest) (*organelleOutputs, error) {
	outs := &organelleOutputs{
		mapFiles: make(map[domain.Convention]*os.File),
		maps:     make(map[domain.Convention]*taxmap.Writer),
		prefixes: make(map[domain.Convention]domain.PrefixPair),
	}

	f, err := os.Create(filepath.Join(req.OutputDir, organelleFastaName))
	if err != nil {
		return nil, fmt.Errorf("creating organelle fasta: %w", err)
	}
	outs.fastaFile = f
	outs.fasta = fastx.NewWriter(f)

	for _, conv := range domain.Conventions() {
		pair, ok := req.Prefixes[conv]
		if !ok {
			pair, err = domain.DefaultPrefixes(conv)
			if err != nil {
				outs.close()
				return nil, err
			}
		}
		outs.prefixes[conv] = pair

		mf, err := os.Create(mappingPath(req.OutputDir, conv))
		if err != nil {
			outs.close()
			return nil, fmt.Errorf("creating %s mapping: %w", conv, err)
		}
		outs.mapFiles[conv] = mf
		outs.maps[conv] = taxmap.NewWriter(mf)
	}
	return outs, nil
}

// mappingPath names the taxonomy mapping file for one convention.
func mappingPath(dir string, conv domain.Convention) string {
	return filepath.Join(dir, fmt.Sprintf("organelle_taxonomy_%s.tsv", conv))
}

// concatFiles writes the concatenation of srcs to dest.
func concatFiles(dest string, srcs ...string) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	for _, src := range srcs {
		if err := appendFile(out, src, false); err != nil {
			out.Close()
			return err
		}
	}
	return out.Close()
}

// concatTaxonomies writes base followed by the mapping's data rows.
// The mapping's `Feature ID\tTaxon` header is skipped so the extended
// file stays importable as a headerless taxonomy TSV.
func concatTaxonomies(dest, base, mapping string) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if err := appendFile(out, base, false); err != nil {
		out.Close()
		return err
	}
	if err := appendFile(out, mapping, true); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// appendFile copies src onto out, optionally dropping src's first line.
func appendFile(out *os.File, src string, skipFirstLine bool) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	var r io.Reader = in
	if skipFirstLine {
		br := bufio.NewReader(in)
		if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
			return fmt.Errorf("skipping header of %s: %w", src, err)
		}
		r = br
	}
	if _, err := io.Copy(out, r); err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return nil
}
