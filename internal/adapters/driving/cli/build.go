package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/bioref-labs/taxref-cli/internal/adapters/driven/config/file"
	"github.com/bioref-labs/taxref-cli/internal/core/domain"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driving"
)

var (
	buildMitochondria string
	buildChloroplast  string
	buildOut          string
	buildBaseFasta    string
	buildBaseTaxonomy map[string]string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the organelle supplement",
	Long: `Filters and relabels the mitochondria and chloroplast references into
one combined FASTA plus one taxonomy-mapping TSV per naming convention.
With a base reference the outputs are also concatenated into extended
database files.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildMitochondria, "mitochondria", "m", "", "mitochondrial SSU FASTA (Metaxa2 extraction)")
	buildCmd.Flags().StringVarP(&buildChloroplast, "chloroplast", "c", "", "plastid reference FASTA (PhytoRef)")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", ".", "output directory")
	buildCmd.Flags().StringVar(&buildBaseFasta, "base-fasta", "", "base reference FASTA to extend")
	buildCmd.Flags().StringToStringVar(&buildBaseTaxonomy, "base-taxonomy", nil, "base taxonomy per convention (e.g. greengenes=/path/gg.txt)")
	_ = buildCmd.MarkFlagRequired("mitochondria")
	_ = buildCmd.MarkFlagRequired("chloroplast")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	if buildService == nil {
		return errors.New("build service not configured")
	}

	req := driving.BuildRequest{
		MitochondriaFasta: buildMitochondria,
		ChloroplastFasta:  buildChloroplast,
		OutputDir:         buildOut,
		Prefixes:          configuredPrefixes(),
		BaseFasta:         buildBaseFasta,
	}
	for conv, path := range buildBaseTaxonomy {
		if req.BaseTaxonomies == nil {
			req.BaseTaxonomies = make(map[domain.Convention]string)
		}
		req.BaseTaxonomies[domain.Convention(conv)] = path
	}

	started := time.Now().UTC()
	result, err := buildService.Build(context.Background(), req)
	recordRun("build", started, err, "")
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	cmd.Printf("Mitochondria: kept %d of %d records\n", result.MitochondriaKept, result.MitochondriaSeen)
	cmd.Printf("Chloroplast:  kept %d of %d records\n", result.ChloroplastKept, result.ChloroplastSeen)
	cmd.Printf("Combined FASTA: %s\n", result.OrganelleFasta.Path)
	for _, conv := range domain.Conventions() {
		if mapping, ok := result.TaxonomyMappings[conv]; ok {
			cmd.Printf("Taxonomy (%s): %s\n", conv, mapping.Path)
		}
	}
	if result.ExtendedFasta != nil {
		cmd.Printf("Extended FASTA: %s\n", result.ExtendedFasta.Path)
	}
	for _, conv := range domain.Conventions() {
		if extended, ok := result.ExtendedTaxonomies[conv]; ok {
			cmd.Printf("Extended taxonomy (%s): %s\n", conv, extended.Path)
		}
	}
	return nil
}

// configuredPrefixes overlays config-file prefix overrides onto the
// built-in defaults.
func configuredPrefixes() map[domain.Convention]domain.PrefixPair {
	if configStore == nil {
		return nil
	}
	overrides := make(map[domain.Convention]domain.PrefixPair)
	for _, conv := range domain.Conventions() {
		pair, err := domain.DefaultPrefixes(conv)
		if err != nil {
			continue
		}
		changed := false
		if v := configStore.GetString(configfile.PrefixKey(string(conv), "mitochondria")); v != "" {
			pair.Mitochondria = v
			changed = true
		}
		if v := configStore.GetString(configfile.PrefixKey(string(conv), "chloroplast")); v != "" {
			pair.Chloroplast = v
			changed = true
		}
		if changed {
			overrides[conv] = pair
		}
	}
	if len(overrides) == 0 {
		return nil
	}
	return overrides
}
