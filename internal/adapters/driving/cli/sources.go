package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage reference sources",
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add [source-id]",
	Short: "Add a reference source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesAdd,
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sources",
	RunE:  runSourcesList,
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove [source-id]",
	Short: "Remove a reference source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesRemove,
}

var sourcesInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed the well-known reference sources",
	Long: `Configures the standard public references: Silva and Greengenes as base
databases, the Metaxa2 bundle for mitochondrial SSU sequences and
PhytoRef for plastids. Sources that already exist are left untouched.`,
	RunE: runSourcesInit,
}

var (
	sourceAddName     string
	sourceAddURL      string
	sourceAddFormat   string
	sourceAddCategory string
)

func init() {
	sourcesAddCmd.Flags().StringVar(&sourceAddName, "name", "", "human-readable name")
	sourcesAddCmd.Flags().StringVar(&sourceAddURL, "url", "", "download URL")
	sourcesAddCmd.Flags().StringVar(&sourceAddFormat, "format", string(domain.FormatFasta), "packaging: fasta, fasta-gz or tar-gz")
	sourcesAddCmd.Flags().StringVar(&sourceAddCategory, "category", "", "role: base-reference, mitochondria or chloroplast")
	_ = sourcesAddCmd.MarkFlagRequired("url")
	_ = sourcesAddCmd.MarkFlagRequired("category")

	sourcesCmd.AddCommand(sourcesAddCmd)
	sourcesCmd.AddCommand(sourcesListCmd)
	sourcesCmd.AddCommand(sourcesRemoveCmd)
	sourcesCmd.AddCommand(sourcesInitCmd)
	rootCmd.AddCommand(sourcesCmd)
}

// wellKnownSources are the references the original pipeline was built
// around, seeded by "sources init".
func wellKnownSources() []domain.ReferenceSource {
	return []domain.ReferenceSource{
		{
			ID:       "greengenes-13-8",
			Name:     "Greengenes 13_8 OTUs",
			URL:      "https://gg-sg-web.s3-us-west-2.amazonaws.com/downloads/greengenes_database/gg_13_8_otus/gg_13_8_otus.tar.gz",
			Format:   domain.FormatTarGz,
			Category: domain.CategoryBase,
		},
		{
			ID:       "silva-132",
			Name:     "SILVA 132 SSURef Nr99",
			URL:      "https://www.arb-silva.de/fileadmin/silva_databases/release_132/Exports/SILVA_132_SSURef_Nr99_tax_silva.fasta.gz",
			Format:   domain.FormatFastaGz,
			Category: domain.CategoryBase,
		},
		{
			ID:       "metaxa2",
			Name:     "Metaxa2 2.2 (mitochondrial SSU)",
			URL:      "https://microbiology.se/sw/Metaxa2_2.2.tar.gz",
			Format:   domain.FormatTarGz,
			Category: domain.CategoryMitochondria,
		},
		{
			ID:       "phytoref",
			Name:     "PhytoRef plastid 16S",
			URL:      "http://phytoref.sb-roscoff.fr/static/downloads/PhytoRef_with_taxonomy.fasta",
			Format:   domain.FormatFasta,
			Category: domain.CategoryChloroplast,
		},
	}
}

func runSourcesAdd(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	source := domain.ReferenceSource{
		ID:       args[0],
		Name:     sourceAddName,
		URL:      sourceAddURL,
		Format:   domain.SourceFormat(sourceAddFormat),
		Category: domain.SourceCategory(sourceAddCategory),
	}
	if err := sourceService.Add(context.Background(), source); err != nil {
		return fmt.Errorf("failed to add source: %w", err)
	}

	cmd.Printf("Added source: %s\n", source.ID)
	return nil
}

func runSourcesList(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sources, err := sourceService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if len(sources) == 0 {
		cmd.Println("No configured sources. Run 'taxref sources init' to seed the defaults.")
		return nil
	}

	cmd.Println("Configured sources:")
	for _, source := range sources {
		cmd.Printf("  %s (%s, %s)\n", source.ID, source.Category, source.Format)
		cmd.Printf("    %s\n", source.URL)
	}
	return nil
}

func runSourcesRemove(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	if err := sourceService.Remove(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to remove source: %w", err)
	}

	cmd.Printf("Removed source: %s\n", args[0])
	return nil
}

func runSourcesInit(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	ctx := context.Background()
	started := time.Now().UTC()
	seeded := 0
	for _, source := range wellKnownSources() {
		err := sourceService.Add(ctx, source)
		if errors.Is(err, domain.ErrAlreadyExists) {
			cmd.Printf("  %s already configured\n", source.ID)
			continue
		}
		if err != nil {
			recordRun("sources init", started, err, source.ID)
			return fmt.Errorf("failed to seed source %s: %w", source.ID, err)
		}
		cmd.Printf("  added %s\n", source.ID)
		seeded++
	}
	recordRun("sources init", started, nil, fmt.Sprintf("%d seeded", seeded))

	cmd.Printf("Seeded %d sources.\n", seeded)
	return nil
}
