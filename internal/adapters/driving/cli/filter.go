package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bioref-labs/taxref-cli/internal/core/ports/driving"
)

var (
	filterTable    string
	filterTaxonomy string
	filterExclude  []string
	filterOutput   string
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter a feature table by taxonomy",
	Long: `Removes features whose classification matches excluded taxa. The
default exclusions drop organelle-derived features after they have been
identified against an extended database.`,
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVar(&filterTable, "table", "", "input feature table")
	filterCmd.Flags().StringVar(&filterTaxonomy, "taxonomy", "", "classification used for exclusion")
	filterCmd.Flags().StringSliceVar(&filterExclude, "exclude", []string{"mitochondria", "chloroplast"}, "taxon substrings to remove")
	filterCmd.Flags().StringVar(&filterOutput, "output", "", "filtered table output path")
	_ = filterCmd.MarkFlagRequired("table")
	_ = filterCmd.MarkFlagRequired("taxonomy")
	_ = filterCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	started := time.Now().UTC()
	artifact, err := pipelineService.FilterTable(context.Background(), driving.FilterRequest{
		Table:    filterTable,
		Taxonomy: filterTaxonomy,
		Exclude:  filterExclude,
		Output:   filterOutput,
	})
	recordRun("filter", started, err, "")
	if err != nil {
		return fmt.Errorf("filter failed: %w", err)
	}

	cmd.Printf("Filtered table: %s\n", artifact.Path)
	return nil
}
