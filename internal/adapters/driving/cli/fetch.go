package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bioref-labs/taxref-cli/internal/core/ports/driving"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [source-id]",
	Short: "Download reference sources",
	Long: `Downloads configured reference sources and registers the files in the
provenance store. Archives are unpacked after download. If a source ID
is provided, only that source is fetched; otherwise all sources are.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if fetchService == nil {
		return errors.New("fetch service not configured")
	}

	ctx := context.Background()
	started := time.Now().UTC()

	if len(args) > 0 {
		sourceID := args[0]
		cmd.Printf("Fetching source: %s...\n", sourceID)

		result, err := fetchService.Fetch(ctx, sourceID)
		recordRun("fetch", started, err, sourceID)
		if err != nil {
			return fmt.Errorf("fetch failed: %w", err)
		}

		printFetchResult(cmd, *result)
		return nil
	}

	cmd.Println("Fetching all sources...")

	results, err := fetchService.FetchAll(ctx)
	recordRun("fetch", started, err, fmt.Sprintf("%d sources", len(results)))
	for _, result := range results {
		printFetchResult(cmd, result)
	}
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	cmd.Printf("Fetched %d sources.\n", len(results))
	return nil
}

func printFetchResult(cmd *cobra.Command, result driving.FetchResult) {
	cmd.Printf("  %s: %s (%s)\n", result.Source.ID, result.Download.Path,
		humanBytes(result.Download.SizeBytes))
	for _, extracted := range result.Extracted {
		cmd.Printf("    extracted %s\n", extracted.Path)
	}
}
