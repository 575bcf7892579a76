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
	rarefyTable  string
	rarefyDepth  int
	rarefyOutput string
)

var rarefyCmd = &cobra.Command{
	Use:   "rarefy",
	Short: "Rarefy a feature table to a uniform depth",
	RunE:  runRarefy,
}

func init() {
	rarefyCmd.Flags().StringVar(&rarefyTable, "table", "", "input feature table")
	rarefyCmd.Flags().IntVar(&rarefyDepth, "depth", 0, "per-sample sequence count")
	rarefyCmd.Flags().StringVar(&rarefyOutput, "output", "", "rarefied table output path")
	_ = rarefyCmd.MarkFlagRequired("table")
	_ = rarefyCmd.MarkFlagRequired("depth")
	_ = rarefyCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(rarefyCmd)
}

func runRarefy(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	started := time.Now().UTC()
	artifact, err := pipelineService.Rarefy(context.Background(), driving.RarefyRequest{
		Table:  rarefyTable,
		Depth:  rarefyDepth,
		Output: rarefyOutput,
	})
	recordRun("rarefy", started, err, "")
	if err != nil {
		return fmt.Errorf("rarefy failed: %w", err)
	}

	cmd.Printf("Rarefied table: %s\n", artifact.Path)
	return nil
}
