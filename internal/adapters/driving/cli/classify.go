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
	classifyQuery    string
	classifyRefReads string
	classifyRefTax   string
	classifyIdentity float64
	classifyOutput   string
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify sequences against a reference database",
	Long: `Runs consensus classification of representative sequences against a
reference database (base or extended) through the external toolkit.`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyQuery, "query", "", "representative sequences FASTA")
	classifyCmd.Flags().StringVar(&classifyRefReads, "reference-reads", "", "reference sequences FASTA")
	classifyCmd.Flags().StringVar(&classifyRefTax, "reference-taxonomy", "", "reference taxonomy TSV")
	classifyCmd.Flags().Float64Var(&classifyIdentity, "identity", 0.97, "minimum fractional identity")
	classifyCmd.Flags().StringVar(&classifyOutput, "output", "", "classification output path")
	_ = classifyCmd.MarkFlagRequired("query")
	_ = classifyCmd.MarkFlagRequired("reference-reads")
	_ = classifyCmd.MarkFlagRequired("reference-taxonomy")
	_ = classifyCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	started := time.Now().UTC()
	artifact, err := pipelineService.Classify(context.Background(), driving.ClassifyRequest{
		Query:             classifyQuery,
		ReferenceFasta:    classifyRefReads,
		ReferenceTaxonomy: classifyRefTax,
		Identity:          classifyIdentity,
		Output:            classifyOutput,
	})
	recordRun("classify", started, err, "")
	if err != nil {
		return fmt.Errorf("classify failed: %w", err)
	}

	cmd.Printf("Classification: %s\n", artifact.Path)
	return nil
}
