// Package cli is the cobra command surface. Commands hold no pipeline
// logic: they parse flags, call a driving service and print the result.
package cli

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driven"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driving"
	"github.com/bioref-labs/taxref-cli/internal/logger"
)

var version = "0.3.0"

// Services wired by Execute (or swapped by tests).
var (
	sourceService   driving.SourceService
	fetchService    driving.FetchService
	buildService    driving.BuildService
	pipelineService driving.PipelineService
	configStore     driven.ConfigStore
	artifactStore   driven.ArtifactStore
	runStore        driven.RunStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "taxref",
	Short: "Organelle-supplemented taxonomy reference databases",
	Long: `taxref builds 16S/18S reference databases extended with organelle
sequences. It fetches public references (Silva, Greengenes, Metaxa2,
PhytoRef), filters and relabels the organelle records into a combined
FASTA with per-convention taxonomy mappings, and drives the downstream
classify, filter and rarefy steps through an external toolkit.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute wires the default adapters and runs the root command.
func Execute() error {
	if err := initServices(); err != nil {
		return err
	}
	defer closeServices()
	return rootCmd.Execute()
}

// recordRun stores invocation provenance. Best effort: a run that
// cannot be recorded never fails the command itself.
func recordRun(command string, started time.Time, runErr error, detail string) {
	if runStore == nil {
		return
	}
	status := domain.RunOK
	if runErr != nil {
		status = domain.RunFailed
		if detail == "" {
			detail = runErr.Error()
		}
	}
	_ = runStore.Save(context.Background(), domain.Run{
		ID:         uuid.New().String(),
		Command:    command,
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
		Status:     status,
		Detail:     detail,
	})
}
