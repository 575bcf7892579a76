package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

const statusLimit = 10

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show registered artifacts and recent runs",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if artifactStore == nil || runStore == nil {
		return errors.New("provenance store not configured")
	}

	ctx := context.Background()

	artifacts, err := artifactStore.List(ctx)
	if err != nil {
		return err
	}
	if len(artifacts) == 0 {
		cmd.Println("No registered artifacts.")
	} else {
		cmd.Printf("Artifacts (%d total, newest first):\n", len(artifacts))
		for i, artifact := range artifacts {
			if i == statusLimit {
				cmd.Printf("  ... and %d more\n", len(artifacts)-statusLimit)
				break
			}
			cmd.Printf("  [%s] %s (%s)\n", artifact.Kind, artifact.Path,
				humanBytes(artifact.SizeBytes))
		}
	}

	runs, err := runStore.List(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("No recorded runs.")
		return nil
	}
	cmd.Printf("Runs (%d total, newest first):\n", len(runs))
	for i, run := range runs {
		if i == statusLimit {
			cmd.Printf("  ... and %d more\n", len(runs)-statusLimit)
			break
		}
		cmd.Printf("  %s %s %s", run.FinishedAt.Format("2006-01-02 15:04:05"),
			run.Command, run.Status)
		if run.Detail != "" {
			cmd.Printf(" (%s)", run.Detail)
		}
		cmd.Println()
	}
	return nil
}
