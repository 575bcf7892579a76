package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	configfile "github.com/bioref-labs/taxref-cli/internal/adapters/driven/config/file"
	"github.com/bioref-labs/taxref-cli/internal/adapters/driven/storage/sqlite"
	"github.com/bioref-labs/taxref-cli/internal/adapters/driven/tools"
	"github.com/bioref-labs/taxref-cli/internal/archive"
	"github.com/bioref-labs/taxref-cli/internal/connectors/httpfetch"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driven"
	"github.com/bioref-labs/taxref-cli/internal/core/services"
)

// metaStore keeps the provenance database open for the process lifetime.
var metaStore *sqlite.Store

// initServices composes the default adapters into the driving services.
// Globals already set (by tests) are left alone.
func initServices() error {
	if configStore == nil {
		cfg, err := configfile.NewConfigStore("")
		if err != nil {
			return fmt.Errorf("opening config: %w", err)
		}
		configStore = cfg
	}

	if metaStore == nil && (sourceService == nil || artifactStore == nil || runStore == nil) {
		store, err := sqlite.NewStore("")
		if err != nil {
			return fmt.Errorf("opening provenance store: %w", err)
		}
		metaStore = store
	}

	if artifactStore == nil {
		artifactStore = metaStore.ArtifactStore()
	}
	if runStore == nil {
		runStore = metaStore.RunStore()
	}
	if sourceService == nil {
		sourceService = services.NewSourceService(metaStore.SourceStore())
	}

	if fetchService == nil {
		workspace := configStore.GetString(configfile.KeyWorkspace)
		if workspace == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("resolving workspace: %w", err)
			}
			workspace = filepath.Join(home, ".taxref", "workspace")
		}

		fetcher := httpfetch.New(float64(configStore.GetInt(configfile.KeyRateLimit)))
		orch := services.NewFetchOrchestrator(
			metaStore.SourceStore(), artifactStore, fetcher, archive.New(), workspace)
		if term.IsTerminal(int(os.Stderr.Fd())) {
			orch.Progress = printFetchProgress
		}
		fetchService = orch
	}

	if buildService == nil {
		buildService = services.NewSupplementer(artifactStore)
	}

	if pipelineService == nil {
		tool := configStore.GetString(configfile.KeyTool)
		pipelineService = services.NewPipeline(tools.NewRunner(), artifactStore, tool)
	}

	return nil
}

func closeServices() {
	if metaStore != nil {
		_ = metaStore.Close()
		metaStore = nil
	}
}

// printFetchProgress rewrites one status line per download. Only
// installed when stderr is a terminal.
func printFetchProgress(p driven.FetchProgress) {
	if p.TotalBytes > 0 {
		fmt.Fprintf(os.Stderr, "\r%s: %s / %s", p.SourceID,
			humanBytes(p.BytesRead), humanBytes(p.TotalBytes))
		if p.BytesRead >= p.TotalBytes {
			fmt.Fprintln(os.Stderr)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "\r%s: %s", p.SourceID, humanBytes(p.BytesRead))
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
