// Package tools shells out to external bioinformatics toolkits. The
// binaries are consumed contracts: the runner resolves them on PATH,
// executes one invocation and surfaces stderr on failure.
package tools

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
	"github.com/bioref-labs/taxref-cli/internal/core/ports/driven"
	"github.com/bioref-labs/taxref-cli/internal/logger"
)

// Ensure Runner implements the interface.
var _ driven.ToolRunner = (*Runner)(nil)

// Runner executes external tools via os/exec.
type Runner struct{}

// NewRunner creates a new exec-backed tool runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Available reports whether tool resolves to a binary on PATH.
func (r *Runner) Available(tool string) bool {
	_, err := exec.LookPath(tool)
	return err == nil
}

// Run executes tool with args and waits for it to finish. Stdout is
// discarded; stderr is captured and attached to the error on non-zero
// exit.
func (r *Runner) Run(ctx context.Context, tool string, args ...string) error {
	path, err := exec.LookPath(tool)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrToolUnavailable, tool)
	}

	logger.Debug("exec: %s %s", tool, strings.Join(args, " "))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%w: %s: %v: %s", domain.ErrToolFailed, tool, err, msg)
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrToolFailed, tool, err)
	}
	return nil
}
