package driven

import "context"

// ToolRunner executes an external bioinformatics tool. Classification,
// feature-table filtering and rarefaction are consumed contracts: the
// pipeline shells out, checks the exit status and registers the output
// artefact, with no knowledge of the tool's internals.
type ToolRunner interface {
	// Available reports whether the tool binary can be found.
	Available(tool string) bool

	// Run executes tool with args, capturing stderr for diagnostics.
	// Returns domain.ErrToolUnavailable if the binary is missing and a
	// domain.ErrToolFailed-wrapped error on non-zero exit.
	Run(ctx context.Context, tool string, args ...string) error
}
