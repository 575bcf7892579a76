package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioref-labs/taxref-cli/internal/core/domain"
)

func TestAvailable(t *testing.T) {
	runner := NewRunner()
	assert.True(t, runner.Available("sh"))
	assert.False(t, runner.Available("definitely-not-a-binary-7f3a"))
}

func TestRun_Success(t *testing.T) {
	runner := NewRunner()
	err := runner.Run(context.Background(), "sh", "-c", "exit 0")
	assert.NoError(t, err)
}

func TestRun_MissingBinary(t *testing.T) {
	runner := NewRunner()
	err := runner.Run(context.Background(), "definitely-not-a-binary-7f3a")
	assert.ErrorIs(t, err, domain.ErrToolUnavailable)
}

func TestRun_NonZeroExit(t *testing.T) {
	runner := NewRunner()
	err := runner.Run(context.Background(), "sh", "-c", "echo 'bad input' >&2; exit 3")
	require.ErrorIs(t, err, domain.ErrToolFailed)
	assert.Contains(t, err.Error(), "bad input")
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner()
	err := runner.Run(ctx, "sh", "-c", "sleep 10")
	assert.ErrorIs(t, err, domain.ErrToolFailed)
}
