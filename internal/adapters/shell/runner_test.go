package shell_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.milieux.dev/milieux/internal/adapters/shell"
	"go.milieux.dev/milieux/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func setupRunnerTest(t *testing.T) *shell.Runner {
	t.Helper()
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	return shell.NewRunner(logger)
}

func TestRun_CapturesStdout(t *testing.T) {
	r := setupRunnerTest(t)

	result, err := r.Run(context.Background(), "sh", []string{"-c", "echo hello"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", result.Stdout)
	assert.Equal(t, 0, result.ExitCode)
}

func TestRun_CapturesStderrSeparately(t *testing.T) {
	r := setupRunnerTest(t)

	result, err := r.Run(context.Background(), "sh", []string{"-c", "echo out; echo err >&2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "out\n", result.Stdout)
	assert.Equal(t, "err\n", result.Stderr)
}

func TestRun_ExtraEnv(t *testing.T) {
	r := setupRunnerTest(t)

	result, err := r.Run(context.Background(), "sh", []string{"-c", "echo $MILIEUX_TEST_VAR"}, []string{"MILIEUX_TEST_VAR=injected"})
	require.NoError(t, err)
	assert.Equal(t, "injected\n", result.Stdout)
}

func TestRun_NonZeroExit(t *testing.T) {
	r := setupRunnerTest(t)

	result, err := r.Run(context.Background(), "sh", []string{"-c", "echo boom >&2; exit 3"}, nil)
	require.Error(t, err)
	// The result is populated even on failure so callers can surface the
	// tool's diagnostics.
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "boom\n", result.Stderr)
}

func TestRun_MissingBinary(t *testing.T) {
	r := setupRunnerTest(t)

	result, err := r.Run(context.Background(), "definitely-not-a-real-binary-3721", nil, nil)
	require.Error(t, err)
	assert.Equal(t, -1, result.ExitCode)
}

func TestRun_Cancellation(t *testing.T) {
	r := setupRunnerTest(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, "sh", []string{"-c", "sleep 10"}, nil)
	require.Error(t, err)
}
