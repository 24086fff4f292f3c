// Package shell provides the subprocess runner adapter.
package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.milieux.dev/milieux/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Runner implements ports.Runner using os/exec. Invocations are blocking
// with no internal timeout; cancelling the context kills the subprocess.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes the command, capturing stdout and stderr. A non-zero exit
// status is returned as an error carrying the exit code and the captured
// stderr; the result is populated either way so callers can surface the
// tool's diagnostics verbatim.
func (r *Runner) Run(ctx context.Context, name string, args []string, extraEnv []string) (ports.RunResult, error) {
	r.logger.Info(name + " " + strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // command is constructed by the calling adapter
	cmd.Env = append(os.Environ(), extraEnv...)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return ports.RunResult{ExitCode: -1}, zerr.Wrap(err, "failed to open stdout pipe")
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return ports.RunResult{ExitCode: -1}, zerr.Wrap(err, "failed to open stderr pipe")
	}

	if err := cmd.Start(); err != nil {
		return ports.RunResult{ExitCode: -1}, zerr.With(zerr.Wrap(err, "failed to start command"), "command", name)
	}

	// Drain both pipes concurrently so neither side can block the process.
	var stdout, stderr bytes.Buffer
	g := new(errgroup.Group)
	g.Go(func() error {
		_, copyErr := io.Copy(&stdout, stdoutPipe)
		return copyErr
	})
	g.Go(func() error {
		_, copyErr := io.Copy(&stderr, stderrPipe)
		return copyErr
	})
	copyErr := g.Wait()
	waitErr := cmd.Wait()

	result := ports.RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}
	if copyErr != nil {
		return result, zerr.Wrap(copyErr, "failed to capture command output")
	}
	if waitErr != nil {
		if ctx.Err() != nil {
			return result, zerr.With(zerr.Wrap(ctx.Err(), "command cancelled"), "command", name)
		}
		failErr := zerr.With(zerr.Wrap(waitErr, "command failed"), "command", name)
		failErr = zerr.With(failErr, "exit_code", result.ExitCode)
		return result, zerr.With(failErr, "stderr", strings.TrimSpace(result.Stderr))
	}
	return result, nil
}
