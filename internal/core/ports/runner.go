package ports

import "context"

// RunResult captures a finished subprocess invocation.
type RunResult struct {
	// Stdout is the captured standard output.
	Stdout string

	// Stderr is the captured standard error.
	Stderr string

	// ExitCode is the process exit status (-1 when the process did not run).
	ExitCode int
}

// Runner executes external commands. Blocking, no retries; cancellation of
// ctx terminates the in-flight process.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run executes name with args, capturing output. A non-zero exit status
	// is returned as an error carrying the result.
	Run(ctx context.Context, name string, args []string, extraEnv []string) (RunResult, error)
}
