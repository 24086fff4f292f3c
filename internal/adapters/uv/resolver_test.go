package uv_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.milieux.dev/milieux/internal/adapters/uv"
	"go.milieux.dev/milieux/internal/core/domain"
	"go.milieux.dev/milieux/internal/core/ports"
	"go.milieux.dev/milieux/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func mustSpec(t *testing.T, line string) domain.Specifier {
	t.Helper()
	spec, err := domain.ParseSpecifier(line)
	require.NoError(t, err)
	return spec
}

func setupRunnerTest(t *testing.T) *mocks.MockRunner {
	t.Helper()
	return mocks.NewMockRunner(gomock.NewController(t))
}

func TestResolverCompile(t *testing.T) {
	runner := setupRunnerTest(t)
	resolver := uv.NewResolver(runner)

	var reqPath string
	runner.EXPECT().
		Run(gomock.Any(), uv.Binary, gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, _ string, args []string, _ []string) (ports.RunResult, error) {
			require.GreaterOrEqual(t, len(args), 5)
			assert.Equal(t, []string{"pip", "compile"}, args[:2])
			reqPath = args[2]
			assert.Contains(t, args, "--no-annotate")
			assert.Contains(t, args, "--no-header")

			// The temp requirements file holds the rendered input specifiers.
			data, err := os.ReadFile(reqPath)
			require.NoError(t, err)
			assert.Equal(t, "flask>=3.0\n", string(data))

			return ports.RunResult{Stdout: "blinker==1.7.0\nflask==3.0.2\njinja2==3.1.3\n"}, nil
		})

	pinned, err := resolver.Compile(context.Background(), []domain.Specifier{mustSpec(t, "flask>=3.0")}, domain.IndexConfig{})
	require.NoError(t, err)

	require.Len(t, pinned, 3)
	for _, spec := range pinned {
		assert.True(t, spec.Pinned(), spec.String())
	}
	assert.Equal(t, "flask==3.0.2", pinned[1].String())

	// The temp file is cleaned up after the run.
	_, statErr := os.Stat(reqPath)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestResolverCompile_PassesIndexFlags(t *testing.T) {
	runner := setupRunnerTest(t)
	resolver := uv.NewResolver(runner)

	runner.EXPECT().
		Run(gomock.Any(), uv.Binary, gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, _ string, args []string, _ []string) (ports.RunResult, error) {
			assert.Contains(t, args, "--default-index")
			assert.Contains(t, args, "https://mirror.example.com/simple")
			return ports.RunResult{Stdout: "a==1.0\n"}, nil
		})

	_, err := resolver.Compile(context.Background(), []domain.Specifier{mustSpec(t, "a")},
		domain.IndexConfig{DefaultIndexURL: "https://mirror.example.com/simple"})
	require.NoError(t, err)
}

func TestResolverCompile_Conflict(t *testing.T) {
	runner := setupRunnerTest(t)
	resolver := uv.NewResolver(runner)

	stderr := "No solution found when resolving dependencies:\nBecause foo==1.0 depends on bar<2.0 and you require bar>=2.0 ..."
	runner.EXPECT().
		Run(gomock.Any(), uv.Binary, gomock.Any(), gomock.Nil()).
		Return(ports.RunResult{Stderr: stderr, ExitCode: 1}, zerr.New("command failed"))

	_, err := resolver.Compile(context.Background(), []domain.Specifier{
		mustSpec(t, "foo==1.0"),
		mustSpec(t, "bar>=2.0"),
	}, domain.IndexConfig{})
	require.ErrorIs(t, err, domain.ErrUnresolvable)
	assert.NotErrorIs(t, err, domain.ErrResolverFailed)
}

func TestResolverCompile_ToolFailure(t *testing.T) {
	runner := setupRunnerTest(t)
	resolver := uv.NewResolver(runner)

	runner.EXPECT().
		Run(gomock.Any(), uv.Binary, gomock.Any(), gomock.Nil()).
		Return(ports.RunResult{Stderr: "error: failed to fetch index", ExitCode: 2}, zerr.New("command failed"))

	_, err := resolver.Compile(context.Background(), []domain.Specifier{mustSpec(t, "a")}, domain.IndexConfig{})
	require.ErrorIs(t, err, domain.ErrResolverFailed)
	assert.NotErrorIs(t, err, domain.ErrUnresolvable)
}

func TestResolverCompile_UnparseableOutput(t *testing.T) {
	runner := setupRunnerTest(t)
	resolver := uv.NewResolver(runner)

	runner.EXPECT().
		Run(gomock.Any(), uv.Binary, gomock.Any(), gomock.Nil()).
		Return(ports.RunResult{Stdout: "!!! not a requirement\n"}, nil)

	_, err := resolver.Compile(context.Background(), []domain.Specifier{mustSpec(t, "a")}, domain.IndexConfig{})
	require.ErrorIs(t, err, domain.ErrResolverFailed)
}
