package uv

import (
	"context"
	"errors"
	"os"
	"regexp"
	"sort"
	"strings"

	"go.milieux.dev/milieux/internal/core/domain"
	"go.milieux.dev/milieux/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver implements ports.Resolver using `uv pip compile`.
type Resolver struct {
	runner ports.Runner
}

// NewResolver creates a resolver backed by the uv CLI.
func NewResolver(runner ports.Runner) *Resolver {
	return &Resolver{runner: runner}
}

// Compile resolves the specifiers to a fully pinned list, including
// transitive dependencies. The input is written to a temp requirements file
// because uv compiles files, not argument lists.
func (r *Resolver) Compile(ctx context.Context, specs []domain.Specifier, index domain.IndexConfig) ([]domain.Specifier, error) {
	reqPath, cleanup, err := writeReqTempFile(specs)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	args := append([]string{"pip", "compile", reqPath, "--no-annotate", "--no-header"}, indexArgs(index)...)
	result, err := r.runner.Run(ctx, Binary, args, nil)
	if err != nil {
		if names := conflictingNames(result.Stderr); names != nil {
			confErr := zerr.With(domain.ErrUnresolvable, "conflicts", strings.Join(names, ", "))
			return nil, zerr.With(confErr, "stderr", strings.TrimSpace(result.Stderr))
		}
		return nil, errors.Join(domain.ErrResolverFailed, err)
	}

	pinned, err := domain.ParseRequirementLines(result.Stdout)
	if err != nil {
		return nil, errors.Join(domain.ErrResolverFailed, err)
	}
	return pinned, nil
}

func writeReqTempFile(specs []domain.Specifier) (path string, cleanup func(), err error) {
	tmp, err := os.CreateTemp("", "milieux-reqs-*.txt")
	if err != nil {
		return "", nil, zerr.Wrap(err, "failed to create temp requirements file")
	}
	path = tmp.Name()
	cleanup = func() {
		_ = os.Remove(path)
	}
	for _, spec := range specs {
		if _, writeErr := tmp.WriteString(spec.String() + "\n"); writeErr != nil {
			_ = tmp.Close()
			cleanup()
			return "", nil, zerr.Wrap(writeErr, "failed to write temp requirements file")
		}
	}
	if closeErr := tmp.Close(); closeErr != nil {
		cleanup()
		return "", nil, zerr.Wrap(closeErr, "failed to close temp requirements file")
	}
	return path, cleanup, nil
}

var conflictNameRe = regexp.MustCompile(`([A-Za-z0-9][A-Za-z0-9._-]*)(?:\[[^\]]*\])?(?:===|==|!=|<=|>=|~=|<|>)`)

// conflictingNames extracts the package names involved in an unsatisfiable
// resolution from uv's failure report. Returns nil when the failure is not a
// constraint conflict.
func conflictingNames(stderr string) []string {
	if !strings.Contains(stderr, "No solution found") {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, m := range conflictNameRe.FindAllStringSubmatch(stderr, -1) {
		name := domain.NormalizeName(m[1])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		// Conflict report without recognizable names; still a conflict.
		return []string{}
	}
	return names
}
