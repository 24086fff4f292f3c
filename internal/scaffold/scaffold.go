// Package scaffold sets up new project skeletons via an external utility.
package scaffold

import (
	"context"
	"path/filepath"
	"strings"

	"go.milieux.dev/milieux/internal/core/ports"
	"go.trai.ch/zerr"
)

// Scaffolder creates a project scaffold in a base directory.
type Scaffolder interface {
	MakeScaffold(ctx context.Context, baseDir, projectName string) error
}

// HatchScaffolder scaffolds projects with the hatch command-line tool.
type HatchScaffolder struct {
	runner ports.Runner
	logger ports.Logger
}

// NewHatchScaffolder creates a hatch-backed scaffolder.
func NewHatchScaffolder(runner ports.Runner, logger ports.Logger) *HatchScaffolder {
	return &HatchScaffolder{runner: runner, logger: logger}
}

// MakeScaffold creates a new project skeleton under baseDir.
func (s *HatchScaffolder) MakeScaffold(ctx context.Context, baseDir, projectName string) error {
	result, err := s.runner.Run(ctx, "hatch", []string{"config", "find"}, nil)
	if err == nil {
		s.logger.Info("using hatch configurations in " + strings.TrimSpace(result.Stdout))
	}
	location := filepath.Join(baseDir, projectName)
	if _, err := s.runner.Run(ctx, "hatch", []string{"new", projectName, location}, nil); err != nil {
		return zerr.With(err, "project", projectName)
	}
	return nil
}

// ByName returns the scaffolder registered under the given utility name.
func ByName(utility string, runner ports.Runner, logger ports.Logger) (Scaffolder, error) {
	switch utility {
	case "", "hatch":
		return NewHatchScaffolder(runner, logger), nil
	default:
		return nil, zerr.With(zerr.New("unknown scaffold utility"), "utility", utility)
	}
}
