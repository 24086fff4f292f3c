// Package lock pins a distro's specifiers to exact versions via the
// external resolver.
package lock

import (
	"context"
	"sort"

	"go.milieux.dev/milieux/internal/core/domain"
	"go.milieux.dev/milieux/internal/core/ports"
	"go.trai.ch/zerr"
)

// Engine drives the resolver to lock distros.
type Engine struct {
	resolver ports.Resolver
	logger   ports.Logger
}

// New creates a lock engine.
func New(resolver ports.Resolver, logger ports.Logger) *Engine {
	return &Engine{resolver: resolver, logger: logger}
}

// Lock resolves the distro's specifiers to a fully pinned set, including
// transitive dependencies, and returns it as a new in-memory distro named
// newName (or the original name when newName is empty). Persisting the
// result is the caller's responsibility. The pinned sequence is sorted by
// normalized package name so locked output is reproducible.
func (e *Engine) Lock(ctx context.Context, distro domain.Distro, newName string, index domain.IndexConfig) (domain.Distro, error) {
	if len(distro.Specs) == 0 {
		return domain.Distro{}, zerr.With(domain.ErrNoPackages, "distro", distro.Name)
	}
	e.logger.Info("locking dependencies for distro " + distro.Name)

	pinned, err := e.resolver.Compile(ctx, distro.Specs, index)
	if err != nil {
		return domain.Distro{}, zerr.With(err, "distro", distro.Name)
	}

	sort.Slice(pinned, func(i, j int) bool {
		return pinned[i].Key() < pinned[j].Key()
	})

	name := newName
	if name == "" {
		name = distro.Name
	}
	return domain.Distro{Name: name, Specs: pinned}, nil
}
