// Package reconcile merges requirement sources into one target specifier set.
package reconcile

import (
	"errors"
	"os"

	"go.milieux.dev/milieux/internal/core/domain"
	"go.milieux.dev/milieux/internal/core/ports"
	"go.trai.ch/zerr"
)

// Reconciler folds an ordered list of sources into a target specifier set.
// Precedence is last-write-wins by normalized package name, both across
// sources and within a single source.
type Reconciler struct {
	store ports.DistroStore
}

// New creates a Reconciler reading distro sources from the given registry.
func New(store ports.DistroStore) *Reconciler {
	return &Reconciler{store: store}
}

// Resolve produces the target set for the given sources. Every source is
// loaded and validated before any merging happens, so a bad later source
// never leaves a partially merged result visible to the caller.
func (r *Reconciler) Resolve(sources []domain.Source) (*domain.TargetSet, error) {
	if len(sources) == 0 {
		return nil, domain.ErrNoPackages
	}

	loaded := make([][]domain.Specifier, len(sources))
	for i, source := range sources {
		specs, err := r.load(source)
		if err != nil {
			return nil, err
		}
		loaded[i] = specs
	}

	target := domain.NewTargetSet()
	for _, specs := range loaded {
		for _, spec := range specs {
			target.Add(spec)
		}
	}
	if target.Len() == 0 {
		return nil, domain.ErrNoPackages
	}
	return target, nil
}

func (r *Reconciler) load(source domain.Source) ([]domain.Specifier, error) {
	switch s := source.(type) {
	case domain.DistroRef:
		distro, err := r.store.Load(s.Name)
		if err != nil {
			if errors.Is(err, domain.ErrDistroNotFound) {
				return nil, sourceNotFound(source, err)
			}
			return nil, err
		}
		return distro.Specs, nil

	case domain.Packages:
		specs := make([]domain.Specifier, 0, len(s.Lines))
		for _, line := range s.Lines {
			spec, err := domain.ParseSpecifier(line)
			if err != nil {
				return nil, zerr.With(err, "source", source.Describe())
			}
			specs = append(specs, spec)
		}
		return specs, nil

	case domain.RequirementsFile:
		data, err := os.ReadFile(s.Path) //nolint:gosec // path is provided by the user
		if err != nil {
			return nil, sourceNotFound(source, err)
		}
		specs, err := domain.ParseRequirementLines(string(data))
		if err != nil {
			return nil, zerr.With(err, "source", source.Describe())
		}
		return specs, nil

	default:
		return nil, zerr.With(zerr.New("unknown source type"), "source", source.Describe())
	}
}

func sourceNotFound(source domain.Source, err error) error {
	return zerr.With(errors.Join(domain.ErrSourceNotFound, err), "source", source.Describe())
}
