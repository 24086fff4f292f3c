package ports

import "go.milieux.dev/milieux/internal/core/domain"

// DistroStore defines the interface for the distro registry.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type DistroStore interface {
	// List returns the existing distro names in lexicographic order.
	List() ([]string, error)

	// Load reads a distro by name. Returns domain.ErrDistroNotFound when absent.
	Load(name string) (domain.Distro, error)

	// Save writes a distro as a whole-file atomic replace. Returns
	// domain.ErrDistroExists unless overwrite is set.
	Save(distro domain.Distro, overwrite bool) error

	// Remove deletes a distro. Returns domain.ErrDistroNotFound when absent.
	Remove(name string) error
}
