package ports

import (
	"context"

	"go.milieux.dev/milieux/internal/core/domain"
)

// Installer drives the external installer against one environment.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// Install installs the given specifiers into the environment.
	Install(ctx context.Context, env domain.Environment, specs []domain.Specifier, index domain.IndexConfig) error

	// Uninstall removes the named packages from the environment.
	Uninstall(ctx context.Context, env domain.Environment, names []string) error

	// Freeze returns the environment's installed (name, version) pairs.
	Freeze(ctx context.Context, env domain.Environment) ([]domain.InstalledPackage, error)
}
