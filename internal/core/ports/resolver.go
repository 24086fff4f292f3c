package ports

import (
	"context"

	"go.milieux.dev/milieux/internal/core/domain"
)

// Resolver drives the external dependency resolver to pin a specifier list
// to exact versions.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type Resolver interface {
	// Compile resolves the given specifiers against the configured indexes
	// and returns the fully pinned specifier list, including transitive
	// dependencies. Constraint conflicts surface as domain.ErrUnresolvable;
	// any other tool failure as domain.ErrResolverFailed.
	Compile(ctx context.Context, specs []domain.Specifier, index domain.IndexConfig) ([]domain.Specifier, error)
}
