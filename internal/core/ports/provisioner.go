package ports

import (
	"context"

	"go.milieux.dev/milieux/internal/core/domain"
)

// Provisioner creates isolated installation roots via the external
// environment-provisioning tool.
//
//go:generate go run go.uber.org/mock/mockgen -source=provisioner.go -destination=mocks/mock_provisioner.go -package=mocks
type Provisioner interface {
	// Provision creates the environment's installation root and activation
	// script at env.Path. Returns domain.ErrProvisionFailed on tool failure.
	Provision(ctx context.Context, env domain.Environment, opts domain.CreateEnvOptions) error
}
