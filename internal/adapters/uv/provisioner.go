package uv

import (
	"context"
	"errors"

	"go.milieux.dev/milieux/internal/core/domain"
	"go.milieux.dev/milieux/internal/core/ports"
	"go.trai.ch/zerr"
)

// Provisioner implements ports.Provisioner using `uv venv`.
type Provisioner struct {
	runner ports.Runner
}

// NewProvisioner creates a provisioner backed by the uv CLI.
func NewProvisioner(runner ports.Runner) *Provisioner {
	return &Provisioner{runner: runner}
}

// Provision creates the environment's installation root and activation script.
func (p *Provisioner) Provision(ctx context.Context, env domain.Environment, opts domain.CreateEnvOptions) error {
	args := []string{"venv", env.Path}
	if opts.Seed {
		args = append(args, "--seed")
	}
	if opts.Python != "" {
		args = append(args, "--python", opts.Python)
	}
	if _, err := p.runner.Run(ctx, Binary, args, nil); err != nil {
		return zerr.With(errors.Join(domain.ErrProvisionFailed, err), "environment", env.Name)
	}
	return nil
}
