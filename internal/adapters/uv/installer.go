package uv

import (
	"context"
	"errors"
	"strings"

	"go.milieux.dev/milieux/internal/core/domain"
	"go.milieux.dev/milieux/internal/core/ports"
	"go.trai.ch/zerr"
)

// Installer implements ports.Installer using `uv pip`.
type Installer struct {
	runner ports.Runner
}

// NewInstaller creates an installer backed by the uv CLI.
func NewInstaller(runner ports.Runner) *Installer {
	return &Installer{runner: runner}
}

// Install installs the specifiers into the environment.
func (i *Installer) Install(ctx context.Context, env domain.Environment, specs []domain.Specifier, index domain.IndexConfig) error {
	if len(specs) == 0 {
		return nil
	}
	args := append([]string{"pip", "install"}, indexArgs(index)...)
	for _, spec := range specs {
		args = append(args, spec.String())
	}
	if _, err := i.runner.Run(ctx, Binary, args, venvEnv(env)); err != nil {
		return installerErr(err, env)
	}
	return nil
}

// Uninstall removes the named packages from the environment.
func (i *Installer) Uninstall(ctx context.Context, env domain.Environment, names []string) error {
	if len(names) == 0 {
		return nil
	}
	args := append([]string{"pip", "uninstall"}, names...)
	if _, err := i.runner.Run(ctx, Binary, args, venvEnv(env)); err != nil {
		return installerErr(err, env)
	}
	return nil
}

// Freeze returns the environment's installed (name, version) pairs.
func (i *Installer) Freeze(ctx context.Context, env domain.Environment) ([]domain.InstalledPackage, error) {
	result, err := i.runner.Run(ctx, Binary, []string{"pip", "freeze"}, venvEnv(env))
	if err != nil {
		return nil, installerErr(err, env)
	}
	return ParseFreeze(result.Stdout), nil
}

// ParseFreeze parses `uv pip freeze` output. Pinned lines take the
// "name==version" form; direct references take "name @ url".
func ParseFreeze(output string) []domain.InstalledPackage {
	var installed []domain.InstalledPackage
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if name, version, ok := strings.Cut(line, "=="); ok {
			installed = append(installed, domain.InstalledPackage{
				Name:    strings.TrimSpace(name),
				Version: strings.TrimSpace(version),
			})
			continue
		}
		if name, ref, ok := strings.Cut(line, "@"); ok {
			installed = append(installed, domain.InstalledPackage{
				Name:    strings.TrimSpace(name),
				Version: strings.TrimSpace(ref),
			})
		}
	}
	return installed
}

func installerErr(err error, env domain.Environment) error {
	return zerr.With(errors.Join(domain.ErrInstallerFailed, err), "environment", env.Name)
}
