// Package driver installs and syncs reconciled target sets into environments.
package driver

import (
	"context"

	"go.milieux.dev/milieux/internal/core/domain"
	"go.milieux.dev/milieux/internal/core/ports"
	"go.milieux.dev/milieux/internal/engine/reconcile"
	"go.trai.ch/zerr"
)

// Driver computes target sets and drives the external installer.
type Driver struct {
	reconciler *reconcile.Reconciler
	installer  ports.Installer
	index      domain.IndexConfig
	logger     ports.Logger
}

// New creates a driver.
func New(reconciler *reconcile.Reconciler, installer ports.Installer, index domain.IndexConfig, logger ports.Logger) *Driver {
	return &Driver{reconciler: reconciler, installer: installer, index: index, logger: logger}
}

// Install reconciles the sources and installs exactly the target specifiers.
// Installed packages absent from the target set are left untouched.
func (d *Driver) Install(ctx context.Context, env domain.Environment, sources []domain.Source) error {
	target, err := d.reconciler.Resolve(sources)
	if err != nil {
		return err
	}
	d.logger.Info("installing dependencies into environment " + env.Name)
	if err := d.installer.Install(ctx, env, target.Sorted(), d.index); err != nil {
		return err
	}
	return nil
}

// Uninstall reconciles the sources and removes the resulting package names.
func (d *Driver) Uninstall(ctx context.Context, env domain.Environment, sources []domain.Source) error {
	target, err := d.reconciler.Resolve(sources)
	if err != nil {
		return err
	}
	d.logger.Info("uninstalling dependencies from environment " + env.Name)
	return d.installer.Uninstall(ctx, env, target.Names())
}

// Sync reconciles the sources, installs the target specifiers and then
// removes installed packages absent from the target set, leaving the
// environment matching the target exactly. Installing before removing means
// a failure partway never leaves a required package missing; a removal
// failure is reported but the completed install is not rolled back.
func (d *Driver) Sync(ctx context.Context, env domain.Environment, sources []domain.Source) error {
	target, err := d.reconciler.Resolve(sources)
	if err != nil {
		return err
	}

	installed, err := d.installer.Freeze(ctx, env)
	if err != nil {
		return err
	}
	var toRemove []string
	for _, pkg := range installed {
		name := domain.NormalizeName(pkg.Name)
		if _, ok := target.Get(name); !ok {
			toRemove = append(toRemove, name)
		}
	}

	d.logger.Info("syncing dependencies in environment " + env.Name)
	if err := d.installer.Install(ctx, env, target.Sorted(), d.index); err != nil {
		return err
	}
	if err := d.installer.Uninstall(ctx, env, toRemove); err != nil {
		return zerr.With(err, "stage", "remove extraneous")
	}
	return nil
}
