// Package app implements the application layer for milieux.
package app

import (
	"context"
	"encoding/json"

	"go.milieux.dev/milieux/internal/adapters/config"
	"go.milieux.dev/milieux/internal/adapters/fs"
	"go.milieux.dev/milieux/internal/core/domain"
	"go.milieux.dev/milieux/internal/core/ports"
	"go.milieux.dev/milieux/internal/docgen"
	"go.milieux.dev/milieux/internal/engine/driver"
	"go.milieux.dev/milieux/internal/engine/lock"
	"go.milieux.dev/milieux/internal/engine/reconcile"
	"go.milieux.dev/milieux/internal/scaffold"
	"go.milieux.dev/milieux/internal/template"
	"go.trai.ch/zerr"
)

// App ties the registries, engines and adapters together; one method per
// CLI operation.
type App struct {
	cfg        *config.Config
	distros    ports.DistroStore
	envs       *fs.EnvStore
	installer  ports.Installer
	runner     ports.Runner
	logger     ports.Logger
	reconciler *reconcile.Reconciler
	locker     *lock.Engine
	driver     *driver.Driver
}

// New creates an App instance.
func New(
	cfg *config.Config,
	distros ports.DistroStore,
	envs *fs.EnvStore,
	resolver ports.Resolver,
	installer ports.Installer,
	runner ports.Runner,
	logger ports.Logger,
) *App {
	reconciler := reconcile.New(distros)
	return &App{
		cfg:        cfg,
		distros:    distros,
		envs:       envs,
		installer:  installer,
		runner:     runner,
		logger:     logger,
		reconciler: reconciler,
		locker:     lock.New(resolver, logger),
		driver:     driver.New(reconciler, installer, cfg.Index(), logger),
	}
}

// BuildSources assembles reconciliation sources in override order: distros
// first, then requirement files, then explicit packages, so an explicit
// package always wins over a distro's pin for the same name.
func BuildSources(distros, requirements, packages []string) []domain.Source {
	var sources []domain.Source
	for _, name := range distros {
		sources = append(sources, domain.DistroRef{Name: name})
	}
	for _, path := range requirements {
		sources = append(sources, domain.RequirementsFile{Path: path})
	}
	if len(packages) > 0 {
		sources = append(sources, domain.Packages{Lines: packages})
	}
	return sources
}

// DistroList returns the existing distro names.
func (a *App) DistroList() ([]string, error) {
	return a.distros.List()
}

// DistroShow loads a distro and returns it with its content digest.
func (a *App) DistroShow(name string) (domain.Distro, string, error) {
	distro, err := a.distros.Load(name)
	if err != nil {
		return domain.Distro{}, "", err
	}
	return distro, fs.Digest(distro), nil
}

// DistroNew creates a distro from the reconciled sources. The target set's
// name-sorted specifiers become the distro's content.
func (a *App) DistroNew(name string, sources []domain.Source, force bool) error {
	target, err := a.reconciler.Resolve(sources)
	if err != nil {
		return err
	}
	a.logger.Info("creating distro " + name)
	distro := domain.Distro{Name: name, Specs: target.Sorted()}
	if err := a.distros.Save(distro, force); err != nil {
		return err
	}
	return nil
}

// DistroRemove deletes a distro.
func (a *App) DistroRemove(name string) error {
	a.logger.Info("deleting distro " + name)
	return a.distros.Remove(name)
}

// DistroLock pins a distro's specifiers to exact versions. With newName
// empty the original distro is overwritten; otherwise the locked result is
// saved under newName (replaced only when force is set).
func (a *App) DistroLock(ctx context.Context, name, newName string, force bool) error {
	distro, err := a.distros.Load(name)
	if err != nil {
		return err
	}
	locked, err := a.locker.Lock(ctx, distro, newName, a.cfg.Index())
	if err != nil {
		return err
	}
	overwrite := force || newName == ""
	return a.distros.Save(locked, overwrite)
}

// EnvList returns the existing environment names.
func (a *App) EnvList() ([]string, error) {
	return a.envs.List()
}

// EnvCreate provisions a new environment.
func (a *App) EnvCreate(ctx context.Context, name string, opts domain.CreateEnvOptions) (domain.Environment, error) {
	a.logger.Info("creating environment " + name)
	env, err := a.envs.Create(ctx, name, opts)
	if err != nil {
		return domain.Environment{}, err
	}
	a.logger.Info("activate with: source " + env.ActivatePath())
	return env, nil
}

// EnvRemove deletes an environment.
func (a *App) EnvRemove(name string) error {
	a.logger.Info("deleting environment " + name)
	return a.envs.Remove(name)
}

// EnvShow returns environment details as indented JSON.
func (a *App) EnvShow(ctx context.Context, name string, listPackages bool) (string, error) {
	env, err := a.envs.ResolveActive(name)
	if err != nil {
		return "", err
	}
	info, err := a.envs.Info(env)
	if err != nil {
		return "", err
	}
	if listPackages {
		installed, err := a.installer.Freeze(ctx, env)
		if err != nil {
			return "", err
		}
		for _, pkg := range installed {
			info.Packages = append(info.Packages, pkg.Name+"=="+pkg.Version)
		}
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return "", zerr.Wrap(err, "failed to encode environment info")
	}
	return string(data), nil
}

// EnvFreeze returns the environment's installed packages.
func (a *App) EnvFreeze(ctx context.Context, name string) ([]domain.InstalledPackage, error) {
	env, err := a.envs.ResolveActive(name)
	if err != nil {
		return nil, err
	}
	return a.installer.Freeze(ctx, env)
}

// EnvActivateCommand returns the shell command that activates the
// environment. Activation itself must happen in the caller's shell.
func (a *App) EnvActivateCommand(name string) (string, error) {
	env, err := a.envs.ResolveActive(name)
	if err != nil {
		return "", err
	}
	return "source " + env.ActivatePath(), nil
}

// EnvActivateScript returns the environment's activation script with the
// given variables injected. Only declared placeholders are substituted; the
// script's own shell syntax passes through untouched.
func (a *App) EnvActivateScript(name string, vars map[string]string) (string, error) {
	env, err := a.envs.ResolveActive(name)
	if err != nil {
		return "", err
	}
	return template.RenderFile(env.ActivatePath(), vars)
}

// Install reconciles the sources and installs the target set into the
// environment, leaving untargeted installed packages alone.
func (a *App) Install(ctx context.Context, envName string, sources []domain.Source) error {
	env, err := a.envs.ResolveActive(envName)
	if err != nil {
		return err
	}
	return a.driver.Install(ctx, env, sources)
}

// Uninstall reconciles the sources and removes the resulting packages.
func (a *App) Uninstall(ctx context.Context, envName string, sources []domain.Source) error {
	env, err := a.envs.ResolveActive(envName)
	if err != nil {
		return err
	}
	return a.driver.Uninstall(ctx, env, sources)
}

// Sync makes the environment's installed set match the reconciled target
// set exactly.
func (a *App) Sync(ctx context.Context, envName string, sources []domain.Source) error {
	env, err := a.envs.ResolveActive(envName)
	if err != nil {
		return err
	}
	return a.driver.Sync(ctx, env, sources)
}

// DocBuild scaffolds and builds the documentation site.
func (a *App) DocBuild(ctx context.Context, siteName, theme string, packages []string, allowMissing bool, outputDir string) error {
	setup, err := docgen.NewSetup(siteName, theme, packages, allowMissing, a.runner, a.logger)
	if err != nil {
		return err
	}
	return setup.Build(ctx, outputDir)
}

// DocServe scaffolds the documentation site and serves it live.
func (a *App) DocServe(ctx context.Context, siteName, theme string, packages []string, allowMissing bool, addr string, openBrowser bool) error {
	setup, err := docgen.NewSetup(siteName, theme, packages, allowMissing, a.runner, a.logger)
	if err != nil {
		return err
	}
	return setup.Serve(ctx, addr, openBrowser)
}

// Scaffold creates a new project skeleton in the current directory.
func (a *App) Scaffold(ctx context.Context, projectName, utility string) error {
	scaffolder, err := scaffold.ByName(utility, a.runner, a.logger)
	if err != nil {
		return err
	}
	a.logger.Info("creating new project " + projectName)
	return scaffolder.MakeScaffold(ctx, ".", projectName)
}
