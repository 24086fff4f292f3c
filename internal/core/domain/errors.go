package domain

import "go.trai.ch/zerr"

var (
	// ErrDistroNotFound is returned when a named distro does not exist in the registry.
	ErrDistroNotFound = zerr.New("no such distro")

	// ErrDistroExists is returned when saving a distro that already exists without overwrite.
	ErrDistroExists = zerr.New("distro already exists")

	// ErrEnvNotFound is returned when a named environment does not exist.
	ErrEnvNotFound = zerr.New("no such environment")

	// ErrEnvExists is returned when creating an environment that already exists without force.
	ErrEnvExists = zerr.New("environment already exists")

	// ErrNoActiveEnvironment is returned when no environment name is given and none is active.
	ErrNoActiveEnvironment = zerr.New("no active environment")

	// ErrSourceNotFound is returned when a reconciliation source (distro or
	// requirements file) cannot be read.
	ErrSourceNotFound = zerr.New("source not found")

	// ErrNoPackages is returned when reconciliation produces an empty target set.
	ErrNoPackages = zerr.New("no packages specified")

	// ErrInvalidSpecifier is returned when a requirement line cannot be parsed.
	ErrInvalidSpecifier = zerr.New("invalid specifier")

	// ErrInvalidName is returned when a distro or environment name contains
	// characters that are not filesystem-safe.
	ErrInvalidName = zerr.New("invalid name")

	// ErrUnresolvable is returned when the resolver reports a constraint conflict.
	ErrUnresolvable = zerr.New("unresolvable constraints")

	// ErrResolverFailed is returned when the external resolver process fails
	// or produces output that cannot be interpreted.
	ErrResolverFailed = zerr.New("resolver failed")

	// ErrInstallerFailed is returned when the external installer process fails.
	ErrInstallerFailed = zerr.New("installer failed")

	// ErrProvisionFailed is returned when the environment provisioning tool fails.
	ErrProvisionFailed = zerr.New("provisioning failed")

	// ErrConfigNotFound is returned when the user's config file cannot be loaded.
	ErrConfigNotFound = zerr.New("config not found")

	// ErrPackageNotFound is returned when a package to document cannot be located.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrDocBuildFailed is returned when the documentation generator fails.
	ErrDocBuildFailed = zerr.New("doc build failed")
)
