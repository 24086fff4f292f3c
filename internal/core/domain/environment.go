package domain

import (
	"path/filepath"
	"time"
)

// Environment is a named, isolated package-installation root owned by the
// external provisioning tool. The installed set is never stored here; it is
// queried on demand and treated as ephemeral ground truth.
type Environment struct {
	// Name uniquely identifies the environment.
	Name string

	// Path is the environment's installation root directory.
	Path string
}

// BinPath returns the path to the environment's bin directory.
func (e Environment) BinPath() string {
	return filepath.Join(e.Path, "bin")
}

// ActivatePath returns the path to the environment's activation script.
func (e Environment) ActivatePath() string {
	return filepath.Join(e.BinPath(), "activate")
}

// ConfigPath returns the path to the environment's pyvenv.cfg file.
func (e Environment) ConfigPath() string {
	return filepath.Join(e.Path, "pyvenv.cfg")
}

// InstalledPackage is one (name, version) pair reported by the freeze query.
type InstalledPackage struct {
	Name    string
	Version string
}

// EnvInfo holds details about an environment for display.
type EnvInfo struct {
	Name          string   `json:"name"`
	Path          string   `json:"path"`
	CreatedAt     string   `json:"created_at"`
	PythonVersion string   `json:"python_version,omitempty"`
	Packages      []string `json:"packages,omitempty"`
}

// CreateEnvOptions carries options for provisioning a new environment.
type CreateEnvOptions struct {
	// Seed installs seed packages (pip, setuptools, wheel) into the new environment.
	Seed bool

	// Python selects the interpreter version; empty uses the one on PATH.
	Python string

	// Force replaces an existing environment of the same name.
	Force bool
}

// FormatCreatedAt formats an environment creation time for info output.
func FormatCreatedAt(t time.Time) string {
	return t.Format(time.RFC3339)
}
