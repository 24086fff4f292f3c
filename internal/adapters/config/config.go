// Package config provides the TOML configuration for milieux.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.milieux.dev/milieux/internal/core/domain"
	"go.trai.ch/zerr"
)

// Config holds the process-wide settings: root directories for distros and
// environments plus package-index overrides. It is constructed once at
// startup and passed explicitly to every component that needs it.
type Config struct {
	// BaseDir is the workspace directory; relative entries resolve against it.
	BaseDir string `toml:"base_dir"`

	// EnvDir is the directory for environments (relative to BaseDir unless absolute).
	EnvDir string `toml:"env_dir"`

	// DistroDir is the directory for distro requirement files.
	DistroDir string `toml:"distro_dir"`

	// Pip holds package-index settings.
	Pip PipConfig `toml:"pip"`
}

// PipConfig configures the package indexes used by the resolver and installer.
type PipConfig struct {
	// DefaultIndexURL overrides the default package index.
	DefaultIndexURL string `toml:"default_index_url,omitempty"`

	// IndexURLs are additional indexes, checked in order with priority over
	// the default index.
	IndexURLs []string `toml:"index_urls,omitempty"`
}

// UserDir returns the per-user directory holding the config file.
func UserDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", zerr.Wrap(err, "failed to locate home directory")
	}
	return filepath.Join(home, ".config", "milieux"), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Default returns the default configuration rooted in the user directory.
func Default() (*Config, error) {
	dir, err := UserDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		BaseDir:   filepath.Join(dir, "workspace"),
		EnvDir:    "envs",
		DistroDir: "distros",
	}, nil
}

// Load reads the configuration from the given path, or from the default path
// when path is empty. A missing file is reported as domain.ErrConfigNotFound.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrConfigNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}
	return &cfg, nil
}

// Write saves the configuration as TOML. Refuses to replace an existing file
// unless overwrite is set.
func (c *Config) Write(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return zerr.With(zerr.New("config file already exists"), "path", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create config directory")
	}
	text, err := c.Render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil { //nolint:gosec // user config file
		return zerr.With(zerr.Wrap(err, "failed to write config file"), "path", path)
	}
	return nil
}

// Render encodes the configuration as TOML text.
func (c *Config) Render() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", zerr.Wrap(err, "failed to encode config")
	}
	return b.String(), nil
}

// DistroRoot returns the absolute distro registry directory.
func (c *Config) DistroRoot() string {
	return c.resolve(c.DistroDir)
}

// EnvRoot returns the absolute environment root directory.
func (c *Config) EnvRoot() string {
	return c.resolve(c.EnvDir)
}

// Index returns the package-index settings for the resolver and installer.
func (c *Config) Index() domain.IndexConfig {
	return domain.IndexConfig{
		DefaultIndexURL: c.Pip.DefaultIndexURL,
		IndexURLs:       c.Pip.IndexURLs,
	}
}

func (c *Config) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.BaseDir, dir)
}
