package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"go.milieux.dev/milieux/internal/core/domain"
	"go.milieux.dev/milieux/internal/core/ports"
	"go.trai.ch/zerr"
)

// ActiveEnvVar is the externally-maintained marker naming the currently
// active environment. Activation scripts set it; we only read it.
const ActiveEnvVar = "VIRTUAL_ENV"

var versionInfoRe = regexp.MustCompile(`version_info\s*=\s*(\d+\.\d+\.\d+)`)

// EnvStore manages named environments under a root directory. The
// installation roots themselves are owned by the external provisioning tool;
// this registry only names them, creates them through the provisioner and
// deletes them wholesale.
type EnvStore struct {
	root        string
	provisioner ports.Provisioner
	logger      ports.Logger
}

// NewEnvStore creates an environment registry rooted at the given directory.
func NewEnvStore(root string, provisioner ports.Provisioner, logger ports.Logger) *EnvStore {
	return &EnvStore{root: filepath.Clean(root), provisioner: provisioner, logger: logger}
}

// Root returns the registry's backing directory.
func (s *EnvStore) Root() string {
	return s.root
}

// List returns the existing environment names in lexicographic order.
func (s *EnvStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, "failed to read environment directory")
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Get returns the named environment, failing when it does not exist.
func (s *EnvStore) Get(name string) (domain.Environment, error) {
	if err := domain.ValidateName(name); err != nil {
		return domain.Environment{}, err
	}
	env := domain.Environment{Name: name, Path: filepath.Join(s.root, name)}
	if _, err := os.Stat(env.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Environment{}, zerr.With(domain.ErrEnvNotFound, "environment", name)
		}
		return domain.Environment{}, zerr.With(zerr.Wrap(err, "failed to stat environment"), "environment", name)
	}
	return env, nil
}

// Create provisions a new environment through the external tool. A partially
// provisioned directory is removed on failure so a failed create never
// leaves a half-built environment behind.
func (s *EnvStore) Create(ctx context.Context, name string, opts domain.CreateEnvOptions) (domain.Environment, error) {
	if err := domain.ValidateName(name); err != nil {
		return domain.Environment{}, err
	}
	env := domain.Environment{Name: name, Path: filepath.Join(s.root, name)}
	if _, err := os.Stat(env.Path); err == nil {
		if !opts.Force {
			return domain.Environment{}, zerr.With(domain.ErrEnvExists, "environment", name)
		}
		s.logger.Warn("environment already exists, overwriting: " + name)
		if err := os.RemoveAll(env.Path); err != nil {
			return domain.Environment{}, zerr.Wrap(err, "failed to remove existing environment")
		}
	}
	if err := os.MkdirAll(s.root, 0o750); err != nil {
		return domain.Environment{}, zerr.Wrap(err, "failed to create environment directory")
	}
	if err := s.provisioner.Provision(ctx, env, opts); err != nil {
		_ = os.RemoveAll(env.Path)
		return domain.Environment{}, err
	}
	return env, nil
}

// Remove deletes the named environment and everything under it.
func (s *EnvStore) Remove(name string) error {
	env, err := s.Get(name)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(env.Path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove environment"), "environment", name)
	}
	return nil
}

// ResolveActive returns the named environment, or when name is empty, the
// one identified by the activation side-channel.
func (s *EnvStore) ResolveActive(name string) (domain.Environment, error) {
	if name != "" {
		return s.Get(name)
	}
	active := os.Getenv(ActiveEnvVar)
	if active == "" {
		return domain.Environment{}, domain.ErrNoActiveEnvironment
	}
	// The side-channel is authoritative: honor the path even when it lives
	// outside the configured environment root.
	if _, err := os.Stat(active); err != nil {
		return domain.Environment{}, zerr.With(domain.ErrEnvNotFound, "environment", filepath.Base(active))
	}
	return domain.Environment{Name: filepath.Base(active), Path: active}, nil
}

// PythonVersion reads the environment's interpreter version from pyvenv.cfg.
func (s *EnvStore) PythonVersion(env domain.Environment) (string, error) {
	data, err := os.ReadFile(env.ConfigPath()) //nolint:gosec // path is rooted in the environment
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to read pyvenv.cfg"), "environment", env.Name)
	}
	m := versionInfoRe.FindSubmatch(data)
	if m == nil {
		return "", zerr.With(zerr.New("no version_info in pyvenv.cfg"), "environment", env.Name)
	}
	return string(m[1]), nil
}

// Info gathers display details for an environment.
func (s *EnvStore) Info(env domain.Environment) (domain.EnvInfo, error) {
	st, err := os.Stat(env.Path)
	if err != nil {
		return domain.EnvInfo{}, zerr.With(zerr.Wrap(err, "failed to stat environment"), "environment", env.Name)
	}
	info := domain.EnvInfo{
		Name:      env.Name,
		Path:      env.Path,
		CreatedAt: domain.FormatCreatedAt(st.ModTime()),
	}
	if version, err := s.PythonVersion(env); err == nil {
		info.PythonVersion = version
	}
	return info, nil
}
