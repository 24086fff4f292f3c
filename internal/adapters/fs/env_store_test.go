package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.milieux.dev/milieux/internal/adapters/fs"
	"go.milieux.dev/milieux/internal/core/domain"
	"go.milieux.dev/milieux/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func setupEnvStoreTest(t *testing.T) (*fs.EnvStore, *mocks.MockProvisioner, string) {
	t.Helper()
	ctrl := gomock.NewController(t)
	provisioner := mocks.NewMockProvisioner(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	root := t.TempDir()
	return fs.NewEnvStore(root, provisioner, logger), provisioner, root
}

func TestEnvStore_CreateAndGet(t *testing.T) {
	store, provisioner, root := setupEnvStoreTest(t)

	provisioner.EXPECT().
		Provision(gomock.Any(), gomock.Any(), domain.CreateEnvOptions{}).
		DoAndReturn(func(_ context.Context, env domain.Environment, _ domain.CreateEnvOptions) error {
			return os.MkdirAll(env.Path, 0o750)
		})

	env, err := store.Create(context.Background(), "dev", domain.CreateEnvOptions{})
	require.NoError(t, err)
	assert.Equal(t, "dev", env.Name)
	assert.Equal(t, filepath.Join(root, "dev"), env.Path)

	got, err := store.Get("dev")
	require.NoError(t, err)
	assert.Equal(t, env, got)
}

func TestEnvStore_CreateExisting(t *testing.T) {
	store, provisioner, root := setupEnvStoreTest(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dev"), 0o750))

	_, err := store.Create(context.Background(), "dev", domain.CreateEnvOptions{})
	require.ErrorIs(t, err, domain.ErrEnvExists)

	// With Force the old directory is replaced before provisioning.
	provisioner.EXPECT().
		Provision(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, env domain.Environment, _ domain.CreateEnvOptions) error {
			return os.MkdirAll(env.Path, 0o750)
		})
	_, err = store.Create(context.Background(), "dev", domain.CreateEnvOptions{Force: true})
	require.NoError(t, err)
}

func TestEnvStore_CreateCleansUpOnFailure(t *testing.T) {
	store, provisioner, root := setupEnvStoreTest(t)

	provisioner.EXPECT().
		Provision(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, env domain.Environment, _ domain.CreateEnvOptions) error {
			require.NoError(t, os.MkdirAll(env.Path, 0o750))
			return zerr.New("provisioning blew up")
		})

	_, err := store.Create(context.Background(), "dev", domain.CreateEnvOptions{})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(root, "dev"))
	assert.ErrorIs(t, statErr, os.ErrNotExist, "partial environment must be removed")
}

func TestEnvStore_List(t *testing.T) {
	store, _, root := setupEnvStoreTest(t)

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	for _, name := range []string{"zeta", "alpha"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, name), 0o750))
	}
	// Plain files in the root are not environments.
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0o644))

	names, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names)
}

func TestEnvStore_GetMissing(t *testing.T) {
	store, _, _ := setupEnvStoreTest(t)

	_, err := store.Get("nope")
	require.ErrorIs(t, err, domain.ErrEnvNotFound)
}

func TestEnvStore_Remove(t *testing.T) {
	store, _, root := setupEnvStoreTest(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dev", "bin"), 0o750))

	require.NoError(t, store.Remove("dev"))
	_, err := os.Stat(filepath.Join(root, "dev"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.ErrorIs(t, store.Remove("dev"), domain.ErrEnvNotFound)
}

func TestEnvStore_ResolveActive(t *testing.T) {
	store, _, root := setupEnvStoreTest(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dev"), 0o750))

	// An explicit name wins over the environment variable.
	t.Setenv(fs.ActiveEnvVar, filepath.Join(root, "other"))
	env, err := store.ResolveActive("dev")
	require.NoError(t, err)
	assert.Equal(t, "dev", env.Name)

	// Without a name, the activation marker decides, even when the path is
	// outside the registry root.
	outside := t.TempDir()
	external := filepath.Join(outside, "project-venv")
	require.NoError(t, os.MkdirAll(external, 0o750))
	t.Setenv(fs.ActiveEnvVar, external)

	env, err = store.ResolveActive("")
	require.NoError(t, err)
	assert.Equal(t, "project-venv", env.Name)
	assert.Equal(t, external, env.Path)
}

func TestEnvStore_ResolveActiveNoMarker(t *testing.T) {
	store, _, _ := setupEnvStoreTest(t)
	t.Setenv(fs.ActiveEnvVar, "")

	_, err := store.ResolveActive("")
	require.ErrorIs(t, err, domain.ErrNoActiveEnvironment)
}

func TestEnvStore_ResolveActiveDanglingMarker(t *testing.T) {
	store, _, _ := setupEnvStoreTest(t)
	t.Setenv(fs.ActiveEnvVar, filepath.Join(t.TempDir(), "gone"))

	_, err := store.ResolveActive("")
	require.ErrorIs(t, err, domain.ErrEnvNotFound)
}

func TestEnvStore_PythonVersion(t *testing.T) {
	store, _, root := setupEnvStoreTest(t)
	envPath := filepath.Join(root, "dev")
	require.NoError(t, os.MkdirAll(envPath, 0o750))

	cfg := "home = /usr/bin\ninclude-system-site-packages = false\nversion_info = 3.12.1\n"
	require.NoError(t, os.WriteFile(filepath.Join(envPath, "pyvenv.cfg"), []byte(cfg), 0o644))

	env, err := store.Get("dev")
	require.NoError(t, err)

	version, err := store.PythonVersion(env)
	require.NoError(t, err)
	assert.Equal(t, "3.12.1", version)
}

func TestEnvStore_Info(t *testing.T) {
	store, _, root := setupEnvStoreTest(t)
	envPath := filepath.Join(root, "dev")
	require.NoError(t, os.MkdirAll(envPath, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(envPath, "pyvenv.cfg"), []byte("version_info = 3.11.8\n"), 0o644))

	env, err := store.Get("dev")
	require.NoError(t, err)

	info, err := store.Info(env)
	require.NoError(t, err)
	assert.Equal(t, "dev", info.Name)
	assert.Equal(t, envPath, info.Path)
	assert.Equal(t, "3.11.8", info.PythonVersion)
	assert.NotEmpty(t, info.CreatedAt)
}
