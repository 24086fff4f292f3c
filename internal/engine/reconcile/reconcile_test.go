package reconcile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.milieux.dev/milieux/internal/core/domain"
	"go.milieux.dev/milieux/internal/core/ports/mocks"
	"go.milieux.dev/milieux/internal/engine/reconcile"
	"go.uber.org/mock/gomock"
)

func mustSpec(t *testing.T, line string) domain.Specifier {
	t.Helper()
	spec, err := domain.ParseSpecifier(line)
	require.NoError(t, err)
	return spec
}

func mustDistro(t *testing.T, name string, lines ...string) domain.Distro {
	t.Helper()
	d := domain.Distro{Name: name}
	for _, line := range lines {
		d.Specs = append(d.Specs, mustSpec(t, line))
	}
	return d
}

func setupReconcilerTest(t *testing.T) (*reconcile.Reconciler, *mocks.MockDistroStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDistroStore(ctrl)
	return reconcile.New(store), store
}

func TestResolve_LaterSourceOverridesEarlier(t *testing.T) {
	r, store := setupReconcilerTest(t)
	store.EXPECT().Load("base").Return(mustDistro(t, "base", "A==1.0", "B==2.0"), nil)

	target, err := r.Resolve([]domain.Source{
		domain.DistroRef{Name: "base"},
		domain.Packages{Lines: []string{"A"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, target.Len())
	a, ok := target.Get("A")
	require.True(t, ok)
	assert.Equal(t, "A", a.String(), "unconstrained later entry replaces the earlier pin")
	b, ok := target.Get("B")
	require.True(t, ok)
	assert.Equal(t, "B==2.0", b.String())
}

func TestResolve_LastWriteWinsWithinSource(t *testing.T) {
	r, _ := setupReconcilerTest(t)

	target, err := r.Resolve([]domain.Source{
		domain.Packages{Lines: []string{"requests==1.0", "Requests==2.0"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, target.Len())
	spec, ok := target.Get("requests")
	require.True(t, ok)
	assert.Equal(t, "Requests==2.0", spec.String())
}

func TestResolve_SequentialFoldMatchesSingleFold(t *testing.T) {
	r, store := setupReconcilerTest(t)
	store.EXPECT().Load("s1").Return(mustDistro(t, "s1", "A==1", "B==1"), nil).Times(2)
	store.EXPECT().Load("s2").Return(mustDistro(t, "s2", "B==2", "C==2"), nil).Times(2)
	store.EXPECT().Load("s3").Return(mustDistro(t, "s3", "C==3"), nil).Times(2)

	all, err := r.Resolve([]domain.Source{
		domain.DistroRef{Name: "s1"},
		domain.DistroRef{Name: "s2"},
		domain.DistroRef{Name: "s3"},
	})
	require.NoError(t, err)

	// Folding the same sources pairwise in order gives the same winners.
	first, err := r.Resolve([]domain.Source{
		domain.DistroRef{Name: "s1"},
		domain.DistroRef{Name: "s2"},
	})
	require.NoError(t, err)
	var lines []string
	for _, spec := range first.Sorted() {
		lines = append(lines, spec.String())
	}
	second, err := r.Resolve([]domain.Source{
		domain.Packages{Lines: lines},
		domain.DistroRef{Name: "s3"},
	})
	require.NoError(t, err)

	assert.Equal(t, all.Sorted(), second.Sorted())
}

func TestResolve_MissingDistroFailsBeforeMerging(t *testing.T) {
	r, store := setupReconcilerTest(t)
	store.EXPECT().Load("good").Return(mustDistro(t, "good", "A==1.0"), nil)
	store.EXPECT().Load("missing").Return(domain.Distro{}, domain.ErrDistroNotFound)

	_, err := r.Resolve([]domain.Source{
		domain.DistroRef{Name: "good"},
		domain.DistroRef{Name: "missing"},
	})
	require.ErrorIs(t, err, domain.ErrSourceNotFound)
	require.ErrorIs(t, err, domain.ErrDistroNotFound)
}

func TestResolve_MissingRequirementsFile(t *testing.T) {
	r, _ := setupReconcilerTest(t)

	_, err := r.Resolve([]domain.Source{
		domain.RequirementsFile{Path: filepath.Join(t.TempDir(), "nope.txt")},
	})
	require.ErrorIs(t, err, domain.ErrSourceNotFound)
}

func TestResolve_RequirementsFile(t *testing.T) {
	r, _ := setupReconcilerTest(t)

	path := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("# deps\nflask==3.0.0\n\njinja2\n"), 0o644))

	target, err := r.Resolve([]domain.Source{domain.RequirementsFile{Path: path}})
	require.NoError(t, err)
	assert.Equal(t, []string{"flask", "jinja2"}, target.Names())
}

func TestResolve_BadPackageLine(t *testing.T) {
	r, _ := setupReconcilerTest(t)

	_, err := r.Resolve([]domain.Source{domain.Packages{Lines: []string{"requests=="}}})
	require.ErrorIs(t, err, domain.ErrInvalidSpecifier)
}

func TestResolve_NoSources(t *testing.T) {
	r, _ := setupReconcilerTest(t)

	_, err := r.Resolve(nil)
	require.ErrorIs(t, err, domain.ErrNoPackages)
}

func TestResolve_EmptySources(t *testing.T) {
	r, store := setupReconcilerTest(t)
	store.EXPECT().Load("empty").Return(domain.Distro{Name: "empty"}, nil)

	_, err := r.Resolve([]domain.Source{domain.DistroRef{Name: "empty"}})
	require.ErrorIs(t, err, domain.ErrNoPackages)
}
