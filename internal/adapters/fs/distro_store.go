// Package fs implements the filesystem-backed registries.
package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.milieux.dev/milieux/internal/core/domain"
	"go.trai.ch/zerr"
)

const distroExt = ".txt"

// DistroStore implements ports.DistroStore over a flat directory of
// requirement files, one file per distro.
type DistroStore struct {
	root string
}

// NewDistroStore creates a distro registry rooted at the given directory.
func NewDistroStore(root string) *DistroStore {
	return &DistroStore{root: filepath.Clean(root)}
}

// Root returns the registry's backing directory.
func (s *DistroStore) Root() string {
	return s.root
}

func (s *DistroStore) path(name string) string {
	return filepath.Join(s.root, name+distroExt)
}

// List returns the existing distro names in lexicographic order.
func (s *DistroStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, "failed to read distro directory")
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), distroExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), distroExt))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads a distro by name.
func (s *DistroStore) Load(name string) (domain.Distro, error) {
	if err := domain.ValidateName(name); err != nil {
		return domain.Distro{}, err
	}
	data, err := os.ReadFile(s.path(name)) //nolint:gosec // path is rooted in the registry directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Distro{}, zerr.With(domain.ErrDistroNotFound, "distro", name)
		}
		return domain.Distro{}, zerr.With(zerr.Wrap(err, "failed to read distro"), "distro", name)
	}
	specs, err := domain.ParseRequirementLines(string(data))
	if err != nil {
		return domain.Distro{}, zerr.With(err, "distro", name)
	}
	return domain.Distro{Name: name, Specs: specs}, nil
}

// Save writes a distro as a whole-file atomic replace: the content goes to a
// temp file in the registry directory which is then renamed over the target,
// so a crash mid-write never leaves a half-written distro. The temp file is
// removed on every failure path.
func (s *DistroStore) Save(distro domain.Distro, overwrite bool) error {
	if err := domain.ValidateName(distro.Name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.root, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create distro directory")
	}
	path := s.path(distro.Name)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return zerr.With(domain.ErrDistroExists, "distro", distro.Name)
		}
	}

	tmp, err := os.CreateTemp(s.root, "."+distro.Name+"-*.tmp")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp distro file")
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.WriteString(distro.Render()); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to write distro")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to close temp distro file")
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil { //nolint:gosec // requirement files are world-readable
		return zerr.Wrap(err, "failed to set distro file mode")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace distro"), "distro", distro.Name)
	}
	return nil
}

// Remove deletes a distro.
func (s *DistroStore) Remove(name string) error {
	if err := domain.ValidateName(name); err != nil {
		return err
	}
	if err := os.Remove(s.path(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(domain.ErrDistroNotFound, "distro", name)
		}
		return zerr.With(zerr.Wrap(err, "failed to remove distro"), "distro", name)
	}
	return nil
}

// Digest returns a short content digest of the distro's rendered form,
// useful for spotting drift between two registries.
func Digest(distro domain.Distro) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(distro.Render()))
}
