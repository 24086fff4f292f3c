package domain

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// Distro is a named, ordered collection of package requirement specifiers.
// Order is preserved as authored; it only matters as last-defined-wins input
// to reconciliation, not as a priority among distinct packages.
type Distro struct {
	// Name uniquely identifies the distro within the registry.
	Name string

	// Specs is the ordered sequence of requirement specifiers.
	Specs []Specifier
}

var distroNameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateName checks that a distro or environment name is filesystem-safe.
func ValidateName(name string) error {
	if !distroNameRe.MatchString(name) {
		return zerr.With(ErrInvalidName, "name", name)
	}
	return nil
}

// Render serializes the distro as newline-delimited requirement lines with a
// trailing newline, the on-disk file format.
func (d Distro) Render() string {
	if len(d.Specs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, spec := range d.Specs {
		b.WriteString(spec.String())
		b.WriteString("\n")
	}
	return b.String()
}
