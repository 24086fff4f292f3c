package domain

// Source is one input to reconciliation: a named distro, a literal list of
// requirement lines, or a requirements file path. The union is closed; the
// reconciler dispatches on the concrete type.
type Source interface {
	isSource()

	// Describe identifies the source in error messages.
	Describe() string
}

// DistroRef names a distro in the registry.
type DistroRef struct {
	Name string
}

// Packages is a literal list of requirement lines given directly by the caller.
type Packages struct {
	Lines []string
}

// RequirementsFile is a path to a newline-delimited requirements file.
type RequirementsFile struct {
	Path string
}

func (DistroRef) isSource()        {}
func (Packages) isSource()         {}
func (RequirementsFile) isSource() {}

// Describe identifies the distro by name.
func (s DistroRef) Describe() string { return "distro " + s.Name }

// Describe identifies the literal package list.
func (s Packages) Describe() string { return "packages" }

// Describe identifies the requirements file by path.
func (s RequirementsFile) Describe() string { return "requirements file " + s.Path }
