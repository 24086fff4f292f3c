package domain

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// Specifier is a single parsed requirement line: a package name with optional
// extras, version constraints and a direct URL or VCS reference.
type Specifier struct {
	// Name is the package name as written by the author.
	Name string

	// Extras is the optional list of extras (e.g. "[dev,test]").
	Extras []string

	// Constraints is the ordered list of version constraint clauses
	// (e.g. ">=1.0", "!=1.3"). Empty when URL is set.
	Constraints []Constraint

	// URL is an optional direct reference ("name @ https://..." form).
	URL string
}

// Constraint is a single version constraint clause.
type Constraint struct {
	// Op is the comparison operator ("==", "!=", "<=", ">=", "<", ">", "~=", "===").
	Op string

	// Version is the version expression the operator applies to.
	Version string
}

var (
	nameRe       = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?`)
	normalizeRe  = regexp.MustCompile(`[-_.]+`)
	constraintRe = regexp.MustCompile(`^(===|==|!=|<=|>=|~=|<|>)\s*([A-Za-z0-9.*+!_-]+)$`)
)

// NormalizeName converts a package name to its canonical form: lowercase,
// with runs of hyphens, underscores and dots collapsed to a single hyphen.
// Two specifiers refer to the same package iff their normalized names match.
func NormalizeName(name string) string {
	return normalizeRe.ReplaceAllString(strings.ToLower(name), "-")
}

// Key returns the specifier's identity within a target set.
func (s Specifier) Key() string {
	return NormalizeName(s.Name)
}

// ParseSpecifier parses a single requirement line. Empty input and comment
// text are rejected; skipping those lines is the reader's job.
func ParseSpecifier(line string) (Specifier, error) {
	text := strings.TrimSpace(line)
	if text == "" {
		return Specifier{}, zerr.With(ErrInvalidSpecifier, "reason", "empty line")
	}
	if strings.HasPrefix(text, "#") {
		return Specifier{}, zerr.With(zerr.With(ErrInvalidSpecifier, "reason", "comment line"), "line", line)
	}

	name := nameRe.FindString(text)
	if name == "" {
		return Specifier{}, zerr.With(zerr.With(ErrInvalidSpecifier, "reason", "missing package name"), "line", line)
	}
	spec := Specifier{Name: name}
	rest := strings.TrimSpace(text[len(name):])

	if strings.HasPrefix(rest, "[") {
		end := strings.Index(rest, "]")
		if end < 0 {
			return Specifier{}, zerr.With(zerr.With(ErrInvalidSpecifier, "reason", "unterminated extras"), "line", line)
		}
		for _, extra := range strings.Split(rest[1:end], ",") {
			extra = strings.TrimSpace(extra)
			if extra == "" {
				return Specifier{}, zerr.With(zerr.With(ErrInvalidSpecifier, "reason", "empty extra"), "line", line)
			}
			spec.Extras = append(spec.Extras, extra)
		}
		rest = strings.TrimSpace(rest[end+1:])
	}

	if rest == "" {
		return spec, nil
	}

	if strings.HasPrefix(rest, "@") {
		url := strings.TrimSpace(rest[1:])
		if url == "" || strings.ContainsAny(url, " \t") {
			return Specifier{}, zerr.With(zerr.With(ErrInvalidSpecifier, "reason", "malformed URL reference"), "line", line)
		}
		spec.URL = url
		return spec, nil
	}

	for _, clause := range strings.Split(rest, ",") {
		m := constraintRe.FindStringSubmatch(strings.TrimSpace(clause))
		if m == nil {
			return Specifier{}, zerr.With(zerr.With(ErrInvalidSpecifier, "reason", "malformed constraint"), "line", line)
		}
		spec.Constraints = append(spec.Constraints, Constraint{Op: m[1], Version: m[2]})
	}
	return spec, nil
}

// String renders the specifier in canonical form. Rendering then re-parsing
// yields an equal specifier; version-pinned specifiers round-trip exactly.
func (s Specifier) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	if len(s.Extras) > 0 {
		b.WriteString("[")
		b.WriteString(strings.Join(s.Extras, ","))
		b.WriteString("]")
	}
	if s.URL != "" {
		b.WriteString(" @ ")
		b.WriteString(s.URL)
		return b.String()
	}
	for i, c := range s.Constraints {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(c.Op)
		b.WriteString(c.Version)
	}
	return b.String()
}

// Pinned reports whether the specifier pins an exact version.
func (s Specifier) Pinned() bool {
	return len(s.Constraints) == 1 && s.Constraints[0].Op == "=="
}
