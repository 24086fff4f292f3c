package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// ParseRequirementLines parses newline-delimited requirement text, the
// format of distro files and requirements files. Blank lines and comment
// lines are tolerated and skipped; inline " # ..." trailers are stripped
// before parsing. This skipping is the reader's policy; ParseSpecifier
// itself still rejects empty and comment-only input.
func ParseRequirementLines(text string) ([]Specifier, error) {
	var specs []Specifier
	for i, line := range strings.Split(text, "\n") {
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		spec, err := ParseSpecifier(line)
		if err != nil {
			return nil, zerr.With(err, "line_number", i+1)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
