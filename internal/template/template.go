// Package template substitutes a declared set of variables into text while
// leaving every other construct untouched.
package template

import (
	"os"
	"regexp"

	"go.trai.ch/zerr"
)

// placeholderRe recognizes only the double-brace placeholder dialect.
// Shell variable references ($NAME, ${NAME}), command substitution and
// control syntax can never match, so rendered shell text stays executable.
var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Render substitutes bound variables into {{ NAME }} placeholders. An
// unbound placeholder is left verbatim, not an error: templates may carry
// placeholders meant for a later stage.
func Render(text string, vars map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholderRe.FindStringSubmatch(match)[1]
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}

// RenderFile reads a template file and renders it.
func RenderFile(path string, vars map[string]string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to read template"), "path", path)
	}
	return Render(string(data), vars), nil
}
