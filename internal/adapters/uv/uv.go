// Package uv adapts the uv command-line tool as the external resolver,
// installer and environment provisioner.
package uv

import (
	"go.milieux.dev/milieux/internal/core/domain"
)

// Binary is the name of the uv executable looked up on PATH.
const Binary = "uv"

// indexArgs translates index configuration into uv flags. Extra indexes are
// checked in order, with priority over the default index.
func indexArgs(index domain.IndexConfig) []string {
	var args []string
	if index.DefaultIndexURL != "" {
		args = append(args, "--default-index", index.DefaultIndexURL)
	}
	for _, url := range index.IndexURLs {
		args = append(args, "--index", url)
	}
	return args
}

// venvEnv returns the extra environment pointing uv at an installation root.
func venvEnv(env domain.Environment) []string {
	return []string{"VIRTUAL_ENV=" + env.Path}
}
