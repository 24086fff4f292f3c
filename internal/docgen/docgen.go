// Package docgen scaffolds and builds an API documentation site.
package docgen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"go.milieux.dev/milieux/internal/core/domain"
	"go.milieux.dev/milieux/internal/core/ports"
	"go.milieux.dev/milieux/internal/template"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultSiteName is used when no site name is given.
const DefaultSiteName = "API Docs"

// DefaultTheme is the default mkdocs theme.
const DefaultTheme = "readthedocs"

const indexTemplate = `# {{ SITE_NAME }}

API reference documentation.
`

const extraCSSTemplate = `div.doc-contents:not(.first) {
  padding-left: 25px;
  border-left: 4px solid rgba(230, 230, 230);
}
`

// Setup describes a documentation site to scaffold.
type Setup struct {
	// SiteName is the top-level page title.
	SiteName string

	// Theme is the mkdocs theme name.
	Theme string

	// Packages are paths to the packages to document.
	Packages []string

	// AllowMissing downgrades missing packages to warnings.
	AllowMissing bool

	runner ports.Runner
	logger ports.Logger
}

// NewSetup creates a documentation setup, validating that the listed
// packages exist. Missing packages fail with domain.ErrPackageNotFound
// unless allowMissing is set, in which case they are dropped with a warning.
func NewSetup(siteName, theme string, packages []string, allowMissing bool, runner ports.Runner, logger ports.Logger) (*Setup, error) {
	if siteName == "" {
		siteName = DefaultSiteName
	}
	if theme == "" {
		theme = DefaultTheme
	}
	var found []string
	for _, pkg := range packages {
		if _, err := os.Stat(pkg); err != nil {
			if allowMissing {
				logger.Warn("package not found, skipping: " + pkg)
				continue
			}
			return nil, zerr.With(domain.ErrPackageNotFound, "package", pkg)
		}
		found = append(found, pkg)
	}
	if len(found) == 0 {
		return nil, domain.ErrNoPackages
	}
	sort.Strings(found)
	return &Setup{
		SiteName:     siteName,
		Theme:        theme,
		Packages:     found,
		AllowMissing: allowMissing,
		runner:       runner,
		logger:       logger,
	}, nil
}

// mkdocsConfig is the structure written to mkdocs.yml.
type mkdocsConfig struct {
	SiteName string              `yaml:"site_name"`
	Theme    map[string]string   `yaml:"theme"`
	Plugins  []any               `yaml:"plugins"`
	ExtraCSS []string            `yaml:"extra_css"`
	Nav      []map[string]string `yaml:"nav"`
}

// RenderConfig renders the mkdocs.yml content.
func (s *Setup) RenderConfig() (string, error) {
	cfg := mkdocsConfig{
		SiteName: s.SiteName,
		Theme:    map[string]string{"name": s.Theme},
		Plugins: []any{
			"search",
			map[string]any{
				"mkdocstrings": map[string]any{
					"handlers": map[string]any{
						"python": map[string]any{
							"paths": s.Packages,
						},
					},
				},
			},
		},
		ExtraCSS: []string{"extra.css"},
		Nav:      []map[string]string{{"Home": "index.md"}},
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", zerr.Wrap(err, "failed to render mkdocs config")
	}
	return string(data), nil
}

// Scaffold writes mkdocs.yml, docs/index.md and docs/extra.css into the
// output directory and returns the config file path.
func (s *Setup) Scaffold(outputDir string) (string, error) {
	docsDir := filepath.Join(outputDir, "docs")
	if err := os.MkdirAll(docsDir, 0o750); err != nil {
		return "", zerr.Wrap(err, "failed to create docs directory")
	}

	configText, err := s.RenderConfig()
	if err != nil {
		return "", err
	}
	vars := map[string]string{
		"SITE_NAME": s.SiteName,
		"THEME":     s.Theme,
	}

	configPath := filepath.Join(outputDir, "mkdocs.yml")
	files := map[string]string{
		configPath:                          configText,
		filepath.Join(docsDir, "index.md"):  template.Render(indexTemplate, vars),
		filepath.Join(docsDir, "extra.css"): template.Render(extraCSSTemplate, vars),
	}
	for path, content := range files {
		s.logger.Info("writing " + path)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // site scaffold files
			return "", zerr.With(zerr.Wrap(err, "failed to write doc file"), "path", path)
		}
	}
	return configPath, nil
}

// Build scaffolds the site and runs the documentation generator.
func (s *Setup) Build(ctx context.Context, outputDir string) error {
	configPath, err := s.Scaffold(outputDir)
	if err != nil {
		return err
	}
	if _, err := s.runner.Run(ctx, "mkdocs", []string{"build", "-f", configPath}, nil); err != nil {
		return errors.Join(domain.ErrDocBuildFailed, err)
	}
	return nil
}

// Serve scaffolds the site into a temp directory and serves it live.
func (s *Setup) Serve(ctx context.Context, addr string, openBrowser bool) error {
	outputDir, err := os.MkdirTemp(".", "milieux-docs-")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp docs directory")
	}
	defer func() {
		_ = os.RemoveAll(outputDir)
	}()

	configPath, err := s.Scaffold(outputDir)
	if err != nil {
		return err
	}
	args := []string{"serve", "-f", configPath, "--dev-addr", addr}
	if openBrowser {
		args = append(args, "--open")
	}
	if _, err := s.runner.Run(ctx, "mkdocs", args, nil); err != nil {
		return errors.Join(domain.ErrDocBuildFailed, err)
	}
	return nil
}
