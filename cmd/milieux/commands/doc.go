package commands

import (
	"github.com/spf13/cobra"
)

// docFlags are the shared flags describing a documentation site.
type docFlags struct {
	siteName     string
	theme        string
	packages     []string
	allowMissing bool
}

func (f *docFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.siteName, "site-name", "", "top-level site title")
	cmd.Flags().StringVar(&f.theme, "theme", "", "site theme name")
	cmd.Flags().StringArrayVarP(&f.packages, "package", "p", nil, "paths to packages to document")
	cmd.Flags().BoolVar(&f.allowMissing, "allow-missing", false, "skip missing packages instead of failing")
}

func (c *CLI) newDocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Generate API documentation",
	}
	cmd.AddCommand(c.newDocBuildCmd())
	cmd.AddCommand(c.newDocServeCmd())
	return cmd
}

func (c *CLI) newDocBuildCmd() *cobra.Command {
	var flags docFlags
	var outputDir string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the documentation site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.getApp()
			if err != nil {
				return err
			}
			return a.DocBuild(cmd.Context(), flags.siteName, flags.theme, flags.packages, flags.allowMissing, outputDir)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "site", "directory to build the site in")
	return cmd
}

func (c *CLI) newDocServeCmd() *cobra.Command {
	var flags docFlags
	var addr string
	var noBrowser bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the documentation site locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.getApp()
			if err != nil {
				return err
			}
			return a.DocServe(cmd.Context(), flags.siteName, flags.theme, flags.packages, flags.allowMissing, addr, !noBrowser)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "dev-addr", "localhost:8000", "address to serve the site on")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "do not open the site in a browser")
	return cmd
}
