// Package commands implements the CLI commands for milieux.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.milieux.dev/milieux/internal/adapters/config"
	"go.milieux.dev/milieux/internal/adapters/fs"
	"go.milieux.dev/milieux/internal/adapters/shell"
	"go.milieux.dev/milieux/internal/adapters/uv"
	"go.milieux.dev/milieux/internal/app"
	"go.milieux.dev/milieux/internal/core/ports"
)

// CLI represents the command line interface for milieux.
type CLI struct {
	rootCmd *cobra.Command
	logger  ports.Logger

	// memoized application, built on first use from the config flag
	application *app.App
	cfg         *config.Config
}

// New creates a new CLI instance with the given logger.
func New(logger ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "milieux",
		Short:         "Manage distros and environments of package requirements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file")

	c := &CLI{
		rootCmd: rootCmd,
		logger:  logger,
	}

	rootCmd.AddCommand(c.newConfigCmd())
	rootCmd.AddCommand(c.newDistroCmd())
	rootCmd.AddCommand(c.newDocCmd())
	rootCmd.AddCommand(c.newEnvCmd())
	rootCmd.AddCommand(c.newScaffoldCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) configPath() string {
	path, _ := c.rootCmd.PersistentFlags().GetString("config")
	return path
}

// getApp loads the configuration and wires the adapters on first use.
func (c *CLI) getApp() (*app.App, error) {
	if c.application != nil {
		return c.application, nil
	}
	cfg, err := config.Load(c.configPath())
	if err != nil {
		return nil, err
	}

	runner := shell.NewRunner(c.logger)
	distros := fs.NewDistroStore(cfg.DistroRoot())
	envs := fs.NewEnvStore(cfg.EnvRoot(), uv.NewProvisioner(runner), c.logger)

	c.cfg = cfg
	c.application = app.New(
		cfg,
		distros,
		envs,
		uv.NewResolver(runner),
		uv.NewInstaller(runner),
		runner,
		c.logger,
	)
	return c.application, nil
}
