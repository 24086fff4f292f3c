package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.milieux.dev/milieux/internal/adapters/config"
)

func (c *CLI) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the milieux configuration",
	}
	cmd.AddCommand(c.newConfigNewCmd())
	cmd.AddCommand(c.newConfigPathCmd())
	cmd.AddCommand(c.newConfigShowCmd())
	return cmd
}

// resolvedConfigPath is the config flag value, falling back to the default
// location. Config subcommands use this directly so they work before any
// config file exists.
func (c *CLI) resolvedConfigPath() (string, error) {
	if path := c.configPath(); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

func (c *CLI) newConfigNewCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Write a new default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := c.resolvedConfigPath()
			if err != nil {
				return err
			}
			cfg, err := config.Default()
			if err != nil {
				return err
			}
			if err := cfg.Write(path, force); err != nil {
				return err
			}
			c.logger.Info("wrote config file " + path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
	return cmd
}

func (c *CLI) newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := c.resolvedConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func (c *CLI) newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.configPath())
			if err != nil {
				return err
			}
			text, err := cfg.Render()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
