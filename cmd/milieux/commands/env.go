package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.milieux.dev/milieux/internal/app"
	"go.milieux.dev/milieux/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage environments",
	}
	cmd.AddCommand(c.newEnvActivateCmd())
	cmd.AddCommand(c.newEnvFreezeCmd())
	cmd.AddCommand(c.newEnvInstallCmd())
	cmd.AddCommand(c.newEnvListCmd())
	cmd.AddCommand(c.newEnvNewCmd())
	cmd.AddCommand(c.newEnvRemoveCmd())
	cmd.AddCommand(c.newEnvShowCmd())
	cmd.AddCommand(c.newEnvSyncCmd())
	cmd.AddCommand(c.newEnvUninstallCmd())
	return cmd
}

// envNameFlag registers the optional environment name flag; when omitted,
// the currently active environment is used.
func envNameFlag(cmd *cobra.Command, name *string) {
	cmd.Flags().StringVarP(name, "name", "n", "", "environment name (defaults to the active environment)")
}

func (c *CLI) newEnvNewCmd() *cobra.Command {
	var opts domain.CreateEnvOptions
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.getApp()
			if err != nil {
				return err
			}
			_, err = a.EnvCreate(cmd.Context(), args[0], opts)
			return err
		},
	}
	cmd.Flags().BoolVar(&opts.Seed, "seed", false, "install seed packages into the environment")
	cmd.Flags().StringVar(&opts.Python, "python", "", "Python version or executable to use")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "overwrite an existing environment")
	return cmd
}

func (c *CLI) newEnvListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the existing environments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.getApp()
			if err != nil {
				return err
			}
			names, err := a.EnvList()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "No environments exist.")
				return nil
			}
			fmt.Fprintln(out, "Environments:")
			for _, name := range names {
				fmt.Fprintln(out, "    "+name)
			}
			return nil
		},
	}
}

func (c *CLI) newEnvRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete an environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.getApp()
			if err != nil {
				return err
			}
			return a.EnvRemove(args[0])
		},
	}
}

func (c *CLI) newEnvShowCmd() *cobra.Command {
	var name string
	var listPackages bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show details about an environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.getApp()
			if err != nil {
				return err
			}
			info, err := a.EnvShow(cmd.Context(), name, listPackages)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), info)
			return nil
		},
	}
	envNameFlag(cmd, &name)
	cmd.Flags().BoolVar(&listPackages, "packages", false, "include the installed packages")
	return cmd
}

func (c *CLI) newEnvFreezeCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "freeze",
		Short: "Print the packages installed in an environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.getApp()
			if err != nil {
				return err
			}
			installed, err := a.EnvFreeze(cmd.Context(), name)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, pkg := range installed {
				fmt.Fprintf(out, "%s==%s\n", pkg.Name, pkg.Version)
			}
			return nil
		},
	}
	envNameFlag(cmd, &name)
	return cmd
}

func (c *CLI) newEnvActivateCmd() *cobra.Command {
	var name string
	var script bool
	var vars []string
	cmd := &cobra.Command{
		Use:   "activate",
		Short: "Print the command that activates an environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.getApp()
			if err != nil {
				return err
			}
			if script {
				bound, err := parseVars(vars)
				if err != nil {
					return err
				}
				text, err := a.EnvActivateScript(name, bound)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}
			command, err := a.EnvActivateCommand(name)
			if err != nil {
				return err
			}
			// Activation must happen in the caller's shell; print the
			// command for eval or copy-paste.
			fmt.Fprintln(cmd.OutOrStdout(), command)
			fmt.Fprintln(cmd.ErrOrStderr(), "\nTo activate the environment, run:\n\n  "+command+"\n\nTo deactivate it, run:\n\n  deactivate")
			return nil
		},
	}
	envNameFlag(cmd, &name)
	cmd.Flags().BoolVar(&script, "script", false, "print the activation script itself")
	cmd.Flags().StringArrayVar(&vars, "var", nil, "template variable to substitute, as KEY=VALUE")
	return cmd
}

// parseVars converts KEY=VALUE flag values into a substitution map.
func parseVars(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, zerr.With(zerr.New("malformed variable, expected KEY=VALUE"), "var", pair)
		}
		vars[key] = value
	}
	return vars, nil
}

func (c *CLI) newEnvInstallCmd() *cobra.Command {
	var name string
	var sources sourceFlags
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install packages into an environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.getApp()
			if err != nil {
				return err
			}
			return a.Install(cmd.Context(), name, app.BuildSources(sources.distros, sources.requirements, sources.packages))
		},
	}
	envNameFlag(cmd, &name)
	sources.register(cmd)
	return cmd
}

func (c *CLI) newEnvUninstallCmd() *cobra.Command {
	var name string
	var sources sourceFlags
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Uninstall packages from an environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.getApp()
			if err != nil {
				return err
			}
			return a.Uninstall(cmd.Context(), name, app.BuildSources(sources.distros, sources.requirements, sources.packages))
		},
	}
	envNameFlag(cmd, &name)
	sources.register(cmd)
	return cmd
}

func (c *CLI) newEnvSyncCmd() *cobra.Command {
	var name string
	var sources sourceFlags
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Make an environment match a target set exactly",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.getApp()
			if err != nil {
				return err
			}
			return a.Sync(cmd.Context(), name, app.BuildSources(sources.distros, sources.requirements, sources.packages))
		},
	}
	envNameFlag(cmd, &name)
	sources.register(cmd)
	return cmd
}
