package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.milieux.dev/milieux/internal/app"
)

// sourceFlags are the shared flags naming reconciliation sources.
type sourceFlags struct {
	packages     []string
	requirements []string
	distros      []string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.packages, "packages", "p", nil, "packages to include")
	cmd.Flags().StringArrayVarP(&f.requirements, "requirements", "r", nil, "requirements files to include")
	cmd.Flags().StringArrayVarP(&f.distros, "distros", "d", nil, "distros to include")
}

func (c *CLI) newDistroCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distro",
		Short: "Manage distros (requirement collections)",
	}
	cmd.AddCommand(c.newDistroNewCmd())
	cmd.AddCommand(c.newDistroListCmd())
	cmd.AddCommand(c.newDistroLockCmd())
	cmd.AddCommand(c.newDistroRemoveCmd())
	cmd.AddCommand(c.newDistroShowCmd())
	return cmd
}

func (c *CLI) newDistroNewCmd() *cobra.Command {
	var sources sourceFlags
	var force bool
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new distro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.getApp()
			if err != nil {
				return err
			}
			return a.DistroNew(args[0], app.BuildSources(sources.distros, sources.requirements, sources.packages), force)
		},
	}
	sources.register(cmd)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing distro")
	return cmd
}

func (c *CLI) newDistroListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the existing distros",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.getApp()
			if err != nil {
				return err
			}
			names, err := a.DistroList()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "No distros exist.")
				return nil
			}
			fmt.Fprintln(out, "Distros:")
			for _, name := range names {
				fmt.Fprintln(out, "    "+name)
			}
			return nil
		},
	}
}

func (c *CLI) newDistroLockCmd() *cobra.Command {
	var newName string
	var force bool
	cmd := &cobra.Command{
		Use:   "lock <name>",
		Short: "Pin a distro's packages to exact versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.getApp()
			if err != nil {
				return err
			}
			return a.DistroLock(cmd.Context(), args[0], newName, force)
		},
	}
	cmd.Flags().StringVar(&newName, "new", "", "save the locked result as a new distro")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing distro of the new name")
	return cmd
}

func (c *CLI) newDistroRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a distro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.getApp()
			if err != nil {
				return err
			}
			return a.DistroRemove(args[0])
		},
	}
}

func (c *CLI) newDistroShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show the packages in a distro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.getApp()
			if err != nil {
				return err
			}
			distro, digest, err := a.DistroShow(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Distro %q (digest %s)\nPackages:\n", distro.Name, digest)
			for _, spec := range distro.Specs {
				fmt.Fprintln(out, spec.String())
			}
			return nil
		},
	}
}
