package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newScaffoldCmd() *cobra.Command {
	var utility string
	cmd := &cobra.Command{
		Use:   "scaffold <name>",
		Short: "Create a new project skeleton",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.getApp()
			if err != nil {
				return err
			}
			return a.Scaffold(cmd.Context(), args[0], utility)
		},
	}
	cmd.Flags().StringVar(&utility, "utility", "", "scaffolding utility to use (default hatch)")
	return cmd
}
