package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List installed mods",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mods, err := c.app.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(mods) == 0 {
				cmd.Println("no mods installed")
				return nil
			}
			for _, mod := range mods {
				state := "enabled"
				if !mod.Enabled {
					state = "disabled"
				}
				id := mod.Manifest.Identifier()
				cmd.Printf("%s %s [%s]\n", id.Family(), id.Version, state)
			}
			return nil
		},
	}
}

func (c *CLI) newEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable <mod>",
		Short: "Enable an installed mod",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Enable(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) newDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <mod>",
		Short: "Disable an installed mod without removing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Disable(cmd.Context(), args[0])
		},
	}
}
