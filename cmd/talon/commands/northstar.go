package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newNorthstarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "northstar",
		Short: "Manage the Northstar loader installation",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "install",
		Short: "Install or update the Northstar loader in the game directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			version, err := c.app.InstallLoader(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("northstar %s installed\n", version)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "runtime",
		Short: "Install or update the compatibility-layer runtime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			version, err := c.app.InstallRuntime(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("runtime %s installed\n", version)
			return nil
		},
	})
	return cmd
}

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove cached download archives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Clean(cmd.Context())
		},
	}
}
