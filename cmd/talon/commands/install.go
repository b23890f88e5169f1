package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install <package>...",
		Short: "Install mods and their dependencies from the registry",
		Long: "Install one or more mods from the Thunderstore registry. Packages are\n" +
			"referenced as Author-ModName or Author-ModName-1.2.3 to pin a version.\n" +
			"Dependencies are resolved and installed first.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Install(cmd.Context(), args)
		},
	}
}

func (c *CLI) newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update installed mods to their latest registry versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			updated, err := c.app.Update(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range updated {
				cmd.Printf("updated %s\n", id.String())
			}
			return nil
		},
	}
}

func (c *CLI) newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall <package>...",
		Short: "Remove installed mods from disk",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Uninstall(cmd.Context(), args)
		},
	}
}
