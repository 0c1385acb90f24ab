package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the procure root command
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "procure",
		Short: "Procure dashboard client",
		Long:  "Procure - a terminal client for the purchase-management dashboard API.",
		// SilenceUsage prevents printing usage on every error
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file")
	cmd.PersistentFlags().String("server", "", "Server URL (overrides config)")
	cmd.PersistentFlags().String("db", "", "Path to local database (overrides config)")
	cmd.PersistentFlags().String("cookie-jar", "", "Path to cookie file (overrides config)")
	cmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	cmd.Version = version

	cmd.AddCommand(
		NewLoginCmd(),
		NewLogoutCmd(),
		NewStatusCmd(),
		NewProjectsCmd(),
		NewOrdersCmd(),
		NewInvoicesCmd(),
		NewMaterialsCmd(),
		NewSuppliersCmd(),
		NewInventoryCmd(),
	)

	return cmd
}
