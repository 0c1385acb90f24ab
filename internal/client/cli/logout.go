package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the "logout" subcommand
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and clear stored tokens",
		RunE:  runLogout,
	}
}

func runLogout(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	// Локальные токены очищаются даже при недоступном сервере
	if err := app.Session.Logout(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}
