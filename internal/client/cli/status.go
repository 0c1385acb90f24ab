package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/procure/internal/client/auth"
)

// NewStatusCmd creates the "status" subcommand
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show session state",
		RunE:  runStatus,
	}

	cmd.Flags().Bool("offline", false, "Inspect the stored token without contacting the server")

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	out := cmd.OutOrStdout()

	if offline, _ := cmd.Flags().GetBool("offline"); offline {
		token, tokenErr := app.Tokens.AccessToken(cmd.Context())
		if tokenErr != nil {
			fmt.Fprintln(out, "Not authenticated")
			return nil
		}
		return printTokenIdentity(cmd, token)
	}

	if app.Session.CheckAuth(cmd.Context()) != auth.StateAuthenticated {
		fmt.Fprintln(out, "Not authenticated")
		return nil
	}

	user := app.Session.User()
	fmt.Fprintf(out, "Authenticated as %s (%s), role %s\n", user.UserName, user.Email, user.Role)

	if token, tokenErr := app.Tokens.AccessToken(cmd.Context()); tokenErr == nil {
		if exp, expErr := auth.TokenExpiry(token); expErr == nil {
			fmt.Fprintf(out, "Access token expires %s\n", exp.Format("2006-01-02 15:04:05"))
		}
	}

	return nil
}

// printTokenIdentity renders the identity hint carried in the token
// claims. No network round trip: the claims are a local hint, not a
// verified profile.
func printTokenIdentity(cmd *cobra.Command, token string) error {
	user, err := auth.UserFromToken(token)
	if err != nil {
		return fmt.Errorf("stored token carries no identity: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Stored token for %s (%s), role %s\n", user.UserName, user.Email, user.Role)

	if exp, expErr := auth.TokenExpiry(token); expErr == nil {
		fmt.Fprintf(out, "Access token expires %s\n", exp.Format("2006-01-02 15:04:05"))
	}

	return nil
}
