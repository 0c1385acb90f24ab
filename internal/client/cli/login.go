package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/procure/internal/validation"
	"github.com/iudanet/procure/pkg/api"
)

// NewLoginCmd creates the "login" subcommand
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the server",
		RunE:  runLogin,
	}

	cmd.Flags().StringP("email", "e", "", "Account email")
	cmd.Flags().String("password-file", "", "Read password from file")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		email, err = readLine(cmd, "Email: ")
		if err != nil {
			return err
		}
	}

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	// Невалидная форма не уходит в сеть
	in := validation.LoginInput{Email: email, Password: password}
	if fe := app.Validate.Validate(in); fe != nil {
		printFieldErrors(cmd, fe)
		return fmt.Errorf("invalid input")
	}

	// Ошибка сервера (неверные учетные данные) показывается как есть
	user, err := app.Session.Login(cmd.Context(), api.LoginRequest{
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.UserName, user.Email)
	return nil
}
