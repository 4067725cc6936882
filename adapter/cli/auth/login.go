package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/followthru/followthru/adapter/cli"
	"github.com/followthru/followthru/internal/identity/application"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		email := loginEmail
		if email == "" {
			var err error
			email, err = promptLine("Email")
			if err != nil {
				return err
			}
		}
		password, err := promptPassword("Password")
		if err != nil {
			return err
		}

		user, err := app.Session.Login(cmd.Context(), application.Credentials{
			Email:    email,
			Password: password,
		})
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		fmt.Printf("Logged in as %s\n", user.DisplayName())
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
}
