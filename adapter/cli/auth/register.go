package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/followthru/followthru/adapter/cli"
	"github.com/followthru/followthru/internal/identity/application"
)

var (
	registerEmail string
	registerName  string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		email := registerEmail
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

		user, err := app.Session.Register(cmd.Context(), application.Credentials{
			Email:    email,
			Password: password,
			Name:     registerName,
		})
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		fmt.Printf("Registered and logged in as %s\n", user.DisplayName())
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "account email")
	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "display name")
}
