package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/followthru/followthru/adapter/cli"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if err := app.Session.Logout(); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}
