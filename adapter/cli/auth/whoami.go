package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/followthru/followthru/adapter/cli"
	"github.com/followthru/followthru/internal/identity/domain"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		user, err := app.Session.CurrentUser(cmd.Context())
		if errors.Is(err, domain.ErrNotAuthenticated) {
			fmt.Println("Not logged in. Run: followthru auth login")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load account: %w", err)
		}

		fmt.Printf("%s <%s>\n", user.DisplayName(), user.Email)
		return nil
	},
}
