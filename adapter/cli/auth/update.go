package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/followthru/followthru/adapter/cli"
	"github.com/followthru/followthru/internal/identity/application"
	"github.com/followthru/followthru/internal/identity/domain"
)

var (
	updateAccountName     string
	updateAccountEmail    string
	updateAccountPassword bool
)

var updateAccountCmd = &cobra.Command{
	Use:   "update",
	Short: "Change the account profile or password",
	Long: `Change the account name, email, or password. Changing the password
asks for the current one first; a wrong current password fails the
change but keeps you logged in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		var update application.ProfileUpdate
		if cmd.Flags().Changed("name") {
			update.Name = &updateAccountName
		}
		if cmd.Flags().Changed("email") {
			update.Email = &updateAccountEmail
		}
		if updateAccountPassword {
			current, err := promptPassword("Current password")
			if err != nil {
				return err
			}
			next, err := promptPassword("New password")
			if err != nil {
				return err
			}
			update.CurrentPassword = &current
			update.NewPassword = &next
		}

		if update.Name == nil && update.Email == nil && update.NewPassword == nil {
			return errors.New("nothing to change, pass --name, --email, or --password")
		}

		user, err := app.Session.UpdateProfile(cmd.Context(), update)
		if errors.Is(err, domain.ErrWrongPassword) {
			return fmt.Errorf("password unchanged: %w", err)
		}
		if errors.Is(err, domain.ErrNotAuthenticated) {
			return errors.New("session expired, run: followthru auth login")
		}
		if err != nil {
			return fmt.Errorf("update failed: %w", err)
		}

		fmt.Printf("Updated. Logged in as %s <%s>\n", user.DisplayName(), user.Email)
		return nil
	},
}

func init() {
	updateAccountCmd.Flags().StringVar(&updateAccountName, "name", "", "new display name")
	updateAccountCmd.Flags().StringVar(&updateAccountEmail, "email", "", "new email")
	updateAccountCmd.Flags().BoolVar(&updateAccountPassword, "password", false, "change the password (prompts)")
}
