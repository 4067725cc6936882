package habit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/followthru/followthru/adapter/cli"
	"github.com/followthru/followthru/internal/habits/application/commands"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete [habit]",
	Short: "Delete a habit and its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		id, err := cli.FindHabitID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if !deleteYes {
			fmt.Printf("Delete habit %s and all of its logs? [y/N] ", args[0])
			var answer string
			_, _ = fmt.Scanln(&answer)
			if answer != "y" && answer != "Y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := app.DeleteHabitHandler.Handle(cmd.Context(), commands.DeleteHabitCommand{HabitID: id}); err != nil {
			return fmt.Errorf("failed to delete habit: %w", err)
		}

		fmt.Println("Deleted.")
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}
