package habit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/followthru/followthru/adapter/cli"
	"github.com/followthru/followthru/internal/habits/application/commands"
)

var (
	updateName        string
	updateDescription string
	updateKind        string
	updateTarget      float64
	updateDays        []int
	updateTime        string
)

var updateCmd = &cobra.Command{
	Use:   "update [habit]",
	Short: "Change a habit's settings",
	Long: `Change a habit's name, description, KPI, or schedule. Only the
flags you pass change; everything else stays as it is. Changing the
schedule recomputes the streak against the new set of days.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		id, err := cli.FindHabitID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		update := commands.UpdateHabitCommand{HabitID: id}
		if cmd.Flags().Changed("name") {
			update.Name = &updateName
		}
		if cmd.Flags().Changed("description") {
			update.Description = &updateDescription
		}
		if cmd.Flags().Changed("kind") {
			update.KPIKind = &updateKind
		}
		if cmd.Flags().Changed("target") {
			update.Target = &updateTarget
		}
		if cmd.Flags().Changed("days") {
			update.ScheduledDays = &updateDays
		}
		if cmd.Flags().Changed("at") {
			update.ScheduledTime = &updateTime
		}

		result, err := app.UpdateHabitHandler.Handle(cmd.Context(), update)
		if err != nil {
			return fmt.Errorf("failed to update habit: %w", err)
		}

		fmt.Printf("Updated habit %s (streak now %d)\n", result.HabitID, result.Streak)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateName, "name", "", "new name")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")
	updateCmd.Flags().StringVar(&updateKind, "kind", "", "new KPI kind (checkbox, duration, count)")
	updateCmd.Flags().Float64Var(&updateTarget, "target", 0, "new numeric target")
	updateCmd.Flags().IntSliceVar(&updateDays, "days", nil, "new scheduled weekdays, 1=Sunday..7=Saturday (empty list: every day)")
	updateCmd.Flags().StringVar(&updateTime, "at", "", "new time-of-day hint")
}
