package habit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/followthru/followthru/adapter/cli"
	"github.com/followthru/followthru/internal/habits/application/commands"
)

var (
	createDescription string
	createKind        string
	createTarget      float64
	createDays        []int
	createTime        string
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new habit",
	Long: `Create a new habit to track.

KPI kinds:
  checkbox  - done or not done
  duration  - minutes against a target (requires --target)
  count     - repetitions against a target (requires --target)

Scheduled days use 1=Sunday through 7=Saturday; no --days means
every day.

Examples:
  followthru habit create "Morning meditation"
  followthru habit create "Run" --kind duration --target 30 --days 2,4,6
  followthru habit create "Glasses of water" --kind count --target 8`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		result, err := app.CreateHabitHandler.Handle(cmd.Context(), commands.CreateHabitCommand{
			Name:          args[0],
			Description:   createDescription,
			KPIKind:       createKind,
			Target:        createTarget,
			ScheduledDays: createDays,
			ScheduledTime: createTime,
		})
		if err != nil {
			return fmt.Errorf("failed to create habit: %w", err)
		}

		fmt.Printf("Created habit: %s\n", args[0])
		fmt.Printf("  ID: %s\n", result.HabitID)
		fmt.Printf("  Kind: %s\n", createKind)
		if createTarget > 0 {
			fmt.Printf("  Target: %g\n", createTarget)
		}
		fmt.Printf("  Scheduled: %s\n", formatDays(createDays))
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "habit description")
	createCmd.Flags().StringVarP(&createKind, "kind", "k", "checkbox", "KPI kind (checkbox, duration, count)")
	createCmd.Flags().Float64VarP(&createTarget, "target", "t", 0, "numeric target for duration/count habits")
	createCmd.Flags().IntSliceVar(&createDays, "days", nil, "scheduled weekdays, 1=Sunday..7=Saturday (default: every day)")
	createCmd.Flags().StringVar(&createTime, "at", "", "time-of-day hint, e.g. 07:00 (display only)")
}
