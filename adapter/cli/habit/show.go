package habit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/followthru/followthru/adapter/cli"
	"github.com/followthru/followthru/internal/habits/application/queries"
)

var showLogs int

var showCmd = &cobra.Command{
	Use:   "show [habit]",
	Short: "Show a habit with its history and lifetime stats",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		id, err := cli.FindHabitID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		habit, err := app.GetHabitHandler.Handle(cmd.Context(), queries.GetHabitQuery{HabitID: id})
		if err != nil {
			return fmt.Errorf("failed to load habit: %w", err)
		}

		fmt.Printf("%s\n", habit.Name)
		if habit.Description != "" {
			fmt.Printf("  %s\n", habit.Description)
		}
		fmt.Printf("  Kind: %s", habit.KPIKind)
		if habit.Target > 0 {
			fmt.Printf(" (target %g)", habit.Target)
		}
		fmt.Println()
		fmt.Printf("  Scheduled: %s", formatDays(habit.ScheduledDays))
		if habit.ScheduledTime != "" {
			fmt.Printf(" at %s", habit.ScheduledTime)
		}
		fmt.Println()
		fmt.Printf("  Streak: %d\n", habit.Streak)
		fmt.Printf("  Completions: %d (%d%% of logged days)\n", habit.TotalDone, habit.CompletionRate)

		if len(habit.Logs) == 0 || showLogs == 0 {
			return nil
		}

		fmt.Println("\nRecent days:")
		logs := habit.Logs
		if showLogs > 0 && len(logs) > showLogs {
			logs = logs[len(logs)-showLogs:]
		}
		for i := len(logs) - 1; i >= 0; i-- {
			l := logs[i]
			mark := "✗"
			if l.Completed {
				mark = "✓"
			}
			fmt.Printf("  %s %s", l.Day.Format("2006-01-02"), mark)
			if l.Value != nil {
				fmt.Printf(" (%g)", *l.Value)
			}
			if l.Note != "" {
				fmt.Printf("  %s", l.Note)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	showCmd.Flags().IntVar(&showLogs, "logs", 14, "how many recent days to show (0 hides history)")
}
