package habit

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/followthru/followthru/adapter/cli"
	"github.com/followthru/followthru/internal/habits/application/commands"
)

var (
	doneValue float64
	doneNote  string
	doneDate  string
	skipNote  string
	skipDate  string
)

var doneCmd = &cobra.Command{
	Use:   "done [habit]",
	Short: "Record a completion for today (or --date)",
	Long: `Record a completion. Duration and count habits need --value; the
day counts as completed when the value meets the target. Recording a
second time for the same day replaces the earlier outcome.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		id, err := cli.FindHabitID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		record := commands.RecordCompletionCommand{
			HabitID: id,
			Note:    doneNote,
		}
		if cmd.Flags().Changed("value") {
			record.Value = &doneValue
		}
		if doneDate != "" {
			day, err := time.ParseInLocation("2006-01-02", doneDate, time.UTC)
			if err != nil {
				return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", doneDate)
			}
			record.Day = day
		}

		result, err := app.RecordCompletionHandler.Handle(cmd.Context(), record)
		if err != nil {
			return fmt.Errorf("failed to record completion: %w", err)
		}

		if result.Completed {
			fmt.Printf("Done. Streak: %d, total completions: %d\n", result.Streak, result.TotalDone)
		} else {
			fmt.Printf("Logged, but the value misses the target; the day counts as missed. Streak: %d\n", result.Streak)
		}
		return nil
	},
}

var skipCmd = &cobra.Command{
	Use:   "skip [habit]",
	Short: "Mark today (or --date) as explicitly skipped",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		id, err := cli.FindHabitID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		record := commands.RecordCompletionCommand{
			HabitID: id,
			Note:    skipNote,
			Skip:    true,
		}
		if skipDate != "" {
			day, err := time.ParseInLocation("2006-01-02", skipDate, time.UTC)
			if err != nil {
				return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", skipDate)
			}
			record.Day = day
		}

		result, err := app.RecordCompletionHandler.Handle(cmd.Context(), record)
		if err != nil {
			return fmt.Errorf("failed to record skip: %w", err)
		}

		fmt.Printf("Skipped. Streak: %d\n", result.Streak)
		return nil
	},
}

func init() {
	doneCmd.Flags().Float64Var(&doneValue, "value", 0, "measured value for duration/count habits")
	doneCmd.Flags().StringVarP(&doneNote, "note", "n", "", "note for the day")
	doneCmd.Flags().StringVar(&doneDate, "date", "", "day to record (YYYY-MM-DD, default today)")
	skipCmd.Flags().StringVarP(&skipNote, "note", "n", "", "note for the day")
	skipCmd.Flags().StringVar(&skipDate, "date", "", "day to record (YYYY-MM-DD, default today)")
}
