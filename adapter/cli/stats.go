package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/followthru/followthru/internal/habits/application/queries"
)

var (
	statsHabit string
	statsYear  int
	statsMonth int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion statistics",
	Long: `Show statistics. Without --habit: an overview across all habits.
With --habit: that habit's numbers for a month, including the share of
logged days that were completed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()

		if statsHabit == "" {
			overview, err := app.OverviewStatsHandler.Handle(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to compute stats: %w", err)
			}
			fmt.Printf("Habits:            %d\n", overview.HabitCount)
			fmt.Printf("Best streak:       %d\n", overview.BestStreak)
			fmt.Printf("Total completions: %d\n", overview.TotalCompletions)
			return nil
		}

		id, err := FindHabitID(cmd.Context(), statsHabit)
		if err != nil {
			return err
		}

		now := time.Now()
		year, month := statsYear, time.Month(statsMonth)
		if year == 0 {
			year = now.Year()
		}
		if statsMonth == 0 {
			month = now.Month()
		} else if statsMonth < 1 || statsMonth > 12 {
			return fmt.Errorf("invalid --month %d", statsMonth)
		}

		stats, err := app.MonthlyStatsHandler.Handle(cmd.Context(), queries.MonthlyStatsQuery{
			HabitID: id,
			Year:    year,
			Month:   month,
		})
		if err != nil {
			return fmt.Errorf("failed to compute stats: %w", err)
		}

		fmt.Printf("%s %d\n", stats.Month, stats.Year)
		fmt.Printf("Logged days:       %d\n", stats.LoggedDays)
		fmt.Printf("Completed days:    %d\n", stats.CompletedDays)
		fmt.Printf("Completion rate:   %d%%\n", stats.CompletionRate)
		fmt.Printf("Current streak:    %d\n", stats.Streak)
		fmt.Printf("Total completions: %d\n", stats.TotalCompletions)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsHabit, "habit", "", "habit id or name (default: overview)")
	statsCmd.Flags().IntVar(&statsYear, "year", 0, "year (default: current)")
	statsCmd.Flags().IntVar(&statsMonth, "month", 0, "month 1-12 (default: current)")
	rootCmd.AddCommand(statsCmd)
}
