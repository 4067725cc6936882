package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/followthru/followthru/internal/habits/application/queries"
	"github.com/followthru/followthru/internal/habits/domain"
)

var (
	calendarHabit string
	calendarYear  int
	calendarMonth int
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month as a grid of day statuses",
	Long: `Show a calendar month. Without --habit the grid aggregates all
habits: a day where every scheduled habit is done shows as completed,
a day where only some are shows as partial. With --habit the grid
shows that habit alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()

		now := time.Now()
		year, month := calendarYear, time.Month(calendarMonth)
		if year == 0 {
			year = now.Year()
		}
		if calendarMonth == 0 {
			month = now.Month()
		} else if calendarMonth < 1 || calendarMonth > 12 {
			return fmt.Errorf("invalid --month %d", calendarMonth)
		}

		query := queries.MonthStatusQuery{Year: year, Month: month}
		if calendarHabit != "" {
			id, err := FindHabitID(cmd.Context(), calendarHabit)
			if err != nil {
				return err
			}
			query.HabitID = &id
		}

		days, err := app.MonthStatusHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to load calendar: %w", err)
		}

		printMonthGrid(year, month, days)
		return nil
	},
}

func printMonthGrid(year int, month time.Month, days []queries.DayStatusDTO) {
	fmt.Printf("%s %d\n", month, year)
	fmt.Println("Su Mo Tu We Th Fr Sa")

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var line strings.Builder
	line.WriteString(strings.Repeat("   ", int(first.Weekday())))

	for _, d := range days {
		line.WriteString(fmt.Sprintf("%2s ", statusMark(d.Status)))
		if d.Day.Weekday() == time.Saturday {
			fmt.Println(strings.TrimRight(line.String(), " "))
			line.Reset()
		}
	}
	if line.Len() > 0 {
		fmt.Println(strings.TrimRight(line.String(), " "))
	}

	fmt.Println("\n✓ completed  ◐ partial  ✗ missed  · unscheduled  (blank: future)")
}

func statusMark(status domain.DayStatus) string {
	switch status {
	case domain.StatusCompleted:
		return "✓"
	case domain.StatusPartial:
		return "◐"
	case domain.StatusMissed:
		return "✗"
	case domain.StatusUnscheduled:
		return "·"
	default:
		return " "
	}
}

func init() {
	calendarCmd.Flags().StringVar(&calendarHabit, "habit", "", "habit id or name (default: all habits)")
	calendarCmd.Flags().IntVar(&calendarYear, "year", 0, "year (default: current)")
	calendarCmd.Flags().IntVar(&calendarMonth, "month", 0, "month 1-12 (default: current)")
	rootCmd.AddCommand(calendarCmd)
}
