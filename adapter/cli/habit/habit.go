// Package habit holds the habit management subcommands.
package habit

import (
	"strings"

	"github.com/spf13/cobra"
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage habits",
	Long:  `Create, inspect, update, and log outcomes for habits.`,
}

// NewCommand returns the habit command tree.
func NewCommand() *cobra.Command {
	habitCmd.AddCommand(createCmd)
	habitCmd.AddCommand(listCmd)
	habitCmd.AddCommand(showCmd)
	habitCmd.AddCommand(updateCmd)
	habitCmd.AddCommand(deleteCmd)
	habitCmd.AddCommand(doneCmd)
	habitCmd.AddCommand(skipCmd)
	return habitCmd
}

// formatDays renders weekday codes for display.
func formatDays(days []int) string {
	if len(days) == 0 {
		return "every day"
	}
	names := map[int]string{1: "Sun", 2: "Mon", 3: "Tue", 4: "Wed", 5: "Thu", 6: "Fri", 7: "Sat"}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = names[d]
	}
	return strings.Join(parts, ", ")
}
