package habit

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/followthru/followthru/adapter/cli"
	"github.com/followthru/followthru/internal/habits/application/queries"
)

var (
	listDueToday  bool
	listSortBy    string
	listSortOrder string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		habits, err := app.ListHabitsHandler.Handle(cmd.Context(), queries.ListHabitsQuery{
			OnlyDueToday: listDueToday,
			SortBy:       listSortBy,
			SortOrder:    listSortOrder,
		})
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}

		if len(habits) == 0 {
			fmt.Println("No habits yet. Create one with: followthru habit create")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSCHEDULE\tSTREAK\tTODAY\tID")
		for _, h := range habits {
			today := "-"
			if h.IsDueToday {
				today = "due"
				if h.CompletedToday {
					today = "done"
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", h.Name, formatDays(h.ScheduledDays), h.Streak, today, h.ID)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().BoolVar(&listDueToday, "due", false, "only habits scheduled today")
	listCmd.Flags().StringVar(&listSortBy, "sort", "", "sort by: name, streak, created_at")
	listCmd.Flags().StringVar(&listSortOrder, "order", "asc", "sort order: asc, desc")
}
