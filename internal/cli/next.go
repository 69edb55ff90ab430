package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var nextCountFlag int

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Recommend what to work on next",
	Long: `Recommend the next work item(s).

If an urgent, non-completed item exists it is returned alone, overriding
both dependency gating and priority ordering. Otherwise the ready items are
ranked by priority (ties broken by id) and the top --count are shown,
followed by a preview of the highest-priority blocked work and what is
blocking it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Items == nil || Sched == nil {
			return fmt.Errorf("scheduler not initialized")
		}

		snap, err := Items.Snapshot()
		if err != nil {
			return err
		}

		rec := Sched.Next(snap, nextCountFlag)

		if len(rec.Items) == 0 {
			fmt.Println("Nothing to recommend: no ready, non-completed items.")
		} else if rec.UrgentOverride {
			item := rec.Items[0]
			fmt.Printf("URGENT: %s (%s) %s\n", item.ID, item.Priority, item.Title)
		} else {
			fmt.Println("Recommended:")
			for i, item := range rec.Items {
				fmt.Printf("  %d. %s (%s) %s\n", i+1, item.ID, item.Priority, item.Title)
			}
		}

		if len(rec.BlockedPreview) > 0 {
			fmt.Println("\nBlocked:")
			for _, blocked := range rec.BlockedPreview {
				fmt.Printf("  %s (%s) waiting on %s\n",
					blocked.Item.ID, blocked.Item.Priority, strings.Join(blocked.BlockingDeps, ", "))
			}
		}
		return nil
	},
}

func init() {
	nextCmd.Flags().IntVar(&nextCountFlag, "count", 1, "Maximum number of recommendations")
	rootCmd.AddCommand(nextCmd)
}
