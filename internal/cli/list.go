package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/workgraph/internal/core"
	"github.com/valter-silva-au/workgraph/internal/graph"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

var (
	listStatusFlag    string
	listTypeFlag      string
	listMilestoneFlag string
	listBlockedFlag   bool
	listSortFlag      string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List work items",
	Long: `List work items as a table with derived blockedness.

Filters combine with AND logic. Use --blocked to show only items held back
by incomplete dependencies, and --sort to pick the ordering
(id, priority, status, created, updated, title).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Items == nil {
			return fmt.Errorf("item manager not initialized")
		}

		filter := core.ItemFilter{
			Milestone:   listMilestoneFlag,
			BlockedOnly: listBlockedFlag,
		}
		if listStatusFlag != "" {
			status := models.ItemStatus(listStatusFlag)
			if !status.IsValid() {
				return fmt.Errorf("invalid status %q", listStatusFlag)
			}
			filter.Status = []models.ItemStatus{status}
		}
		if listTypeFlag != "" {
			itemType := models.ItemType(listTypeFlag)
			if !itemType.IsValid() {
				return fmt.Errorf("invalid type %q", listTypeFlag)
			}
			filter.Types = []models.ItemType{itemType}
		}

		items, err := Items.List(filter, core.SortKey(listSortFlag))
		if err != nil {
			return fmt.Errorf("listing items: %w", err)
		}
		if len(items) == 0 {
			fmt.Println("No work items found.")
			return nil
		}

		snap, err := Items.Snapshot()
		if err != nil {
			return fmt.Errorf("listing items: %w", err)
		}
		g := graph.Build(snap)

		printItemTable(items, g)
		return nil
	},
}

// printItemTable prints the standard item listing with derived blockedness.
func printItemTable(items []*models.WorkItem, g *graph.Graph) {
	fmt.Printf("%-32s %-9s %-12s %-8s %s\n", "ID", "PRI", "STATUS", "URGENT", "TITLE")
	fmt.Printf("%-32s %-9s %-12s %-8s %s\n", "--", "---", "------", "------", "-----")
	for _, item := range items {
		status := string(item.Status)
		if item.Status != models.StatusCompleted && !g.IsReady(item.ID) {
			status += " (b)"
		}
		urgent := ""
		if item.Urgent {
			urgent = "yes"
		}
		fmt.Printf("%-32s %-9s %-12s %-8s %s\n", item.ID, item.Priority, status, urgent, item.Title)
	}
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one work item in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Items == nil {
			return fmt.Errorf("item manager not initialized")
		}

		item, err := Items.Get(args[0])
		if err != nil {
			return err
		}
		snap, err := Items.Snapshot()
		if err != nil {
			return err
		}
		g := graph.Build(snap)

		fmt.Printf("%s\n", item.ID)
		fmt.Printf("  Title:     %s\n", item.Title)
		fmt.Printf("  Type:      %s\n", item.Type)
		fmt.Printf("  Status:    %s\n", item.Status)
		fmt.Printf("  Priority:  %s\n", item.Priority)
		fmt.Printf("  Urgent:    %t\n", item.Urgent)
		if item.Milestone != "" {
			fmt.Printf("  Milestone: %s\n", item.Milestone)
		}
		if item.SpecRef != "" {
			fmt.Printf("  Spec:      %s\n", item.SpecRef)
		}
		if len(item.Dependencies) > 0 {
			fmt.Printf("  Deps:      %s\n", strings.Join(item.Dependencies, ", "))
		}
		if deps := g.BlockingDeps(item.ID); len(deps) > 0 {
			fmt.Printf("  Blocked by: %s\n", strings.Join(deps, ", "))
		} else if item.Status != models.StatusCompleted {
			fmt.Println("  Ready:     yes")
		}
		if dependents := snap.Dependents(item.ID); len(dependents) > 0 {
			fmt.Printf("  Unlocks:   %s\n", strings.Join(dependents, ", "))
		}
		fmt.Printf("  Created:   %s\n", item.Created.Format("2006-01-02 15:04"))
		fmt.Printf("  Updated:   %s\n", item.Updated.Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listStatusFlag, "status", "", "Filter by status (not_started, in_progress, completed)")
	listCmd.Flags().StringVar(&listTypeFlag, "type", "", "Filter by item type")
	listCmd.Flags().StringVar(&listMilestoneFlag, "milestone", "", "Filter by milestone id")
	listCmd.Flags().BoolVar(&listBlockedFlag, "blocked", false, "Only items blocked by incomplete dependencies")
	listCmd.Flags().StringVar(&listSortFlag, "sort", "id", "Sort key: id, priority, status, created, updated, title")
	_ = listCmd.RegisterFlagCompletionFunc("status", completeStatuses)
	_ = listCmd.RegisterFlagCompletionFunc("type", completeTypes)

	showCmd.ValidArgsFunction = completeItemIDs()

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
