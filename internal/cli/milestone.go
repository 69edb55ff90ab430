package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var milestoneCmd = &cobra.Command{
	Use:   "milestone",
	Short: "Manage milestones (create, list, show, add, remove)",
	Long: `Group work items into milestones. A milestone's progress is always
recomputed from its members' current statuses, never stored.`,
}

var milestoneCreateCmd = &cobra.Command{
	Use:   "create <id> <title>",
	Short: "Create a new milestone",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Items == nil {
			return fmt.Errorf("item manager not initialized")
		}
		ms, err := Items.CreateMilestone(args[0], args[1])
		if err != nil {
			return fmt.Errorf("creating milestone: %w", err)
		}
		fmt.Printf("Created milestone %s: %s\n", ms.ID, ms.Title)
		return nil
	},
}

var milestoneListCmd = &cobra.Command{
	Use:   "list",
	Short: "List milestones with computed progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Items == nil {
			return fmt.Errorf("item manager not initialized")
		}
		milestones, err := Items.Milestones()
		if err != nil {
			return err
		}
		if len(milestones) == 0 {
			fmt.Println("No milestones defined.")
			return nil
		}
		for _, ms := range milestones {
			progress, err := Items.MilestoneProgress(ms.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%-20s %3.0f%% (%d/%d) %s\n",
				ms.ID, progress.Percent(), progress.Completed, progress.Total, ms.Title)
		}
		return nil
	},
}

var milestoneShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a milestone and its members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Items == nil {
			return fmt.Errorf("item manager not initialized")
		}
		progress, err := Items.MilestoneProgress(args[0])
		if err != nil {
			return err
		}
		milestones, err := Items.Milestones()
		if err != nil {
			return err
		}
		for _, ms := range milestones {
			if ms.ID != args[0] {
				continue
			}
			fmt.Printf("%s: %s\n", ms.ID, ms.Title)
			fmt.Printf("  Progress: %.0f%% (%d of %d completed)\n",
				progress.Percent(), progress.Completed, progress.Total)
			if len(ms.Members) > 0 {
				fmt.Printf("  Members:  %s\n", strings.Join(ms.Members, ", "))
			}
			return nil
		}
		return nil
	},
}

var milestoneAddCmd = &cobra.Command{
	Use:   "add <milestone-id> <item-id>",
	Short: "Add a work item to a milestone",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Items == nil {
			return fmt.Errorf("item manager not initialized")
		}
		if err := Items.AddToMilestone(args[0], args[1]); err != nil {
			return fmt.Errorf("adding to milestone: %w", err)
		}
		fmt.Printf("Added %s to %s\n", args[1], args[0])
		return nil
	},
}

var milestoneRemoveCmd = &cobra.Command{
	Use:   "remove <milestone-id> <item-id>",
	Short: "Remove a work item from a milestone",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Items == nil {
			return fmt.Errorf("item manager not initialized")
		}
		if err := Items.RemoveFromMilestone(args[0], args[1]); err != nil {
			return fmt.Errorf("removing from milestone: %w", err)
		}
		fmt.Printf("Removed %s from %s\n", args[1], args[0])
		return nil
	},
}

func init() {
	milestoneAddCmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 1 {
			return completeItemIDs()(cmd, args, toComplete)
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	milestoneRemoveCmd.ValidArgsFunction = milestoneAddCmd.ValidArgsFunction

	milestoneCmd.AddCommand(milestoneCreateCmd)
	milestoneCmd.AddCommand(milestoneListCmd)
	milestoneCmd.AddCommand(milestoneShowCmd)
	milestoneCmd.AddCommand(milestoneAddCmd)
	milestoneCmd.AddCommand(milestoneRemoveCmd)
	rootCmd.AddCommand(milestoneCmd)
}
