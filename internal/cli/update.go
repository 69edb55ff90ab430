package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/workgraph/internal/core"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a work item",
	Long: `Apply a partial update to a work item. Only the flags you pass change.

Setting --urgent moves the single urgent flag here, clearing whoever held
it before. Completing an item clears its urgent flag. Changes to
dependencies or status revalidate the whole graph before anything is
written.

Examples:
  wg update feature_oauth_login --status in_progress
  wg update bug_token_refresh --urgent
  wg update feature_search --deps feature_index,feature_parser`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Items == nil {
			return fmt.Errorf("item manager not initialized")
		}

		var patch core.UpdatePatch
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			patch.Title = &v
		}
		if cmd.Flags().Changed("status") {
			v, _ := cmd.Flags().GetString("status")
			status := models.ItemStatus(v)
			patch.Status = &status
		}
		if cmd.Flags().Changed("priority") {
			v, _ := cmd.Flags().GetString("priority")
			priority := models.Priority(v)
			patch.Priority = &priority
		}
		if cmd.Flags().Changed("milestone") {
			v, _ := cmd.Flags().GetString("milestone")
			patch.Milestone = &v
		}
		if cmd.Flags().Changed("deps") {
			v, _ := cmd.Flags().GetStringSlice("deps")
			patch.Dependencies = &v
		}
		if cmd.Flags().Changed("urgent") {
			v, _ := cmd.Flags().GetBool("urgent")
			patch.Urgent = &v
		}
		if cmd.Flags().Changed("spec-ref") {
			v, _ := cmd.Flags().GetString("spec-ref")
			patch.SpecRef = &v
		}

		item, err := Items.Update(args[0], patch)
		if err != nil {
			return fmt.Errorf("updating %s: %w", args[0], err)
		}

		fmt.Printf("Updated %s (status: %s, priority: %s", item.ID, item.Status, item.Priority)
		if item.Urgent {
			fmt.Print(", urgent")
		}
		fmt.Println(")")
		return nil
	},
}

var deleteDetachFlag, deleteCascadeFlag bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a work item",
	Long: `Delete a work item. If other items depend on it, the delete is refused
and the dependents are listed; re-run with --detach to drop the dependency
edges, or --cascade to delete the dependents too.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Items == nil {
			return fmt.Errorf("item manager not initialized")
		}
		if deleteDetachFlag && deleteCascadeFlag {
			return fmt.Errorf("--detach and --cascade are mutually exclusive")
		}

		mode := core.DeleteAbort
		if deleteDetachFlag {
			mode = core.DeleteDetach
		}
		if deleteCascadeFlag {
			mode = core.DeleteCascade
		}

		removed, err := Items.Delete(args[0], mode)
		if err != nil {
			return err
		}

		fmt.Printf("Deleted %s\n", strings.Join(removed, ", "))
		return nil
	},
}

func init() {
	updateCmd.Flags().String("title", "", "New title")
	updateCmd.Flags().String("status", "", "New status (not_started, in_progress, completed)")
	updateCmd.Flags().String("priority", "", "New priority (critical, high, medium, low)")
	updateCmd.Flags().String("milestone", "", "Milestone id to join (empty to leave)")
	updateCmd.Flags().StringSlice("deps", nil, "Replacement dependency list (comma-separated ids)")
	updateCmd.Flags().Bool("urgent", false, "Set or clear the urgent override")
	updateCmd.Flags().String("spec-ref", "", "Reference to external spec content")
	updateCmd.ValidArgsFunction = completeItemIDs()
	_ = updateCmd.RegisterFlagCompletionFunc("status", completeStatuses)
	_ = updateCmd.RegisterFlagCompletionFunc("priority", completePriorities)
	_ = updateCmd.RegisterFlagCompletionFunc("deps", completeItemIDsFlag)

	deleteCmd.Flags().BoolVar(&deleteDetachFlag, "detach", false, "Remove the item from its dependents' dependency lists")
	deleteCmd.Flags().BoolVar(&deleteCascadeFlag, "cascade", false, "Also delete every transitive dependent")
	deleteCmd.ValidArgsFunction = completeItemIDs()

	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
}
