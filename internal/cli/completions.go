package cli

import (
	"github.com/spf13/cobra"

	"github.com/valter-silva-au/workgraph/internal/core"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

// completeItemIDs returns a ValidArgsFunction completing work item ids,
// excluding items in any of the given statuses.
func completeItemIDs(exclude ...models.ItemStatus) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		if Items == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		items, err := Items.List(core.ItemFilter{}, core.SortByID)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var out []string
		for _, item := range items {
			skip := false
			for _, st := range exclude {
				if item.Status == st {
					skip = true
					break
				}
			}
			if !skip {
				out = append(out, item.ID+"\t"+item.Title)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeItemIDsFlag completes ids for flag values.
func completeItemIDsFlag(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeItemIDs()(cmd, args, toComplete)
}

func completeStatuses(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		"not_started\tWork not yet begun",
		"in_progress\tWork underway",
		"completed\tWork finished",
	}, cobra.ShellCompDirectiveNoFileComp
}

func completeTypes(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		"feature\tNew feature work",
		"bug\tBug fix",
		"refactor\tCode restructuring or cleanup",
		"security\tSecurity hardening",
		"integration_test\tCross-component testing",
		"deployment\tRelease or rollout work",
		"custom\tAnything else",
	}, cobra.ShellCompDirectiveNoFileComp
}

func completePriorities(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		"critical\tDrop everything else",
		"high\tNext in line",
		"medium\tNormal work",
		"low\tWhen time allows",
	}, cobra.ShellCompDirectiveNoFileComp
}
