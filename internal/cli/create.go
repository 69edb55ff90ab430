package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/workgraph/internal/core"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

var (
	createTypeFlag      string
	createPriorityFlag  string
	createMilestoneFlag string
	createDepsFlag      []string
	createSpecRefFlag   string
	createUrgentFlag    bool
)

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new work item",
	Long: `Create a new work item with the given title.

The item id is derived from the type and title (e.g. "feature_oauth_login")
and is immutable afterwards. Dependencies must name existing items and may
not introduce a cycle; the whole mutation is rejected otherwise.

Examples:
  wg create "OAuth login" --type feature --priority high
  wg create "Fix token refresh" --type bug --deps feature_oauth_login`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Items == nil {
			return fmt.Errorf("item manager not initialized")
		}

		item, err := Items.Create(core.CreateRequest{
			Type:         models.ItemType(createTypeFlag),
			Title:        args[0],
			Priority:     models.Priority(createPriorityFlag),
			Milestone:    createMilestoneFlag,
			Dependencies: createDepsFlag,
			SpecRef:      createSpecRefFlag,
			Urgent:       createUrgentFlag,
		})
		if err != nil {
			return fmt.Errorf("creating item: %w", err)
		}

		fmt.Printf("Created %s\n", item.ID)
		fmt.Printf("  Type:     %s\n", item.Type)
		fmt.Printf("  Priority: %s\n", item.Priority)
		if len(item.Dependencies) > 0 {
			fmt.Printf("  Deps:     %s\n", strings.Join(item.Dependencies, ", "))
		}
		if item.Milestone != "" {
			fmt.Printf("  Milestone: %s\n", item.Milestone)
		}
		if item.Urgent {
			fmt.Println("  Urgent:   yes")
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createTypeFlag, "type", "feature", "Item type: feature, bug, refactor, security, integration_test, deployment, custom")
	createCmd.Flags().StringVar(&createPriorityFlag, "priority", "", "Priority: critical, high, medium, low (default from config)")
	createCmd.Flags().StringVar(&createMilestoneFlag, "milestone", "", "Milestone id to join")
	createCmd.Flags().StringSliceVar(&createDepsFlag, "deps", nil, "Comma-separated ids this item depends on")
	createCmd.Flags().StringVar(&createSpecRefFlag, "spec-ref", "", "Reference to external spec content")
	createCmd.Flags().BoolVar(&createUrgentFlag, "urgent", false, "Mark as the single urgent item (clears any prior holder)")
	_ = createCmd.RegisterFlagCompletionFunc("type", completeTypes)
	_ = createCmd.RegisterFlagCompletionFunc("priority", completePriorities)
	_ = createCmd.RegisterFlagCompletionFunc("deps", completeItemIDsFlag)
	rootCmd.AddCommand(createCmd)
}
