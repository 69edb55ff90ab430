package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/workgraph/internal/render"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

var (
	graphFormatFlag    string
	graphStatusFlag    []string
	graphTypeFlag      []string
	graphMilestoneFlag string
	graphFocusFlag     string
	graphRadiusFlag    int
	graphAllFlag       bool
	graphOutFlag       string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Render the dependency graph",
	Long: `Render the dependency graph as plain text (default), DOT graph
description, or a PNG image laid out by the external dot process.

Critical-path items and bottlenecks (items with two or more incomplete
dependents) are highlighted in every format. Completed items are hidden
unless --all is given. Use --focus with --radius to render only the
neighborhood of one item.

If the dot process is missing or fails, the command prints the DOT text
instead and exits with code 3.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Items == nil || Renderer == nil {
			return fmt.Errorf("renderer not initialized")
		}

		filters := render.Filters{
			Milestone:        graphMilestoneFlag,
			Focus:            graphFocusFlag,
			Radius:           graphRadiusFlag,
			IncludeCompleted: graphAllFlag,
		}
		for _, s := range graphStatusFlag {
			status := models.ItemStatus(s)
			if !status.IsValid() {
				return fmt.Errorf("invalid status %q", s)
			}
			filters.Status = append(filters.Status, status)
		}
		for _, t := range graphTypeFlag {
			itemType := models.ItemType(t)
			if !itemType.IsValid() {
				return fmt.Errorf("invalid type %q", t)
			}
			filters.Types = append(filters.Types, itemType)
		}

		snap, err := Items.Snapshot()
		if err != nil {
			return err
		}

		result, err := Renderer.Render(cmd.Context(), snap, render.Format(graphFormatFlag), filters, graphOutFlag)
		if err != nil {
			return err
		}

		if result.Message != "" {
			fmt.Fprintln(os.Stderr, result.Message)
		}
		if result.Text != "" {
			fmt.Print(result.Text)
		}
		if result.ImagePath != "" && result.RenderErr == nil {
			fmt.Printf("Wrote %s\n", result.ImagePath)
		}

		// Non-fatal, but reported: the caller sees exit code 3.
		if result.RenderErr != nil {
			return result.RenderErr
		}
		return nil
	},
}

func init() {
	graphCmd.Flags().StringVar(&graphFormatFlag, "format", "text", "Output format: text, dot, image")
	graphCmd.Flags().StringSliceVar(&graphStatusFlag, "status", nil, "Only these statuses (comma-separated)")
	graphCmd.Flags().StringSliceVar(&graphTypeFlag, "type", nil, "Only these item types (comma-separated)")
	graphCmd.Flags().StringVar(&graphMilestoneFlag, "milestone", "", "Only members of this milestone")
	graphCmd.Flags().StringVar(&graphFocusFlag, "focus", "", "Render only the neighborhood of this item")
	graphCmd.Flags().IntVar(&graphRadiusFlag, "radius", 1, "Neighborhood radius in hops around --focus")
	graphCmd.Flags().BoolVar(&graphAllFlag, "all", false, "Include completed items")
	graphCmd.Flags().StringVar(&graphOutFlag, "out", "workgraph.png", "Output file for --format image")
	_ = graphCmd.RegisterFlagCompletionFunc("focus", completeItemIDsFlag)
	rootCmd.AddCommand(graphCmd)
}
