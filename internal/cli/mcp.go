package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/workgraph/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server on stdio",
	Long: `Start a Model Context Protocol server that exposes the work item engine
as tools (get_item, list_items, update_status, next_items, render_graph)
for AI coding assistants. The server speaks MCP over stdin/stdout and
runs until the client disconnects.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Items == nil || Sched == nil || Renderer == nil {
			return fmt.Errorf("services not initialized")
		}
		server := mcp.NewServer(Items, Sched, Renderer, AppVersion)
		return server.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
