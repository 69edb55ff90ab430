// Package cli implements the wg command surface over the work item engine.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
	AppVersion = version
}

var rootCmd = &cobra.Command{
	Use:   "wg",
	Short: "workgraph - work item dependency and scheduling engine",
	Long: `workgraph (wg) tracks a solo developer's planned work as a dependency
graph: it validates the graph on every change, derives which items are
blocked, recommends what to work on next, and renders the graph as text,
DOT, or an image.

Items live in a single YAML document next to your project; every mutation
is validated against the full graph before anything is written.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wg %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
