package cli

import (
	"github.com/valter-silva-au/workgraph/internal/core"
	"github.com/valter-silva-au/workgraph/internal/render"
)

// Package-level service dependencies, wired by internal.NewApp before
// Execute runs.
var (
	// BasePath is the data directory holding the snapshot document.
	BasePath string

	// Items is the mutation and lookup surface over the store.
	Items core.ItemManager

	// Sched recommends the next work items.
	Sched *core.Scheduler

	// Renderer exports the dependency graph.
	Renderer *render.Renderer

	// AppVersion mirrors the ldflags version for the MCP server.
	AppVersion string
)
