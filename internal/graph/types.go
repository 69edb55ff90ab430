// Package graph implements the dependency graph engine: readiness and
// blocked-set derivation, cycle detection, bottleneck identification, and
// critical path analysis over a work item snapshot.
package graph

import "github.com/valter-silva-au/workgraph/pkg/models"

// Graph is the directed dependency graph of a snapshot. Edges point from a
// prerequisite to the items it unlocks: Adj[a] contains b when b depends on a.
type Graph struct {
	Items map[string]*models.WorkItem

	// Adj maps a dependency to its dependents; RevAdj maps an item to its
	// dependencies. Both lists are sorted ascending for deterministic walks.
	Adj    map[string][]string
	RevAdj map[string][]string

	// Roots have no dependencies within the graph; Leaves unlock nothing.
	Roots  []string
	Leaves []string
}

// CriticalPath is the longest chain of not-yet-completed items connected by
// dependency edges, ordered from chain start to chain end.
type CriticalPath struct {
	Path   []string
	Edges  int
	Weight int
}

// Contains reports whether id lies on the path.
func (cp CriticalPath) Contains(id string) bool {
	for _, p := range cp.Path {
		if p == id {
			return true
		}
	}
	return false
}
