package graph

import (
	"sort"

	"github.com/valter-silva-au/workgraph/pkg/models"
)

// Build constructs the dependency graph for a snapshot. Edges to ids that do
// not exist in the snapshot are skipped; the Validator rejects them before
// any commit, so Build stays total for display purposes.
func Build(snap *models.Snapshot) *Graph {
	g := &Graph{
		Items:  make(map[string]*models.WorkItem, len(snap.Items)),
		Adj:    make(map[string][]string),
		RevAdj: make(map[string][]string),
	}

	for id, item := range snap.Items {
		g.Items[id] = item
	}

	for id, item := range g.Items {
		for _, dep := range item.Dependencies {
			if _, ok := g.Items[dep]; !ok {
				continue
			}
			g.Adj[dep] = append(g.Adj[dep], id)
			g.RevAdj[id] = append(g.RevAdj[id], dep)
		}
	}

	for k := range g.Adj {
		sort.Strings(g.Adj[k])
	}
	for k := range g.RevAdj {
		sort.Strings(g.RevAdj[k])
	}

	for _, id := range sortedIDs(g.Items) {
		if len(g.RevAdj[id]) == 0 {
			g.Roots = append(g.Roots, id)
		}
		if len(g.Adj[id]) == 0 {
			g.Leaves = append(g.Leaves, id)
		}
	}

	return g
}

// IsReady reports whether every dependency of the item is completed.
// Items with no dependencies are ready by definition.
func (g *Graph) IsReady(id string) bool {
	item, ok := g.Items[id]
	if !ok {
		return false
	}
	for _, dep := range item.Dependencies {
		depItem, ok := g.Items[dep]
		if !ok || depItem.Status != models.StatusCompleted {
			return false
		}
	}
	return true
}

// BlockedSet returns all non-completed items with at least one incomplete
// dependency, in ascending id order.
func (g *Graph) BlockedSet() []string {
	var out []string
	for _, id := range sortedIDs(g.Items) {
		if g.Items[id].Status == models.StatusCompleted {
			continue
		}
		if !g.IsReady(id) {
			out = append(out, id)
		}
	}
	return out
}

// BlockingDeps returns the incomplete dependencies of an item, in ascending
// order. Empty for ready or unknown items.
func (g *Graph) BlockingDeps(id string) []string {
	item, ok := g.Items[id]
	if !ok {
		return nil
	}
	var out []string
	for _, dep := range item.Dependencies {
		if depItem, ok := g.Items[dep]; ok && depItem.Status != models.StatusCompleted {
			out = append(out, dep)
		}
	}
	sort.Strings(out)
	return out
}

// Bottlenecks returns items with two or more incomplete dependents, in
// ascending id order. A delayed bottleneck blocks the most future work.
func (g *Graph) Bottlenecks() []string {
	var out []string
	for _, id := range sortedIDs(g.Items) {
		incomplete := 0
		for _, dep := range g.Adj[id] {
			if g.Items[dep].Status != models.StatusCompleted {
				incomplete++
			}
		}
		if incomplete >= 2 {
			out = append(out, id)
		}
	}
	return out
}

func sortedIDs(items map[string]*models.WorkItem) []string {
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
