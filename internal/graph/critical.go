package graph

import (
	"fmt"
	"sort"

	"github.com/valter-silva-au/workgraph/pkg/models"
)

// TopoOrder returns a topological ordering of all items using Kahn's
// algorithm, processing ready nodes in ascending id order so the result is
// reproducible. An error is returned if the graph contains a cycle.
func (g *Graph) TopoOrder() ([]string, error) {
	inDegree := make(map[string]int, len(g.Items))
	for id := range g.Items {
		inDegree[id] = len(g.RevAdj[id])
	}

	var queue []string
	for _, id := range sortedIDs(g.Items) {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	var order []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		var newReady []string
		for _, succ := range g.Adj[node] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				newReady = append(newReady, succ)
			}
		}
		sort.Strings(newReady)
		queue = append(queue, newReady...)
	}

	if len(order) != len(g.Items) {
		return nil, fmt.Errorf("topological sort: graph has a cycle (%d of %d items sorted)", len(order), len(g.Items))
	}
	return order, nil
}

// CriticalPath computes the longest chain of not-yet-completed items
// connected by dependency edges via dynamic programming over the
// topological order. With nil weights every item weighs 1, so the chain is
// measured in edge count; callers may supply per-item weights instead.
//
// Ties — equal-length chains ending at different items, or equal-length
// predecessors of the same item — are broken by ascending lexicographic id,
// so results are reproducible across runs with identical input.
func (g *Graph) CriticalPath(weights map[string]int) CriticalPath {
	order, err := g.TopoOrder()
	if err != nil {
		// Cyclic graphs never reach analysis: the Validator rejects them
		// before commit.
		return CriticalPath{}
	}

	weightOf := func(id string) int {
		if weights != nil {
			if w, ok := weights[id]; ok {
				return w
			}
		}
		return 1
	}
	incomplete := func(id string) bool {
		return g.Items[id].Status != models.StatusCompleted
	}

	dist := make(map[string]int, len(g.Items))
	bestPred := make(map[string]string, len(g.Items))

	for _, id := range order {
		if !incomplete(id) {
			continue
		}
		best := 0
		pred := ""
		// RevAdj is sorted ascending, and strict > keeps the first (lowest
		// id) predecessor on ties.
		for _, p := range g.RevAdj[id] {
			if !incomplete(p) {
				continue
			}
			if pred == "" || dist[p] > best {
				best = dist[p]
				pred = p
			}
		}
		dist[id] = best + weightOf(id)
		bestPred[id] = pred
	}

	// Scan ascending ids so equal-length chains resolve to the lowest end id.
	end := ""
	for _, id := range sortedIDs(g.Items) {
		if !incomplete(id) {
			continue
		}
		if end == "" || dist[id] > dist[end] {
			end = id
		}
	}
	if end == "" {
		return CriticalPath{}
	}

	var path []string
	for cur := end; cur != ""; cur = bestPred[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return CriticalPath{
		Path:   path,
		Edges:  len(path) - 1,
		Weight: dist[end],
	}
}
