package graph

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/valter-silva-au/workgraph/pkg/models"
)

// randomDAG draws a random acyclic snapshot: items get ascending ids and may
// only depend on lower-numbered items, so no draw can produce a cycle.
func randomDAG(rt *rapid.T) *models.Snapshot {
	n := rapid.IntRange(1, 30).Draw(rt, "n")
	snap := models.NewSnapshot()
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = fmt.Sprintf("item_%03d", i)
	}
	for i, id := range ids {
		var deps []string
		if i > 0 {
			deps = rapid.SliceOfNDistinct(rapid.SampledFrom(ids[:i]), 0, min(i, 4), rapid.ID[string]).Draw(rt, "deps")
		}
		status := rapid.SampledFrom(models.ValidItemStatuses).Draw(rt, "status")
		snap.Items[id] = &models.WorkItem{
			ID:           id,
			Type:         models.TypeFeature,
			Title:        id,
			Status:       status,
			Priority:     models.PriorityMedium,
			Dependencies: deps,
		}
	}
	return snap
}

// Every dependency must appear before its dependent in the topological order.
func TestProperty_TopoOrderRespectsDependencies(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		snap := randomDAG(rt)
		g := Build(snap)

		order, err := g.TopoOrder()
		if err != nil {
			t.Fatalf("unexpected error on acyclic graph: %v", err)
		}
		if len(order) != len(snap.Items) {
			t.Fatalf("order has %d items, snapshot has %d", len(order), len(snap.Items))
		}

		pos := make(map[string]int, len(order))
		for i, id := range order {
			pos[id] = i
		}
		for id, item := range snap.Items {
			for _, dep := range item.Dependencies {
				if pos[dep] >= pos[id] {
					t.Fatalf("dependency %s ordered after %s", dep, id)
				}
			}
		}
	})
}

// Acyclic inputs never report a cycle, and the reported critical path is a
// real dependency chain of incomplete items.
func TestProperty_CriticalPathIsIncompleteChain(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		snap := randomDAG(rt)
		g := Build(snap)

		if cycle := g.DetectCycle(); cycle != nil {
			t.Fatalf("cycle reported on acyclic graph: %v", cycle)
		}

		cp := g.CriticalPath(nil)
		for i, id := range cp.Path {
			item, ok := snap.Items[id]
			if !ok {
				t.Fatalf("path contains unknown id %s", id)
			}
			if item.Status == models.StatusCompleted {
				t.Fatalf("path contains completed item %s", id)
			}
			if i > 0 && !item.DependsOn(cp.Path[i-1]) {
				t.Fatalf("%s does not depend on its path predecessor %s", id, cp.Path[i-1])
			}
		}
		if len(cp.Path) > 0 && cp.Edges != len(cp.Path)-1 {
			t.Fatalf("edge count %d does not match path length %d", cp.Edges, len(cp.Path))
		}
	})
}

// Adding a dependency edge never shortens the critical path.
func TestProperty_AddingEdgeNeverShortensCriticalPath(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		snap := randomDAG(rt)
		if len(snap.Items) < 2 {
			rt.Skip("need two items for a new edge")
		}
		before := Build(snap).CriticalPath(nil)

		// Depending only on a lower-numbered item keeps the result acyclic,
		// the same rule randomDAG uses for its own edges.
		to := rapid.IntRange(1, len(snap.Items)-1).Draw(rt, "to")
		from := rapid.IntRange(0, to-1).Draw(rt, "from")
		dependent := snap.Items[fmt.Sprintf("item_%03d", to)]
		dep := fmt.Sprintf("item_%03d", from)
		if dependent.DependsOn(dep) {
			rt.Skip("edge already present")
		}
		dependent.Dependencies = append(dependent.Dependencies, dep)

		after := Build(snap).CriticalPath(nil)
		if after.Weight < before.Weight {
			t.Fatalf("adding edge %s -> %s shortened the critical path: %d -> %d",
				dep, dependent.ID, before.Weight, after.Weight)
		}
	})
}

// Completing an item never lengthens the critical path.
func TestProperty_CompletionNeverLengthensCriticalPath(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		snap := randomDAG(rt)
		before := Build(snap).CriticalPath(nil)

		var incomplete []string
		for id, item := range snap.Items {
			if item.Status != models.StatusCompleted {
				incomplete = append(incomplete, id)
			}
		}
		if len(incomplete) == 0 {
			rt.Skip("nothing to complete")
		}
		target := rapid.SampledFrom(incomplete).Draw(rt, "target")
		snap.Items[target].Status = models.StatusCompleted

		after := Build(snap).CriticalPath(nil)
		if after.Weight > before.Weight {
			t.Fatalf("completing %s lengthened the critical path: %d -> %d", target, before.Weight, after.Weight)
		}
	})
}

// The same snapshot always yields byte-identical analysis output.
func TestProperty_AnalysisIsDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		snap := randomDAG(rt)

		first := Build(snap).CriticalPath(nil)
		second := Build(snap).CriticalPath(nil)

		if fmt.Sprint(first) != fmt.Sprint(second) {
			t.Fatalf("analysis differs across runs: %v vs %v", first, second)
		}

		b1 := Build(snap).Bottlenecks()
		b2 := Build(snap).Bottlenecks()
		if fmt.Sprint(b1) != fmt.Sprint(b2) {
			t.Fatalf("bottlenecks differ across runs: %v vs %v", b1, b2)
		}
	})
}
