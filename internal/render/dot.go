package render

import (
	"fmt"
	"strings"

	"github.com/valter-silva-au/workgraph/internal/graph"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

// renderDOT emits the selected subgraph in the DOT graph-description
// language, suitable for external layout tools. Critical-path nodes and
// edges are drawn bold red; bottlenecks get a doubled outline.
func renderDOT(g *graph.Graph, selected map[string]bool, hl highlights) string {
	var b strings.Builder
	b.WriteString("digraph workgraph {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, fontname=\"Helvetica\"];\n")

	for _, id := range sortedSet(selected) {
		item := g.Items[id]
		attrs := []string{
			fmt.Sprintf("label=%q", fmt.Sprintf("%s\n%s/%s", id, item.Status, item.Priority)),
		}
		switch item.Status {
		case models.StatusCompleted:
			attrs = append(attrs, "style=filled", "fillcolor=gray85")
		case models.StatusInProgress:
			attrs = append(attrs, "style=filled", "fillcolor=lightyellow")
		}
		if hl.critical.Contains(id) {
			attrs = append(attrs, "color=red", "penwidth=2")
		}
		if hl.bottlenecks[id] {
			attrs = append(attrs, "peripheries=2")
		}
		fmt.Fprintf(&b, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	criticalEdge := criticalEdgeSet(hl.critical)
	for _, from := range sortedSet(selected) {
		for _, to := range g.Adj[from] {
			if !selected[to] {
				continue
			}
			if criticalEdge[[2]string{from, to}] {
				fmt.Fprintf(&b, "  %q -> %q [color=red, penwidth=2];\n", from, to)
			} else {
				fmt.Fprintf(&b, "  %q -> %q;\n", from, to)
			}
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func criticalEdgeSet(cp graph.CriticalPath) map[[2]string]bool {
	set := make(map[[2]string]bool, len(cp.Path))
	for i := 0; i+1 < len(cp.Path); i++ {
		set[[2]string{cp.Path[i], cp.Path[i+1]}] = true
	}
	return set
}
