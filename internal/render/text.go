package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/valter-silva-au/workgraph/internal/graph"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

// Style definitions shared by the text renderer and the board view.
var (
	criticalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	bottleneckStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	completedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	blockedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	readyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	legendStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func errUnknownFormat(f Format) error {
	return fmt.Errorf("unknown format %q (use text, dot, or image)", f)
}

// renderText produces the tree listing: each selected root expanded through
// its selected dependents, with ASCII markers for critical path (*) and
// bottlenecks (!) so highlighting survives plain pipes alongside the colors.
func (r *Renderer) renderText(g *graph.Graph, selected map[string]bool, hl highlights) string {
	var b strings.Builder

	roots := textRoots(g, selected)
	visited := make(map[string]bool)
	for _, root := range roots {
		writeTree(&b, g, root, selected, hl, 0, visited)
	}

	b.WriteString(legendStyle.Render("legend: * critical path  ! bottleneck  [b] blocked"))
	b.WriteByte('\n')
	if len(hl.critical.Path) > 0 {
		b.WriteString(legendStyle.Render(fmt.Sprintf("critical path (%d edges): %s",
			hl.critical.Edges, strings.Join(hl.critical.Path, " -> "))))
		b.WriteByte('\n')
	}
	return b.String()
}

// textRoots returns the selected nodes with no selected dependency, the
// starting points of the tree listing.
func textRoots(g *graph.Graph, selected map[string]bool) []string {
	var roots []string
	for _, id := range sortedSet(selected) {
		hasSelectedDep := false
		for _, dep := range g.RevAdj[id] {
			if selected[dep] {
				hasSelectedDep = true
				break
			}
		}
		if !hasSelectedDep {
			roots = append(roots, id)
		}
	}
	return roots
}

// writeTree prints one node and recurses into its selected dependents.
// Nodes reached along multiple paths are printed again but not re-expanded.
func writeTree(b *strings.Builder, g *graph.Graph, id string, selected map[string]bool, hl highlights, depth int, visited map[string]bool) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(nodeLine(g.Items[id], hl))
	if visited[id] {
		b.WriteString("  (shown above)")
		b.WriteByte('\n')
		return
	}
	visited[id] = true
	b.WriteByte('\n')

	for _, dep := range g.Adj[id] {
		if selected[dep] {
			writeTree(b, g, dep, selected, hl, depth+1, visited)
		}
	}
}

// nodeLine formats a single item with its markers and styling.
func nodeLine(item *models.WorkItem, hl highlights) string {
	marker := " "
	if hl.critical.Contains(item.ID) {
		marker = "*"
	}
	bn := " "
	if hl.bottlenecks[item.ID] {
		bn = "!"
	}
	blocked := ""
	if hl.blocked[item.ID] {
		blocked = " [b]"
	}

	line := fmt.Sprintf("%s%s %s (%s/%s)%s %s", marker, bn, item.ID, item.Status, item.Priority, blocked, item.Title)

	switch {
	case hl.critical.Contains(item.ID):
		return criticalStyle.Render(line)
	case hl.bottlenecks[item.ID]:
		return bottleneckStyle.Render(line)
	case item.Status == models.StatusCompleted:
		return completedStyle.Render(line)
	case hl.blocked[item.ID]:
		return blockedStyle.Render(line)
	default:
		return line
	}
}
