// Package render exports the dependency graph as plain text, DOT graph
// description, or an image produced by an external graph-layout process.
package render

import (
	"context"
	"sort"

	"github.com/valter-silva-au/workgraph/internal/graph"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

// Format selects the rendering output.
type Format string

const (
	FormatText  Format = "text"
	FormatDOT   Format = "dot"
	FormatImage Format = "image"
)

// IsValid reports whether the format is one of the supported set.
func (f Format) IsValid() bool {
	return f == FormatText || f == FormatDOT || f == FormatImage
}

// Filters restricts which nodes are rendered. Zero-value fields are
// inactive. Focus limits the graph to nodes within Radius hops of one item.
type Filters struct {
	Status           []models.ItemStatus
	Types            []models.ItemType
	Milestone        string
	Focus            string
	Radius           int
	IncludeCompleted bool
}

// Result carries the rendering output. When the external image process is
// unavailable or fails, RenderErr holds the non-fatal RenderError and Text
// carries the DOT fallback instead.
type Result struct {
	Format    Format
	Text      string
	ImagePath string
	Message   string
	RenderErr error
}

// Renderer renders snapshots. Critical-path and bottleneck highlighting is
// computed once per render and shared across all formats.
type Renderer struct {
	dotBinary string
}

// New creates a Renderer that shells out to dotBinary for image output.
func New(dotBinary string) *Renderer {
	if dotBinary == "" {
		dotBinary = "dot"
	}
	return &Renderer{dotBinary: dotBinary}
}

// highlights is the shared analysis rendered into every format.
type highlights struct {
	critical    graph.CriticalPath
	bottlenecks map[string]bool
	blocked     map[string]bool
}

// Render produces the requested format for the filtered snapshot.
// imagePath names the output file for FormatImage and is ignored otherwise.
func (r *Renderer) Render(ctx context.Context, snap *models.Snapshot, format Format, filters Filters, imagePath string) (*Result, error) {
	if !format.IsValid() {
		return nil, &models.RenderError{Format: string(format), Err: errUnknownFormat(format)}
	}

	if len(snap.Items) == 0 {
		return &Result{Format: format, Message: "no work items exist yet"}, nil
	}

	selected, err := selectNodes(snap, filters)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return &Result{Format: format, Message: "no work items match the given filters"}, nil
	}

	// Analysis runs over the full snapshot so filtering never changes which
	// nodes count as critical or bottlenecked.
	g := graph.Build(snap)
	hl := highlights{
		critical:    g.CriticalPath(nil),
		bottlenecks: toSet(g.Bottlenecks()),
		blocked:     toSet(g.BlockedSet()),
	}

	switch format {
	case FormatText:
		return &Result{Format: FormatText, Text: r.renderText(g, selected, hl)}, nil
	case FormatDOT:
		return &Result{Format: FormatDOT, Text: renderDOT(g, selected, hl)}, nil
	default:
		return r.renderImage(ctx, g, selected, hl, imagePath)
	}
}

// selectNodes applies the filters and returns the rendered id set.
func selectNodes(snap *models.Snapshot, filters Filters) (map[string]bool, error) {
	var focusSet map[string]bool
	if filters.Focus != "" {
		if _, ok := snap.Items[filters.Focus]; !ok {
			return nil, &models.NotFoundError{ID: filters.Focus}
		}
		focusSet = neighborhood(snap, filters.Focus, filters.Radius)
	}

	selected := make(map[string]bool)
	for id, item := range snap.Items {
		if !filters.IncludeCompleted && item.Status == models.StatusCompleted {
			continue
		}
		if len(filters.Status) > 0 && !containsStatus(filters.Status, item.Status) {
			continue
		}
		if len(filters.Types) > 0 && !containsType(filters.Types, item.Type) {
			continue
		}
		if filters.Milestone != "" && item.Milestone != filters.Milestone {
			continue
		}
		if focusSet != nil && !focusSet[id] {
			continue
		}
		selected[id] = true
	}
	return selected, nil
}

// neighborhood returns all ids within radius hops of focus, treating
// dependency edges as undirected. Radius 0 selects only the focus item.
func neighborhood(snap *models.Snapshot, focus string, radius int) map[string]bool {
	g := graph.Build(snap)
	seen := map[string]bool{focus: true}
	frontier := []string{focus}
	for hop := 0; hop < radius; hop++ {
		var next []string
		for _, id := range frontier {
			for _, n := range append(append([]string(nil), g.Adj[id]...), g.RevAdj[id]...) {
				if !seen[n] {
					seen[n] = true
					next = append(next, n)
				}
			}
		}
		frontier = next
	}
	return seen
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func containsStatus(haystack []models.ItemStatus, needle models.ItemStatus) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsType(haystack []models.ItemType, needle models.ItemType) bool {
	for _, t := range haystack {
		if t == needle {
			return true
		}
	}
	return false
}
