package graph

// Three-state coloring for the iterative depth-first traversal.
const (
	white = iota // unvisited
	gray         // in progress
	black        // done
)

// DetectCycle returns the first dependency cycle found as an ordered id
// list with the starting id repeated at the end (e.g. [a, b, a]), or nil if
// the graph is acyclic. Traversal starts from ascending ids so the reported
// cycle is stable across runs.
//
// The traversal uses an explicit stack rather than recursion, so
// pathological dependency chains cannot exhaust call-stack depth.
func (g *Graph) DetectCycle() []string {
	color := make(map[string]int, len(g.Items))
	parent := make(map[string]string, len(g.Items))

	type frame struct {
		node string
		next int // index of the next neighbor to visit
	}

	for _, start := range sortedIDs(g.Items) {
		if color[start] != white {
			continue
		}

		stack := []frame{{node: start}}
		color[start] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors := g.Adj[top.node]

			if top.next < len(neighbors) {
				next := neighbors[top.next]
				top.next++
				switch color[next] {
				case gray:
					// Back-edge to an in-progress node: a cycle.
					return reconstructCycle(parent, top.node, next)
				case white:
					color[next] = gray
					parent[next] = top.node
					stack = append(stack, frame{node: next})
				}
				continue
			}

			color[top.node] = black
			stack = stack[:len(stack)-1]
		}
	}

	return nil
}

// reconstructCycle walks the parent chain from the node holding the
// back-edge up to the cycle entry, then reverses it into forward order and
// closes the loop by repeating the entry id.
func reconstructCycle(parent map[string]string, from, to string) []string {
	seq := []string{from}
	for cur := from; cur != to; {
		cur = parent[cur]
		seq = append(seq, cur)
	}
	for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
		seq[i], seq[j] = seq[j], seq[i]
	}
	return append(seq, to)
}
