package core

import (
	"sort"

	"github.com/valter-silva-au/workgraph/internal/graph"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

// BlockedItem pairs a blocked work item with the incomplete dependencies
// holding it back, giving visibility into near-term unblocks.
type BlockedItem struct {
	Item         *models.WorkItem
	BlockingDeps []string
}

// Recommendation is the result of a scheduling query: up to n recommended
// items plus a preview of the highest-priority blocked work.
type Recommendation struct {
	Items          []*models.WorkItem
	BlockedPreview []BlockedItem
	// UrgentOverride is set when an urgent item preempted normal ordering.
	UrgentOverride bool
}

// Scheduler selects the next recommended work items from a snapshot.
type Scheduler struct {
	previewLimit int
}

// NewScheduler creates a Scheduler reporting up to previewLimit blocked
// items per call. A non-positive limit falls back to 3.
func NewScheduler(previewLimit int) *Scheduler {
	if previewLimit <= 0 {
		previewLimit = 3
	}
	return &Scheduler{previewLimit: previewLimit}
}

// Next returns up to n recommended items. A non-completed urgent item is
// returned alone regardless of its readiness or priority: urgent overrides
// both dependency gating and priority ordering. Otherwise candidates are
// the ready, non-completed items sorted by priority descending, then by
// ascending id so equal priorities resolve identically across runs.
func (s *Scheduler) Next(snap *models.Snapshot, n int) Recommendation {
	if n <= 0 {
		n = 1
	}
	g := graph.Build(snap)
	rec := Recommendation{BlockedPreview: s.blockedPreview(snap, g)}

	for _, id := range snap.SortedIDs() {
		item := snap.Items[id]
		if item.Urgent && item.Status != models.StatusCompleted {
			rec.Items = []*models.WorkItem{item}
			rec.UrgentOverride = true
			return rec
		}
	}

	var candidates []*models.WorkItem
	for _, id := range snap.SortedIDs() {
		item := snap.Items[id]
		if item.Status == models.StatusCompleted {
			continue
		}
		if g.IsReady(id) {
			candidates = append(candidates, item)
		}
	}
	sortByPriorityThenID(candidates)

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	rec.Items = candidates
	return rec
}

// blockedPreview returns the top-K blocked items by priority together with
// the dependencies blocking each.
func (s *Scheduler) blockedPreview(snap *models.Snapshot, g *graph.Graph) []BlockedItem {
	blockedIDs := g.BlockedSet()
	blocked := make([]*models.WorkItem, 0, len(blockedIDs))
	for _, id := range blockedIDs {
		blocked = append(blocked, snap.Items[id])
	}
	sortByPriorityThenID(blocked)

	if len(blocked) > s.previewLimit {
		blocked = blocked[:s.previewLimit]
	}

	out := make([]BlockedItem, len(blocked))
	for i, item := range blocked {
		out[i] = BlockedItem{Item: item, BlockingDeps: g.BlockingDeps(item.ID)}
	}
	return out
}

func sortByPriorityThenID(items []*models.WorkItem) {
	sort.Slice(items, func(i, j int) bool {
		ri, rj := items[i].Priority.Rank(), items[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return items[i].ID < items[j].ID
	})
}
