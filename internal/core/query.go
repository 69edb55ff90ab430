package core

import (
	"sort"

	"github.com/valter-silva-au/workgraph/internal/graph"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

// ItemFilter specifies read-only listing criteria. All specified fields use
// AND logic: an item must match every criterion.
type ItemFilter struct {
	Status      []models.ItemStatus
	Types       []models.ItemType
	Milestone   string
	BlockedOnly bool
}

// SortKey selects the ordering for listed items. All orderings fall back to
// ascending id as the secondary key.
type SortKey string

const (
	SortByID       SortKey = "id"
	SortByPriority SortKey = "priority"
	SortByStatus   SortKey = "status"
	SortByCreated  SortKey = "created"
	SortByUpdated  SortKey = "updated"
	SortByTitle    SortKey = "title"
)

// FilterItems returns the items matching the filter, ordered by the given
// key. It is a pure read over the snapshot: no side effects, no validation.
func FilterItems(snap *models.Snapshot, filter ItemFilter, key SortKey) []*models.WorkItem {
	var blocked map[string]bool
	if filter.BlockedOnly {
		blocked = make(map[string]bool)
		for _, id := range graph.Build(snap).BlockedSet() {
			blocked[id] = true
		}
	}

	var out []*models.WorkItem
	for _, id := range snap.SortedIDs() {
		item := snap.Items[id]
		if !matchesFilter(item, filter, blocked) {
			continue
		}
		out = append(out, item)
	}
	SortItems(out, key)
	return out
}

func matchesFilter(item *models.WorkItem, filter ItemFilter, blocked map[string]bool) bool {
	if len(filter.Status) > 0 && !containsStatus(filter.Status, item.Status) {
		return false
	}
	if len(filter.Types) > 0 && !containsType(filter.Types, item.Type) {
		return false
	}
	if filter.Milestone != "" && item.Milestone != filter.Milestone {
		return false
	}
	if filter.BlockedOnly && !blocked[item.ID] {
		return false
	}
	return true
}

// SortItems orders items in place by the given key, ascending id second.
// Priority sorts highest first; timestamps sort oldest first.
func SortItems(items []*models.WorkItem, key SortKey) {
	less := func(a, b *models.WorkItem) bool { return a.ID < b.ID }
	switch key {
	case SortByPriority:
		less = func(a, b *models.WorkItem) bool {
			if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
				return ra < rb
			}
			return a.ID < b.ID
		}
	case SortByStatus:
		less = func(a, b *models.WorkItem) bool {
			if a.Status != b.Status {
				return statusOrder(a.Status) < statusOrder(b.Status)
			}
			return a.ID < b.ID
		}
	case SortByCreated:
		less = func(a, b *models.WorkItem) bool {
			if !a.Created.Equal(b.Created) {
				return a.Created.Before(b.Created)
			}
			return a.ID < b.ID
		}
	case SortByUpdated:
		less = func(a, b *models.WorkItem) bool {
			if !a.Updated.Equal(b.Updated) {
				return a.Updated.Before(b.Updated)
			}
			return a.ID < b.ID
		}
	case SortByTitle:
		less = func(a, b *models.WorkItem) bool {
			if a.Title != b.Title {
				return a.Title < b.Title
			}
			return a.ID < b.ID
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

func statusOrder(s models.ItemStatus) int {
	for i, v := range models.ValidItemStatuses {
		if s == v {
			return i
		}
	}
	return len(models.ValidItemStatuses)
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
