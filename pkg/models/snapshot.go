package models

import "sort"

// SnapshotMeta is the recomputed metadata block persisted alongside the
// items. It is derived from the item set on every save and never hand-edited.
type SnapshotMeta struct {
	Counts map[ItemStatus]int `yaml:"counts"`
}

// Snapshot is the full in-memory state of the work item store: every item
// and milestone, keyed by id. Components receive a snapshot explicitly;
// there is no ambient global state.
type Snapshot struct {
	Version    string                `yaml:"version"`
	Items      map[string]*WorkItem  `yaml:"items"`
	Milestones map[string]*Milestone `yaml:"milestones,omitempty"`
	Meta       SnapshotMeta          `yaml:"meta"`
}

// NewSnapshot returns an empty snapshot with initialized maps.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Version:    "1.0",
		Items:      make(map[string]*WorkItem),
		Milestones: make(map[string]*Milestone),
		Meta:       SnapshotMeta{Counts: make(map[ItemStatus]int)},
	}
}

// Clone returns a deep copy of the snapshot. Mutators build a proposed
// snapshot from a clone so a rejected validation leaves the original
// untouched.
func (s *Snapshot) Clone() *Snapshot {
	out := NewSnapshot()
	out.Version = s.Version
	for id, item := range s.Items {
		cp := *item
		cp.Dependencies = append([]string(nil), item.Dependencies...)
		out.Items[id] = &cp
	}
	for id, ms := range s.Milestones {
		cp := *ms
		cp.Members = append([]string(nil), ms.Members...)
		out.Milestones[id] = &cp
	}
	for st, n := range s.Meta.Counts {
		out.Meta.Counts[st] = n
	}
	return out
}

// SortedIDs returns all item ids in ascending lexicographic order, the
// canonical iteration order used for deterministic output.
func (s *Snapshot) SortedIDs() []string {
	ids := make([]string, 0, len(s.Items))
	for id := range s.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RecomputeMeta rebuilds the per-status counts from the current item set.
func (s *Snapshot) RecomputeMeta() {
	counts := make(map[ItemStatus]int)
	for _, item := range s.Items {
		counts[item.Status]++
	}
	s.Meta.Counts = counts
}

// Dependents returns the ids of items that list id as a direct dependency,
// in ascending order.
func (s *Snapshot) Dependents(id string) []string {
	var out []string
	for _, other := range s.SortedIDs() {
		if s.Items[other].DependsOn(id) {
			out = append(out, other)
		}
	}
	return out
}
