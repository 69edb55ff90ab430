package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/valter-silva-au/workgraph/internal/observability"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

// CreateMilestone registers an empty milestone.
func (m *itemManager) CreateMilestone(id, title string) (*models.Milestone, error) {
	if id == "" || title == "" {
		return nil, &models.ValidationError{Kind: models.ValidationBadField, Detail: "milestone id and title must not be empty"}
	}
	snap, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if _, exists := snap.Milestones[id]; exists {
		return nil, &models.ValidationError{Kind: models.ValidationDuplicateID, ItemID: id, Detail: "milestone already exists"}
	}

	ms := &models.Milestone{ID: id, Title: title}
	snap.Milestones[id] = ms
	if err := m.store.Save(snap); err != nil {
		return nil, err
	}
	m.logEvent(observability.EventMilestoneCreated, map[string]any{"id": id})
	return ms, nil
}

// AddToMilestone adds an item as a member. An item belongs to at most one
// milestone, so membership in a prior milestone is dropped first.
func (m *itemManager) AddToMilestone(milestoneID, itemID string) error {
	snap, err := m.store.Load()
	if err != nil {
		return err
	}
	item, ok := snap.Items[itemID]
	if !ok {
		return &models.NotFoundError{ID: itemID}
	}
	detachFromMilestone(snap, item)
	if err := attachToMilestone(snap, milestoneID, item); err != nil {
		return err
	}
	item.Updated = time.Now().UTC()
	if err := m.store.Save(snap); err != nil {
		return err
	}
	m.logEvent(observability.EventMilestoneChanged, map[string]any{"id": milestoneID, "added": itemID})
	return nil
}

// RemoveFromMilestone drops an item's membership.
func (m *itemManager) RemoveFromMilestone(milestoneID, itemID string) error {
	snap, err := m.store.Load()
	if err != nil {
		return err
	}
	item, ok := snap.Items[itemID]
	if !ok {
		return &models.NotFoundError{ID: itemID}
	}
	if _, ok := snap.Milestones[milestoneID]; !ok {
		return &models.NotFoundError{ID: milestoneID}
	}
	if item.Milestone != milestoneID {
		return &models.ValidationError{
			Kind:   models.ValidationBadField,
			ItemID: itemID,
			Detail: fmt.Sprintf("item is not a member of milestone %s", milestoneID),
		}
	}
	detachFromMilestone(snap, item)
	item.Updated = time.Now().UTC()
	if err := m.store.Save(snap); err != nil {
		return err
	}
	m.logEvent(observability.EventMilestoneChanged, map[string]any{"id": milestoneID, "removed": itemID})
	return nil
}

// MilestoneProgress recomputes a milestone's completion from its members'
// current statuses. Progress is never cached as stale state.
func (m *itemManager) MilestoneProgress(milestoneID string) (models.MilestoneProgress, error) {
	snap, err := m.store.Load()
	if err != nil {
		return models.MilestoneProgress{}, err
	}
	ms, ok := snap.Milestones[milestoneID]
	if !ok {
		return models.MilestoneProgress{}, &models.NotFoundError{ID: milestoneID}
	}
	return ComputeProgress(snap, ms), nil
}

// Milestones returns all milestones in ascending id order.
func (m *itemManager) Milestones() ([]*models.Milestone, error) {
	snap, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(snap.Milestones))
	for id := range snap.Milestones {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*models.Milestone, len(ids))
	for i, id := range ids {
		out[i] = snap.Milestones[id]
	}
	return out, nil
}

// ComputeProgress derives completion counts for a milestone from the
// snapshot. Members that no longer exist are skipped.
func ComputeProgress(snap *models.Snapshot, ms *models.Milestone) models.MilestoneProgress {
	p := models.MilestoneProgress{MilestoneID: ms.ID}
	for _, member := range ms.Members {
		item, ok := snap.Items[member]
		if !ok {
			continue
		}
		p.Total++
		if item.Status == models.StatusCompleted {
			p.Completed++
		}
	}
	return p
}

// attachToMilestone sets membership on both the item and the milestone's
// member list. The milestone must already exist.
func attachToMilestone(snap *models.Snapshot, milestoneID string, item *models.WorkItem) error {
	ms, ok := snap.Milestones[milestoneID]
	if !ok {
		return &models.NotFoundError{ID: milestoneID}
	}
	item.Milestone = milestoneID
	for _, member := range ms.Members {
		if member == item.ID {
			return nil
		}
	}
	ms.Members = append(ms.Members, item.ID)
	sort.Strings(ms.Members)
	return nil
}

// detachFromMilestone clears membership from both sides. Safe to call for
// items with no milestone.
func detachFromMilestone(snap *models.Snapshot, item *models.WorkItem) {
	if item == nil || item.Milestone == "" {
		return
	}
	if ms, ok := snap.Milestones[item.Milestone]; ok {
		ms.Members = removeID(ms.Members, item.ID)
	}
	item.Milestone = ""
}
