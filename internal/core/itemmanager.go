package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/valter-silva-au/workgraph/internal/observability"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

// CreateRequest carries the caller-supplied fields for a new work item.
// The id is assigned by the manager and immutable afterwards.
type CreateRequest struct {
	Type         models.ItemType
	Title        string
	Priority     models.Priority
	Milestone    string
	Dependencies []string
	SpecRef      string
	Urgent       bool
}

// UpdatePatch is a partial field change; nil fields are left untouched.
type UpdatePatch struct {
	Title        *string
	Status       *models.ItemStatus
	Priority     *models.Priority
	Milestone    *string
	Dependencies *[]string
	Urgent       *bool
	SpecRef      *string
}

// DeleteMode resolves what happens to items depending on a deleted target.
// The engine never silently leaves a dangling reference: with DeleteAbort
// (the default) a target with dependents is rejected and the dependents are
// reported to the caller as a required decision point.
type DeleteMode int

const (
	DeleteAbort DeleteMode = iota
	// DeleteDetach removes the target from its dependents' dependency lists.
	DeleteDetach
	// DeleteCascade deletes the target and every transitive dependent.
	DeleteCascade
)

// DependentsError reports that deleting an item would leave dangling
// references. The caller must choose to detach, cascade, or abort.
type DependentsError struct {
	ID         string
	Dependents []string
}

func (e *DependentsError) Error() string {
	return fmt.Sprintf("cannot delete %s: depended on by %s (detach or cascade required)",
		e.ID, strings.Join(e.Dependents, ", "))
}

// ItemManager defines the mutation and lookup surface over the work item
// store. Every mutation is a load -> mutate -> validate -> persist
// transaction; a rejected validation leaves the stored snapshot untouched.
type ItemManager interface {
	Create(req CreateRequest) (*models.WorkItem, error)
	Get(id string) (*models.WorkItem, error)
	List(filter ItemFilter, key SortKey) ([]*models.WorkItem, error)
	Update(id string, patch UpdatePatch) (*models.WorkItem, error)
	Delete(id string, mode DeleteMode) ([]string, error)
	Snapshot() (*models.Snapshot, error)

	CreateMilestone(id, title string) (*models.Milestone, error)
	AddToMilestone(milestoneID, itemID string) error
	RemoveFromMilestone(milestoneID, itemID string) error
	MilestoneProgress(milestoneID string) (models.MilestoneProgress, error)
	Milestones() ([]*models.Milestone, error)
}

// itemManager implements ItemManager on top of a SnapshotStore.
type itemManager struct {
	store  SnapshotStore
	cfg    *models.GlobalConfig
	events EventLogger
}

// NewItemManager creates an ItemManager. events may be nil if the event log
// is disabled.
func NewItemManager(store SnapshotStore, cfg *models.GlobalConfig, events EventLogger) ItemManager {
	return &itemManager{store: store, cfg: cfg, events: events}
}

// Create assigns a type-prefixed id, applies defaults, validates the
// snapshot with the new item in place, and persists on success.
func (m *itemManager) Create(req CreateRequest) (*models.WorkItem, error) {
	if req.Title == "" {
		return nil, &models.ValidationError{Kind: models.ValidationBadField, Detail: "title must not be empty"}
	}
	if req.Type == "" {
		req.Type = models.TypeCustom
	}
	if !req.Type.IsValid() {
		return nil, &models.ValidationError{Kind: models.ValidationBadField, Detail: fmt.Sprintf("invalid type %q", req.Type)}
	}
	if req.Priority == "" {
		req.Priority = m.cfg.DefaultPriority
	}
	if !req.Priority.IsValid() {
		return nil, &models.ValidationError{Kind: models.ValidationBadField, Detail: fmt.Sprintf("invalid priority %q", req.Priority)}
	}

	snap, err := m.store.Load()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &models.WorkItem{
		ID:           m.generateID(snap, req.Type, req.Title),
		Type:         req.Type,
		Title:        req.Title,
		Status:       models.StatusNotStarted,
		Priority:     req.Priority,
		Dependencies: normalizeDeps(req.Dependencies),
		SpecRef:      req.SpecRef,
		Urgent:       req.Urgent,
		Created:      now,
		Updated:      now,
	}
	snap.Items[item.ID] = item

	if req.Milestone != "" {
		if err := attachToMilestone(snap, req.Milestone, item); err != nil {
			return nil, err
		}
	}
	if req.Urgent {
		clearOtherUrgent(snap, item.ID)
	}

	if err := Validate(snap); err != nil {
		return nil, err
	}
	if err := m.store.Save(snap); err != nil {
		return nil, err
	}

	m.logEvent(observability.EventItemCreated, map[string]any{"id": item.ID, "type": string(item.Type)})
	return item, nil
}

// Get returns a single item by id.
func (m *itemManager) Get(id string) (*models.WorkItem, error) {
	snap, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	item, ok := snap.Items[id]
	if !ok {
		return nil, &models.NotFoundError{ID: id}
	}
	return item, nil
}

// List returns the items matching the filter in the requested order.
func (m *itemManager) List(filter ItemFilter, key SortKey) ([]*models.WorkItem, error) {
	snap, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	return FilterItems(snap, filter, key), nil
}

// Snapshot returns the current full snapshot.
func (m *itemManager) Snapshot() (*models.Snapshot, error) {
	return m.store.Load()
}

// Update applies a partial field patch. Setting urgent first clears the
// prior holder; a transition to completed force-clears urgent. Any patch
// re-runs full graph validation before commit.
func (m *itemManager) Update(id string, patch UpdatePatch) (*models.WorkItem, error) {
	snap, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	item, ok := snap.Items[id]
	if !ok {
		return nil, &models.NotFoundError{ID: id}
	}

	if patch.Status != nil && *patch.Status != item.Status {
		if err := m.checkTransition(item.Status, *patch.Status); err != nil {
			return nil, err
		}
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, &models.ValidationError{Kind: models.ValidationBadField, ItemID: id, Detail: "title must not be empty"}
		}
		item.Title = *patch.Title
	}
	if patch.Priority != nil {
		if !patch.Priority.IsValid() {
			return nil, &models.ValidationError{Kind: models.ValidationBadField, ItemID: id, Detail: fmt.Sprintf("invalid priority %q", *patch.Priority)}
		}
		item.Priority = *patch.Priority
	}
	if patch.Dependencies != nil {
		item.Dependencies = normalizeDeps(*patch.Dependencies)
	}
	if patch.SpecRef != nil {
		item.SpecRef = *patch.SpecRef
	}
	if patch.Milestone != nil && *patch.Milestone != item.Milestone {
		detachFromMilestone(snap, item)
		if *patch.Milestone != "" {
			if err := attachToMilestone(snap, *patch.Milestone, item); err != nil {
				return nil, err
			}
		}
	}
	if patch.Urgent != nil {
		item.Urgent = *patch.Urgent
		if item.Urgent {
			clearOtherUrgent(snap, id)
		}
	}
	if patch.Status != nil {
		item.Status = *patch.Status
		if item.Status == models.StatusCompleted {
			// Completion always releases the urgent override.
			item.Urgent = false
		}
	}
	item.Updated = time.Now().UTC()

	if err := Validate(snap); err != nil {
		return nil, err
	}
	if err := m.store.Save(snap); err != nil {
		return nil, err
	}

	m.logEvent(observability.EventItemUpdated, map[string]any{"id": id})
	if patch.Status != nil {
		m.logEvent(observability.EventItemStatusChanged, map[string]any{"id": id, "status": string(item.Status)})
	}
	return item, nil
}

// Delete removes an item. With DeleteAbort and existing dependents, the
// dependents are returned inside a DependentsError so the caller can decide
// how to resolve them. Returns the ids actually removed.
func (m *itemManager) Delete(id string, mode DeleteMode) ([]string, error) {
	snap, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	_, ok := snap.Items[id]
	if !ok {
		return nil, &models.NotFoundError{ID: id}
	}

	dependents := snap.Dependents(id)
	removed := []string{id}

	switch {
	case len(dependents) == 0:
		// Nothing depends on the target; plain removal.
	case mode == DeleteDetach:
		for _, dep := range dependents {
			snap.Items[dep].Dependencies = removeID(snap.Items[dep].Dependencies, id)
			snap.Items[dep].Updated = time.Now().UTC()
		}
	case mode == DeleteCascade:
		removed = transitiveDependents(snap, id)
	default:
		return nil, &DependentsError{ID: id, Dependents: dependents}
	}

	for _, rid := range removed {
		detachFromMilestone(snap, snap.Items[rid])
		delete(snap.Items, rid)
	}

	if err := Validate(snap); err != nil {
		return nil, err
	}
	if err := m.store.Save(snap); err != nil {
		return nil, err
	}

	m.logEvent(observability.EventItemDeleted, map[string]any{"ids": removed})
	return removed, nil
}

// checkTransition enforces the status state machine: not_started ->
// in_progress -> completed, with the pause transition (in_progress ->
// not_started) gated by configuration.
func (m *itemManager) checkTransition(from, to models.ItemStatus) error {
	if !to.IsValid() {
		return &models.ValidationError{Kind: models.ValidationBadField, Detail: fmt.Sprintf("invalid status %q", to)}
	}
	switch {
	case from == models.StatusNotStarted && to == models.StatusInProgress:
		return nil
	case from == models.StatusInProgress && to == models.StatusCompleted:
		return nil
	case from == models.StatusInProgress && to == models.StatusNotStarted:
		if m.cfg.AllowPause {
			return nil
		}
		return &models.ValidationError{
			Kind:   models.ValidationBadTransition,
			Detail: "pausing in_progress work is disabled (set transitions.allow_pause to permit it)",
		}
	}
	return &models.ValidationError{
		Kind:   models.ValidationBadTransition,
		Detail: fmt.Sprintf("transition %s -> %s is not permitted", from, to),
	}
}

// generateID derives a type-prefixed id from the title (e.g.
// "feature_oauth_login") and disambiguates collisions with a numeric suffix.
func (m *itemManager) generateID(snap *models.Snapshot, itemType models.ItemType, title string) string {
	maxLen := m.cfg.MaxSlugLen
	if maxLen <= 0 {
		maxLen = 24
	}

	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	slug := strings.Trim(b.String(), "_")
	if len(slug) > maxLen {
		slug = strings.Trim(slug[:maxLen], "_")
	}
	if slug == "" {
		slug = "item"
	}

	base := fmt.Sprintf("%s_%s", itemType, slug)
	id := base
	for n := 2; ; n++ {
		if _, exists := snap.Items[id]; !exists {
			return id
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

func (m *itemManager) logEvent(eventType string, data map[string]any) {
	if m.events == nil {
		return
	}
	_ = m.events.LogEvent(eventType, data) // Non-fatal: the log is best-effort.
}

// clearOtherUrgent drops the urgent flag from every item except keep,
// enforcing the singleton automatically instead of rejecting the update.
func clearOtherUrgent(snap *models.Snapshot, keep string) {
	for id, item := range snap.Items {
		if id != keep && item.Urgent {
			item.Urgent = false
			item.Updated = time.Now().UTC()
		}
	}
}

// transitiveDependents returns id plus everything that directly or
// transitively depends on it, in ascending order.
func transitiveDependents(snap *models.Snapshot, id string) []string {
	seen := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dep := range snap.Dependents(cur) {
			if !seen[dep] {
				seen[dep] = true
				queue = append(queue, dep)
			}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// normalizeDeps dedupes and sorts a dependency list.
func normalizeDeps(deps []string) []string {
	if len(deps) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(deps))
	var out []string
	for _, d := range deps {
		if d != "" && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

func removeID(ids []string, id string) []string {
	var out []string
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
