package core

import (
	"reflect"
	"testing"
	"time"

	"github.com/valter-silva-au/workgraph/pkg/models"
)

func querySnapshot(t *testing.T) *models.Snapshot {
	t.Helper()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	snap := models.NewSnapshot()
	add := func(id string, itemType models.ItemType, status models.ItemStatus, priority models.Priority, milestone string, ageDays int, deps ...string) {
		snap.Items[id] = &models.WorkItem{
			ID:           id,
			Type:         itemType,
			Title:        id,
			Status:       status,
			Priority:     priority,
			Milestone:    milestone,
			Dependencies: deps,
			Created:      base.AddDate(0, 0, ageDays),
			Updated:      base.AddDate(0, 0, ageDays),
		}
	}
	add("bug_crash", models.TypeBug, models.StatusInProgress, models.PriorityHigh, "v1", 2)
	add("feature_auth", models.TypeFeature, models.StatusNotStarted, models.PriorityCritical, "v1", 0)
	add("feature_search", models.TypeFeature, models.StatusNotStarted, models.PriorityLow, "", 1, "feature_auth")
	add("refactor_db", models.TypeRefactor, models.StatusCompleted, models.PriorityMedium, "", 3)
	return snap
}

func idsOf(items []*models.WorkItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestFilterItems_NoFilter(t *testing.T) {
	got := FilterItems(querySnapshot(t), ItemFilter{}, SortByID)
	want := []string{"bug_crash", "feature_auth", "feature_search", "refactor_db"}
	if !reflect.DeepEqual(idsOf(got), want) {
		t.Fatalf("expected %v, got %v", want, idsOf(got))
	}
}

func TestFilterItems_ByStatus(t *testing.T) {
	got := FilterItems(querySnapshot(t), ItemFilter{Status: []models.ItemStatus{models.StatusNotStarted}}, SortByID)
	want := []string{"feature_auth", "feature_search"}
	if !reflect.DeepEqual(idsOf(got), want) {
		t.Fatalf("expected %v, got %v", want, idsOf(got))
	}
}

func TestFilterItems_ByTypeAndMilestone(t *testing.T) {
	got := FilterItems(querySnapshot(t), ItemFilter{
		Types:     []models.ItemType{models.TypeFeature},
		Milestone: "v1",
	}, SortByID)
	if !reflect.DeepEqual(idsOf(got), []string{"feature_auth"}) {
		t.Fatalf("expected [feature_auth], got %v", idsOf(got))
	}
}

func TestFilterItems_BlockedOnly(t *testing.T) {
	got := FilterItems(querySnapshot(t), ItemFilter{BlockedOnly: true}, SortByID)
	if !reflect.DeepEqual(idsOf(got), []string{"feature_search"}) {
		t.Fatalf("expected [feature_search], got %v", idsOf(got))
	}
}

func TestFilterItems_SortByPriority(t *testing.T) {
	got := FilterItems(querySnapshot(t), ItemFilter{}, SortByPriority)
	want := []string{"feature_auth", "bug_crash", "refactor_db", "feature_search"}
	if !reflect.DeepEqual(idsOf(got), want) {
		t.Fatalf("expected %v, got %v", want, idsOf(got))
	}
}

func TestFilterItems_SortByCreated(t *testing.T) {
	got := FilterItems(querySnapshot(t), ItemFilter{}, SortByCreated)
	want := []string{"feature_auth", "feature_search", "bug_crash", "refactor_db"}
	if !reflect.DeepEqual(idsOf(got), want) {
		t.Fatalf("expected %v, got %v", want, idsOf(got))
	}
}

func TestFilterItems_SortByStatus(t *testing.T) {
	got := FilterItems(querySnapshot(t), ItemFilter{}, SortByStatus)
	want := []string{"feature_auth", "feature_search", "bug_crash", "refactor_db"}
	if !reflect.DeepEqual(idsOf(got), want) {
		t.Fatalf("expected %v, got %v", want, idsOf(got))
	}
}

func TestFilterItems_NoMatches(t *testing.T) {
	got := FilterItems(querySnapshot(t), ItemFilter{Milestone: "v99"}, SortByID)
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", idsOf(got))
	}
}
