package core

import (
	"errors"
	"reflect"
	"testing"

	"github.com/valter-silva-au/workgraph/pkg/models"
)

func validatorSnapshot(items ...*models.WorkItem) *models.Snapshot {
	snap := models.NewSnapshot()
	for _, item := range items {
		snap.Items[item.ID] = item
	}
	return snap
}

func item(id string, deps ...string) *models.WorkItem {
	return &models.WorkItem{
		ID:           id,
		Type:         models.TypeFeature,
		Title:        id,
		Status:       models.StatusNotStarted,
		Priority:     models.PriorityMedium,
		Dependencies: deps,
	}
}

func TestValidate_CleanSnapshot(t *testing.T) {
	snap := validatorSnapshot(item("a"), item("b", "a"), item("c", "a", "b"))
	if err := Validate(snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_EmptySnapshot(t *testing.T) {
	if err := Validate(models.NewSnapshot()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckReferences_MissingDependency(t *testing.T) {
	snap := validatorSnapshot(item("a", "ghost"))

	err := Validate(snap)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Kind != models.ValidationMissingDep {
		t.Fatalf("expected kind %s, got %s", models.ValidationMissingDep, verr.Kind)
	}
	if verr.ItemID != "a" {
		t.Fatalf("expected offending item a, got %s", verr.ItemID)
	}
}

func TestCheckSelfReference(t *testing.T) {
	snap := validatorSnapshot(item("a", "a"))

	err := Validate(snap)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Kind != models.ValidationSelfDep {
		t.Fatalf("expected kind %s, got %s", models.ValidationSelfDep, verr.Kind)
	}
}

func TestCheckAcyclic_ReportsCyclePath(t *testing.T) {
	snap := validatorSnapshot(item("a", "b"), item("b", "a"))

	err := Validate(snap)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Kind != models.ValidationCycle {
		t.Fatalf("expected kind %s, got %s", models.ValidationCycle, verr.Kind)
	}
	if !reflect.DeepEqual(verr.CyclePath, []string{"a", "b", "a"}) {
		t.Fatalf("expected cycle path [a b a], got %v", verr.CyclePath)
	}
}

func TestCheckUrgentSingleton(t *testing.T) {
	a := item("a")
	a.Urgent = true
	b := item("b")
	b.Urgent = true
	snap := validatorSnapshot(a, b)

	err := Validate(snap)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Kind != models.ValidationUrgentConflict {
		t.Fatalf("expected kind %s, got %s", models.ValidationUrgentConflict, verr.Kind)
	}
}

func TestCheckUrgentSingleton_SingleHolderOK(t *testing.T) {
	a := item("a")
	a.Urgent = true
	snap := validatorSnapshot(a, item("b"))

	if err := Validate(snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
