package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/valter-silva-au/workgraph/pkg/models"
)

func newTestStore(t *testing.T) (SnapshotStore, string) {
	t.Helper()
	dir := t.TempDir()
	return NewSnapshotStore(dir, ""), dir
}

func sampleItem(id string) *models.WorkItem {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	return &models.WorkItem{
		ID:       id,
		Type:     models.TypeFeature,
		Title:    "Item " + id,
		Status:   models.StatusNotStarted,
		Priority: models.PriorityMedium,
		Created:  now,
		Updated:  now,
	}
}

func TestLoad_MissingFileReturnsEmptySnapshot(t *testing.T) {
	store, _ := newTestStore(t)

	snap, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Items) != 0 {
		t.Fatalf("expected empty snapshot, got %d items", len(snap.Items))
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	snap := models.NewSnapshot()
	item := sampleItem("feature_auth")
	item.Dependencies = []string{"feature_base"}
	item.Urgent = true
	snap.Items[item.ID] = item
	snap.Items["feature_base"] = sampleItem("feature_base")
	snap.Milestones["v1"] = &models.Milestone{ID: "v1", Title: "First", Members: []string{"feature_auth"}}

	if err := store.Save(snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A fresh store forces a real read from disk.
	reloaded, err := NewSnapshotStore(filepath.Dir(store.Path()), "").Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := reloaded.Items["feature_auth"]
	if !ok {
		t.Fatal("item missing after round trip")
	}
	if got.Title != item.Title || !got.Urgent || len(got.Dependencies) != 1 {
		t.Fatalf("item fields lost in round trip: %+v", got)
	}
	if ms := reloaded.Milestones["v1"]; ms == nil || len(ms.Members) != 1 {
		t.Fatalf("milestone lost in round trip: %+v", ms)
	}
}

func TestSave_RecomputesMeta(t *testing.T) {
	store, _ := newTestStore(t)

	snap := models.NewSnapshot()
	snap.Items["a"] = sampleItem("a")
	done := sampleItem("b")
	done.Status = models.StatusCompleted
	snap.Items["b"] = done
	snap.Meta.Counts = map[models.ItemStatus]int{models.StatusCompleted: 99} // stale

	if err := store.Save(snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reloaded.Meta.Counts[models.StatusCompleted] != 1 || reloaded.Meta.Counts[models.StatusNotStarted] != 1 {
		t.Fatalf("meta not recomputed: %v", reloaded.Meta.Counts)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	store, dir := newTestStore(t)
	if err := os.WriteFile(filepath.Join(dir, DefaultStoreFile), []byte("items: [not: a: map"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	_, err := store.Load()
	var serr *models.StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}

func TestLoad_RejectsInvalidEnums(t *testing.T) {
	store, dir := newTestStore(t)
	doc := `version: "1.0"
items:
  a:
    id: a
    type: feature
    title: A
    status: exploded
    priority: medium
`
	if err := os.WriteFile(filepath.Join(dir, DefaultStoreFile), []byte(doc), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	_, err := store.Load()
	var serr *models.StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid status") {
		t.Fatalf("expected invalid status detail, got %v", err)
	}
}

func TestLoad_RejectsKeyIDMismatch(t *testing.T) {
	store, dir := newTestStore(t)
	doc := `version: "1.0"
items:
  a:
    id: b
    type: feature
    title: A
    status: not_started
    priority: medium
`
	if err := os.WriteFile(filepath.Join(dir, DefaultStoreFile), []byte(doc), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	if _, err := store.Load(); err == nil {
		t.Fatal("expected error for key/id mismatch")
	}
}

func TestLoad_PicksUpExternalEdit(t *testing.T) {
	store, dir := newTestStore(t)

	snap := models.NewSnapshot()
	snap.Items["a"] = sampleItem("a")
	if err := store.Save(snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Simulate another process rewriting the document.
	doc := `version: "1.0"
items:
  b:
    id: b
    type: bug
    title: External
    status: not_started
    priority: high
`
	path := filepath.Join(dir, DefaultStoreFile)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	// Push the modification time forward so the cache key changes even on
	// filesystems with coarse timestamps.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("touching file: %v", err)
	}

	reloaded, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := reloaded.Items["b"]; !ok {
		t.Fatal("external edit not picked up")
	}
	if _, ok := reloaded.Items["a"]; ok {
		t.Fatal("stale cached item returned")
	}
}

func TestLoad_CachedSnapshotIsIsolated(t *testing.T) {
	store, _ := newTestStore(t)

	snap := models.NewSnapshot()
	snap.Items["a"] = sampleItem("a")
	if err := store.Save(snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first.Items["a"].Title = "mutated by caller"

	second, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Items["a"].Title == "mutated by caller" {
		t.Fatal("caller mutation leaked into the cache")
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	store, dir := newTestStore(t)

	snap := models.NewSnapshot()
	snap.Items["a"] = sampleItem("a")
	if err := store.Save(snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".workgraph-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestGet(t *testing.T) {
	store, _ := newTestStore(t)

	snap := models.NewSnapshot()
	snap.Items["a"] = sampleItem("a")
	if err := store.Save(snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item, err := store.Get("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != "a" {
		t.Fatalf("expected a, got %s", item.ID)
	}

	_, err = store.Get("ghost")
	var nf *models.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
