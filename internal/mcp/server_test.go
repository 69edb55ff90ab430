package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/valter-silva-au/workgraph/internal/core"
	"github.com/valter-silva-au/workgraph/internal/render"
	"github.com/valter-silva-au/workgraph/internal/storage"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

func newTestServer(t *testing.T) (*Server, core.ItemManager) {
	t.Helper()
	store := storage.NewSnapshotStore(t.TempDir(), "")
	items := core.NewItemManager(store, core.DefaultGlobalConfig(), nil)
	return NewServer(items, core.NewScheduler(3), render.New("dot"), "test"), items
}

func TestNewServer(t *testing.T) {
	s, _ := newTestServer(t)
	if s.MCPServer() == nil {
		t.Fatal("expected underlying MCP server")
	}
}

func TestHandleGetItem(t *testing.T) {
	s, items := newTestServer(t)
	created, err := items.Create(core.CreateRequest{Type: models.TypeFeature, Title: "auth"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, out, err := s.handleGetItem(context.Background(), nil, getItemInput{ID: created.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected success, got error result %+v", result)
	}
	if out.ID != created.ID || out.Status != string(models.StatusNotStarted) {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestHandleGetItem_NotFound(t *testing.T) {
	s, _ := newTestServer(t)

	result, _, err := s.handleGetItem(context.Background(), nil, getItemInput{ID: "ghost"})
	if err != nil {
		t.Fatalf("tool errors are reported in the result, got %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected error result for unknown id")
	}
}

func TestHandleListItems_InvalidStatus(t *testing.T) {
	s, _ := newTestServer(t)

	result, _, err := s.handleListItems(context.Background(), nil, listItemsInput{Status: "done-ish"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected error result for invalid status")
	}
}

func TestHandleUpdateStatus(t *testing.T) {
	s, items := newTestServer(t)
	created, err := items.Create(core.CreateRequest{Type: models.TypeBug, Title: "crash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, out, err := s.handleUpdateStatus(context.Background(), nil, updateStatusInput{
		ID:     created.ID,
		Status: string(models.StatusInProgress),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected success, got %+v", result)
	}
	if !strings.Contains(out.Message, "in_progress") {
		t.Fatalf("unexpected message: %q", out.Message)
	}

	got, err := items.Get(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.StatusInProgress {
		t.Fatalf("status not persisted, got %s", got.Status)
	}
}

func TestHandleNextItems_UrgentOverride(t *testing.T) {
	s, items := newTestServer(t)
	if _, err := items.Create(core.CreateRequest{Type: models.TypeFeature, Title: "normal"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	urgent, err := items.Create(core.CreateRequest{Type: models.TypeBug, Title: "fire", Urgent: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, out, err := s.handleNextItems(context.Background(), nil, nextItemsInput{Count: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected success, got %+v", result)
	}
	if !out.UrgentOverride || len(out.Items) != 1 || out.Items[0].ID != urgent.ID {
		t.Fatalf("expected sole urgent recommendation, got %+v", out)
	}
}

func TestHandleRenderGraph(t *testing.T) {
	s, items := newTestServer(t)
	if _, err := items.Create(core.CreateRequest{Type: models.TypeFeature, Title: "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, out, err := s.handleRenderGraph(context.Background(), nil, renderGraphInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected success, got %+v", result)
	}
	if !strings.Contains(out.DOT, "digraph workgraph") {
		t.Fatalf("expected DOT output, got %q", out.DOT)
	}
}
