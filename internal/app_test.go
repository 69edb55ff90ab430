package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/valter-silva-au/workgraph/internal/cli"
)

func TestNewApp_WiresServices(t *testing.T) {
	dir := t.TempDir()

	app, err := NewApp(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = app.Close() }()

	if app.Items == nil || app.Sched == nil || app.Renderer == nil {
		t.Fatal("core services not wired")
	}
	if app.Store == nil || app.Config == nil {
		t.Fatal("storage or config not wired")
	}
	if cli.Items == nil || cli.Sched == nil || cli.Renderer == nil {
		t.Fatal("cli package vars not wired")
	}
	if cli.BasePath != dir {
		t.Fatalf("expected base path %s, got %s", dir, cli.BasePath)
	}
}

func TestNewApp_StoreFileFromConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".wgconfig"), []byte("store:\n  file: plan.yaml\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	app, err := NewApp(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = app.Close() }()

	if got := app.Store.Path(); got != filepath.Join(dir, "plan.yaml") {
		t.Fatalf("expected configured store path, got %s", got)
	}
}

func TestResolveBasePath_EnvOverride(t *testing.T) {
	t.Setenv("WG_HOME", "/tmp/wg-home")
	if got := ResolveBasePath(); got != "/tmp/wg-home" {
		t.Fatalf("expected WG_HOME to win, got %s", got)
	}
}

func TestResolveBasePath_WalksUpToConfig(t *testing.T) {
	t.Setenv("WG_HOME", "")
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ".wgconfig"), nil, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	if err := os.Chdir(nested); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	got := ResolveBasePath()
	// Resolve symlinks so macOS /private/var temp paths compare equal.
	wantReal, _ := filepath.EvalSymlinks(root)
	gotReal, _ := filepath.EvalSymlinks(got)
	if gotReal != wantReal {
		t.Fatalf("expected %s, got %s", wantReal, gotReal)
	}
}
