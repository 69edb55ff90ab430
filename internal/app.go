// Package internal provides the App struct that wires all components of the
// workgraph engine together and initializes the CLI layer.
package internal

import (
	"os"
	"path/filepath"
	"time"

	"github.com/valter-silva-au/workgraph/internal/cli"
	"github.com/valter-silva-au/workgraph/internal/core"
	"github.com/valter-silva-au/workgraph/internal/observability"
	"github.com/valter-silva-au/workgraph/internal/render"
	"github.com/valter-silva-au/workgraph/internal/storage"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

// App holds all service dependencies for the workgraph engine.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.GlobalConfig

	// Storage layer
	Store storage.SnapshotStore

	// Core services
	Items core.ItemManager
	Sched *core.Scheduler

	// Rendering
	Renderer *render.Renderer

	// Observability
	EventLog observability.EventLog
}

// NewApp creates and wires all components of the workgraph engine.
// basePath is the directory holding the snapshot document (typically the
// directory containing .wgconfig, or the current directory).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadGlobalConfig()
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	// --- Storage layer ---
	app.Store = storage.NewSnapshotStore(basePath, cfg.StoreFile)

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".wg_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: mutations proceed without an event trail.
		app.EventLog = nil
	}
	var evtAdapter core.EventLogger
	if app.EventLog != nil {
		evtAdapter = &eventLogAdapter{log: app.EventLog}
	}

	// --- Core services ---
	app.Items = core.NewItemManager(app.Store, cfg, evtAdapter)
	app.Sched = core.NewScheduler(cfg.BlockedPreview)

	// --- Rendering ---
	app.Renderer = render.New(cfg.DotBinary)

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Items = app.Items
	cli.Sched = app.Sched
	cli.Renderer = app.Renderer

	return app, nil
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the directory holding the work item snapshot.
// It checks the WG_HOME env var, then walks up from the current directory
// looking for a .wgconfig file, and falls back to the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("WG_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".wgconfig")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	return a.log.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   "INFO",
		Type:    eventType,
		Message: eventType,
		Data:    data,
	})
}
