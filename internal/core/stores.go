// Package core contains the business logic for workgraph: validation,
// scheduling, item and milestone mutation, querying, and configuration.
package core

import "github.com/valter-silva-au/workgraph/pkg/models"

// SnapshotStore is the subset of storage.SnapshotStore that core services
// need. Defining it here keeps core independent of the storage package.
type SnapshotStore interface {
	Load() (*models.Snapshot, error)
	Save(snap *models.Snapshot) error
}

// EventLogger is the subset of the observability event log that core
// services need. Defining it here avoids importing the observability package.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}
