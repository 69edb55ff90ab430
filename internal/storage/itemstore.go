// Package storage persists the work item snapshot as a single YAML document
// with atomic replacement and a modification-time keyed cache.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/valter-silva-au/workgraph/pkg/models"
	"gopkg.in/yaml.v3"
)

// DefaultStoreFile is the snapshot document name inside the base path.
const DefaultStoreFile = "workgraph.yaml"

// SnapshotStore defines the interface for loading and persisting the full
// work item collection.
type SnapshotStore interface {
	Load() (*models.Snapshot, error)
	Save(snap *models.Snapshot) error
	Get(id string) (*models.WorkItem, error)
	Path() string
}

// fileSnapshotStore implements SnapshotStore backed by one YAML file.
// The in-process cache is keyed by the file's last-modified time, so edits
// made by another process are picked up on the next Load.
type fileSnapshotStore struct {
	basePath string
	fileName string

	cached   *models.Snapshot
	cachedAt time.Time
}

// NewSnapshotStore creates a SnapshotStore reading fileName inside baseDir.
// An empty fileName selects DefaultStoreFile.
func NewSnapshotStore(baseDir, fileName string) SnapshotStore {
	if fileName == "" {
		fileName = DefaultStoreFile
	}
	return &fileSnapshotStore{basePath: baseDir, fileName: fileName}
}

func (s *fileSnapshotStore) Path() string {
	return filepath.Join(s.basePath, s.fileName)
}

// Load reads the snapshot document, serving from cache while the file's
// modification time is unchanged. A missing file is not an error: a fresh
// repository simply has no items yet. A malformed document fails with
// StorageError rather than returning a partial structure.
func (s *fileSnapshotStore) Load() (*models.Snapshot, error) {
	info, err := os.Stat(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewSnapshot(), nil
		}
		return nil, &models.StorageError{Path: s.Path(), Err: err}
	}

	if s.cached != nil && info.ModTime().Equal(s.cachedAt) {
		return s.cached.Clone(), nil
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, &models.StorageError{Path: s.Path(), Err: err}
	}

	var snap models.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, &models.StorageError{Path: s.Path(), Err: fmt.Errorf("parsing YAML: %w", err)}
	}
	if snap.Items == nil {
		snap.Items = make(map[string]*models.WorkItem)
	}
	if snap.Milestones == nil {
		snap.Milestones = make(map[string]*models.Milestone)
	}
	if err := checkDecoded(&snap); err != nil {
		return nil, &models.StorageError{Path: s.Path(), Err: err}
	}

	s.cached = snap.Clone()
	s.cachedAt = info.ModTime()
	return &snap, nil
}

// Save recomputes the metadata block, writes the document to a temporary
// file in the same directory, and renames it over the previous store so a
// crash mid-write never leaves a half-written document. The cache is
// refreshed from the replaced file's modification time.
func (s *fileSnapshotStore) Save(snap *models.Snapshot) error {
	if err := os.MkdirAll(s.basePath, 0o750); err != nil {
		return &models.StorageError{Path: s.basePath, Err: fmt.Errorf("creating directory: %w", err)}
	}

	unlock, err := lockFile(s.Path() + ".lock")
	if err != nil {
		return &models.StorageError{Path: s.Path(), Err: err}
	}
	defer func() { _ = unlock() }()

	snap.RecomputeMeta()

	data, err := yaml.Marshal(snap)
	if err != nil {
		return &models.StorageError{Path: s.Path(), Err: fmt.Errorf("marshaling YAML: %w", err)}
	}

	tmp, err := os.CreateTemp(s.basePath, ".workgraph-*.yaml")
	if err != nil {
		return &models.StorageError{Path: s.Path(), Err: fmt.Errorf("creating temp file: %w", err)}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return &models.StorageError{Path: tmpPath, Err: fmt.Errorf("writing temp file: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return &models.StorageError{Path: tmpPath, Err: fmt.Errorf("closing temp file: %w", err)}
	}

	if err := os.Rename(tmpPath, s.Path()); err != nil {
		_ = os.Remove(tmpPath)
		return &models.StorageError{Path: s.Path(), Err: fmt.Errorf("replacing store: %w", err)}
	}

	info, err := os.Stat(s.Path())
	if err != nil {
		// The write succeeded; just drop the cache.
		s.cached = nil
		return nil
	}
	s.cached = snap.Clone()
	s.cachedAt = info.ModTime()
	return nil
}

// Get loads the snapshot and returns the item with the given id.
func (s *fileSnapshotStore) Get(id string) (*models.WorkItem, error) {
	snap, err := s.Load()
	if err != nil {
		return nil, err
	}
	item, ok := snap.Items[id]
	if !ok {
		return nil, &models.NotFoundError{ID: id}
	}
	return item, nil
}

// checkDecoded fails fast on values outside the closed enumerations, so a
// hand-edited document surfaces as a load error instead of being silently
// coerced downstream.
func checkDecoded(snap *models.Snapshot) error {
	for id, item := range snap.Items {
		if item == nil {
			return fmt.Errorf("item %s: empty record", id)
		}
		if item.ID != id {
			return fmt.Errorf("item %s: key does not match id field %q", id, item.ID)
		}
		if !item.Type.IsValid() {
			return fmt.Errorf("item %s: invalid type %q", id, item.Type)
		}
		if !item.Status.IsValid() {
			return fmt.Errorf("item %s: invalid status %q", id, item.Status)
		}
		if !item.Priority.IsValid() {
			return fmt.Errorf("item %s: invalid priority %q", id, item.Priority)
		}
	}
	for id, ms := range snap.Milestones {
		if ms == nil {
			return fmt.Errorf("milestone %s: empty record", id)
		}
		if ms.ID != id {
			return fmt.Errorf("milestone %s: key does not match id field %q", id, ms.ID)
		}
	}
	return nil
}
