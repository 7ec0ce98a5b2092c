// Package fs persists the knowledge base and the markdown report to local
// files.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/asafar/dockb"
)

// Ensure Store implements dockb.SnapshotStore at compile time.
var _ dockb.SnapshotStore = (*Store)(nil)

// Store persists snapshots as a JSON object keyed by method key. Saves are
// atomic: the file is written next to its final path and renamed into
// place, so a crash mid-write never leaves a truncated data file.
type Store struct {
	path string
}

// NewStore creates a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted snapshot. A missing data file is a cold start
// and yields an empty snapshot; a corrupt one is treated the same way,
// since the next refresh rebuilds it from the portal anyway.
func (s *Store) Load(ctx context.Context) (*dockb.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return dockb.NewSnapshot(), nil
	}

	var records map[string]dockb.MethodRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return dockb.NewSnapshot(), nil
	}

	keys := make([]string, 0, len(records))
	for key := range records {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	snap := dockb.NewSnapshot()
	for _, key := range keys {
		rec := records[key]
		if rec.Key == "" {
			rec.Key = key
		}
		snap.Add(rec, dockb.FirstWins)
	}

	// File modification time stands in for the last refresh time of a
	// snapshot restored from disk.
	if info, err := os.Stat(s.path); err == nil {
		snap.SetLastUpdate(info.ModTime())
	}
	return snap, nil
}

// Save writes the snapshot to the data file.
func (s *Store) Save(ctx context.Context, snap *dockb.Snapshot) error {
	records := make(map[string]dockb.MethodRecord, snap.Len())
	for _, rec := range snap.Records() {
		records[rec.Key] = rec
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return dockb.Errorf(dockb.EINTERNAL, "marshal snapshot: %v", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return dockb.Errorf(dockb.EINTERNAL, "create data directory: %v", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return dockb.Errorf(dockb.EINTERNAL, "write snapshot: %v", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return dockb.Errorf(dockb.EINTERNAL, "replace snapshot file: %v", err)
	}
	return nil
}
