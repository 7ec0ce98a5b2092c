package dockb

import "context"

// SnapshotStore persists knowledge-base snapshots between runs.
type SnapshotStore interface {
	// Load reads the persisted snapshot. A missing or unreadable data file
	// yields an empty snapshot, not an error; the knowledge base starts
	// cold and the next refresh repopulates it.
	Load(ctx context.Context) (*Snapshot, error)

	// Save writes the snapshot so a later process start can Load it.
	Save(ctx context.Context, snap *Snapshot) error
}

// ReportWriter renders a snapshot into the human-readable report.
type ReportWriter interface {
	WriteReport(ctx context.Context, snap *Snapshot) error
}
