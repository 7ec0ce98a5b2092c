package mock

import (
	"context"

	"github.com/asafar/dockb"
)

var _ dockb.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of dockb.SnapshotStore.
type SnapshotStore struct {
	LoadFn func(ctx context.Context) (*dockb.Snapshot, error)
	SaveFn func(ctx context.Context, snap *dockb.Snapshot) error
}

func (s *SnapshotStore) Load(ctx context.Context) (*dockb.Snapshot, error) {
	return s.LoadFn(ctx)
}

func (s *SnapshotStore) Save(ctx context.Context, snap *dockb.Snapshot) error {
	return s.SaveFn(ctx, snap)
}

var _ dockb.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of dockb.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(ctx context.Context, snap *dockb.Snapshot) error
}

func (w *ReportWriter) WriteReport(ctx context.Context, snap *dockb.Snapshot) error {
	return w.WriteReportFn(ctx, snap)
}
