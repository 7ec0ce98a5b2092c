package fs

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/asafar/dockb"
)

// Ensure Report implements dockb.ReportWriter at compile time.
var _ dockb.ReportWriter = (*Report)(nil)

// Report writes the human-readable markdown report for a snapshot.
type Report struct {
	path string
	now  func() time.Time
}

// NewReport creates a Report backed by the given file path.
func NewReport(path string) *Report {
	return &Report{path: path, now: time.Now}
}

// WriteReport renders the snapshot and writes it atomically.
func (r *Report) WriteReport(ctx context.Context, snap *dockb.Snapshot) error {
	md := dockb.RenderReport(snap, r.now())

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return dockb.Errorf(dockb.EINTERNAL, "create report directory: %v", err)
		}
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(md), 0o644); err != nil {
		return dockb.Errorf(dockb.EINTERNAL, "write report: %v", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		os.Remove(tmp)
		return dockb.Errorf(dockb.EINTERNAL, "replace report file: %v", err)
	}
	return nil
}
