package mock

import (
	"context"

	"github.com/asafar/dockb"
)

var _ dockb.RunRecorder = (*RunRecorder)(nil)

// RunRecorder is a mock implementation of dockb.RunRecorder.
type RunRecorder struct {
	RecordRunFn func(ctx context.Context, run *dockb.Run) error
}

func (r *RunRecorder) RecordRun(ctx context.Context, run *dockb.Run) error {
	return r.RecordRunFn(ctx, run)
}
