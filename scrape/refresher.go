package scrape

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/asafar/dockb"
)

// Refresher drives full refresh cycles: it runs the pipeline, publishes the
// snapshot to the knowledge base, and persists the data file, the report,
// and the run record. Concurrent Refresh calls collapse into one pipeline
// run through singleflight; every caller gets that run's outcome.
type Refresher struct {
	Pipeline *Pipeline
	KB       *dockb.KnowledgeBase
	Store    dockb.SnapshotStore
	Report   dockb.ReportWriter
	Runs     dockb.RunRecorder
	Metrics  dockb.Metrics
	Logger   *slog.Logger

	group singleflight.Group
}

// Refresh executes one refresh cycle and returns its run record. On
// pipeline failure the knowledge base keeps its previous snapshot and the
// error is returned alongside the (failed) run record.
func (r *Refresher) Refresh(ctx context.Context) (*dockb.Run, error) {
	v, err, _ := r.group.Do("refresh", func() (any, error) {
		return r.refresh(ctx)
	})
	return v.(*dockb.Run), err
}

func (r *Refresher) refresh(ctx context.Context) (*dockb.Run, error) {
	logger := r.logger()

	snap, run, err := r.Pipeline.Run(ctx)
	run.ID = uuid.NewString()
	if err != nil {
		run.Error = err.Error()
		logger.Error("refresh failed", "run", run.ID, "err", err)
	} else {
		r.KB.Replace(snap)
		r.persist(ctx, snap, logger)
		logger.Info("refresh complete",
			"run", run.ID,
			"records", run.Records,
			"fetched", run.PagesFetched,
			"failed", run.PagesFailed,
		)
	}

	if r.Metrics != nil {
		r.Metrics.ObserveRun(run)
	}
	if r.Runs != nil {
		if recErr := r.Runs.RecordRun(ctx, run); recErr != nil {
			logger.Warn("run record not persisted", "run", run.ID, "err", recErr)
		}
	}
	return run, err
}

// persist writes the data file and the report. Persistence failures are
// logged but do not fail the refresh: the in-memory knowledge base already
// holds the new snapshot.
func (r *Refresher) persist(ctx context.Context, snap *dockb.Snapshot, logger *slog.Logger) {
	if r.Store != nil {
		if err := r.Store.Save(ctx, snap); err != nil {
			logger.Error("snapshot not persisted", "err", err)
		}
	}
	if r.Report != nil {
		if err := r.Report.WriteReport(ctx, snap); err != nil {
			logger.Error("report not written", "err", err)
		}
	}
}

func (r *Refresher) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
