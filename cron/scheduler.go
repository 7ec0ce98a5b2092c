// Package cron schedules periodic knowledge-base refreshes.
package cron

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/asafar/dockb"
)

// Refresher is the subset of the refresh driver the scheduler needs.
type Refresher interface {
	Refresh(ctx context.Context) (*dockb.Run, error)
}

// DefaultSpec refreshes once a day. The portal's documentation changes on
// firmware-release cadence, so anything more frequent is wasted traffic.
const DefaultSpec = "@every 24h"

// Scheduler triggers refreshes on a cron spec.
type Scheduler struct {
	refresher Refresher
	logger    *slog.Logger
	cron      *cron.Cron
}

// NewScheduler creates a Scheduler driving the given refresher.
func NewScheduler(refresher Refresher, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		refresher: refresher,
		logger:    logger,
		cron:      cron.New(),
	}
}

// Start registers the spec and begins scheduling. Refreshes run with the
// given context; overlapping triggers collapse inside the refresher.
func (s *Scheduler) Start(ctx context.Context, spec string) error {
	if spec == "" {
		spec = DefaultSpec
	}
	_, err := s.cron.AddFunc(spec, func() {
		if _, err := s.refresher.Refresh(ctx); err != nil {
			s.logger.Error("scheduled refresh failed", "err", err)
		}
	})
	if err != nil {
		return dockb.Errorf(dockb.EINVALID, "invalid refresh schedule %q: %v", spec, err)
	}
	s.cron.Start()
	return nil
}

// Stop stops scheduling and waits for a running trigger to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
