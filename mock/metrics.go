package mock

import "github.com/asafar/dockb"

var _ dockb.Metrics = (*Metrics)(nil)

// Metrics is a mock implementation of dockb.Metrics. Unset functions are
// no-ops so tests only wire the counters they assert on.
type Metrics struct {
	ObservePageFetchedFn func()
	ObservePageFailedFn  func()
	ObserveAuthAttemptFn func(strategy string, ok bool)
	ObserveRunFn         func(run *dockb.Run)
}

func (m *Metrics) ObservePageFetched() {
	if m.ObservePageFetchedFn != nil {
		m.ObservePageFetchedFn()
	}
}

func (m *Metrics) ObservePageFailed() {
	if m.ObservePageFailedFn != nil {
		m.ObservePageFailedFn()
	}
}

func (m *Metrics) ObserveAuthAttempt(strategy string, ok bool) {
	if m.ObserveAuthAttemptFn != nil {
		m.ObserveAuthAttemptFn(strategy, ok)
	}
}

func (m *Metrics) ObserveRun(run *dockb.Run) {
	if m.ObserveRunFn != nil {
		m.ObserveRunFn(run)
	}
}
