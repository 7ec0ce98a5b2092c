package dockb

// Metrics receives pipeline counters. Implementations must be safe for
// concurrent use. Callers treat a nil Metrics as "recording disabled".
type Metrics interface {
	// ObservePageFetched counts a successfully fetched page.
	ObservePageFetched()

	// ObservePageFailed counts a page that could not be fetched.
	ObservePageFailed()

	// ObserveAuthAttempt counts one strategy attempt and its outcome.
	ObserveAuthAttempt(strategy string, ok bool)

	// ObserveRun records a completed refresh run.
	ObserveRun(run *Run)
}
