package dockb

import "time"

// Run is the outcome of one refresh cycle, kept for run history.
type Run struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"startedAt"`
	FinishedAt    time.Time `json:"finishedAt"`
	Authenticated bool      `json:"authenticated"`
	Strategy      string    `json:"strategy,omitempty"`
	PagesFetched  int       `json:"pagesFetched"`
	PagesFailed   int       `json:"pagesFailed"`
	Records       int       `json:"records"`
	Error         string    `json:"error,omitempty"`
}

// Succeeded reports whether the run produced a publishable snapshot.
func (r *Run) Succeeded() bool {
	return r.Error == "" && r.Records > 0
}
