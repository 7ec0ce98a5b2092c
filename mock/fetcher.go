package mock

import (
	"context"

	"github.com/asafar/dockb"
)

var _ dockb.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of dockb.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string, sess *dockb.Session) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string, sess *dockb.Session) (string, error) {
	return f.FetchFn(ctx, url, sess)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
