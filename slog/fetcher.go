// Package slog provides logging decorators for the root package interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/asafar/dockb"
)

// Ensure LoggingFetcher implements dockb.Fetcher.
var _ dockb.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   dockb.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next dockb.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string, sess *dockb.Session) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("page fetch",
			"url", url,
			"bytes", len(html),
			"authenticated", !sess.Anonymous(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url, sess)
}

// Reset delegates to the wrapped fetcher when it supports resetting.
func (f *LoggingFetcher) Reset() {
	if r, ok := f.next.(interface{ Reset() }); ok {
		r.Reset()
	}
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
