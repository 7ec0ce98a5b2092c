package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/asafar/dockb"
)

// Ensure LoggingAuthenticator implements dockb.Authenticator.
var _ dockb.Authenticator = (*LoggingAuthenticator)(nil)

// LoggingAuthenticator wraps an Authenticator with logging. Credentials are
// never logged, only outcomes.
type LoggingAuthenticator struct {
	next   dockb.Authenticator
	logger *slog.Logger
}

// NewLoggingAuthenticator creates a new LoggingAuthenticator.
func NewLoggingAuthenticator(next dockb.Authenticator, logger *slog.Logger) *LoggingAuthenticator {
	return &LoggingAuthenticator{next: next, logger: logger}
}

// Authenticate delegates to the wrapped authenticator and logs the outcome.
func (a *LoggingAuthenticator) Authenticate(ctx context.Context, creds dockb.Credentials) (sess *dockb.Session, err error) {
	defer func(begin time.Time) {
		strategy := ""
		if sess != nil {
			strategy = sess.Strategy
		}
		a.logger.Info("authentication",
			"strategy", strategy,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Authenticate(ctx, creds)
}
