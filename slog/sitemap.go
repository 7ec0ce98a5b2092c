package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/asafar/dockb"
)

// Ensure LoggingSitemapDiscoverer implements dockb.SitemapDiscoverer.
var _ dockb.SitemapDiscoverer = (*LoggingSitemapDiscoverer)(nil)

// LoggingSitemapDiscoverer wraps a SitemapDiscoverer with debug logging.
type LoggingSitemapDiscoverer struct {
	next   dockb.SitemapDiscoverer
	logger *slog.Logger
}

// NewLoggingSitemapDiscoverer creates a new LoggingSitemapDiscoverer.
func NewLoggingSitemapDiscoverer(next dockb.SitemapDiscoverer, logger *slog.Logger) *LoggingSitemapDiscoverer {
	return &LoggingSitemapDiscoverer{next: next, logger: logger}
}

// Discover delegates to the wrapped discoverer and logs the operation.
func (d *LoggingSitemapDiscoverer) Discover(ctx context.Context, baseURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		d.logger.Info("sitemap discovery",
			"url", baseURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Discover(ctx, baseURL)
}
