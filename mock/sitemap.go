package mock

import (
	"context"

	"github.com/asafar/dockb"
)

var _ dockb.SitemapDiscoverer = (*SitemapDiscoverer)(nil)

// SitemapDiscoverer is a mock implementation of dockb.SitemapDiscoverer.
type SitemapDiscoverer struct {
	DiscoverFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (d *SitemapDiscoverer) Discover(ctx context.Context, baseURL string) ([]string, error) {
	return d.DiscoverFn(ctx, baseURL)
}
