// Package scrape orchestrates one documentation refresh: authentication,
// worklist seeding, paced fetching, the extraction passes, and snapshot
// assembly.
package scrape

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/asafar/dockb"
)

// Pipeline runs a full scrape of a vendor documentation portal and builds
// the resulting knowledge-base snapshot. All failures below the whole-run
// level are absorbed: a page that cannot be fetched or parsed is counted
// and skipped, never fatal.
type Pipeline struct {
	Auth       dockb.Authenticator
	Fetcher    dockb.Fetcher
	Sitemaps   dockb.SitemapDiscoverer
	Links      dockb.LinkFinder
	Structural dockb.StructuralExtractor
	Summarizer dockb.Summarizer
	Converter  dockb.Converter
	Metrics    dockb.Metrics
	Logger     *slog.Logger

	Config dockb.Config
}

// Run executes the pipeline and returns the snapshot it built together with
// run bookkeeping. The returned error is non-nil only when the run as a
// whole failed; the one such case besides context cancellation is a run
// that produced zero records, reported as ENOTFOUND so callers keep serving
// the previous snapshot.
func (p *Pipeline) Run(ctx context.Context) (*dockb.Snapshot, *dockb.Run, error) {
	run := &dockb.Run{StartedAt: time.Now()}
	logger := p.logger()

	// A long-lived fetcher (serve mode) must not carry cached pages from a
	// previous run into this one.
	if r, ok := p.Fetcher.(interface{ Reset() }); ok {
		r.Reset()
	}

	sess := p.authenticate(ctx, run, logger)

	work := NewWorklist(p.Config.MaxPages)
	p.seed(ctx, work, logger)

	pacer := NewPacer(p.Config.PolitenessDelay)
	snap := dockb.NewSnapshot()
	seenBodies := make(map[uint64]struct{})

	for {
		pageURL, ok := work.Pop()
		if !ok {
			break
		}
		if err := pacer.Wait(ctx); err != nil {
			run.FinishedAt = time.Now()
			return nil, run, err
		}

		html, err := p.Fetcher.Fetch(ctx, pageURL, sess)
		if err != nil {
			run.PagesFailed++
			p.observePageFailed()
			logger.Warn("page fetch failed", "url", pageURL, "err", err)
			continue
		}
		run.PagesFetched++
		p.observePageFetched()

		// Portals often serve one page under several URLs. Hash the body
		// and extract each distinct page once.
		digest := xxhash.Sum64String(html)
		if _, dup := seenBodies[digest]; dup {
			continue
		}
		seenBodies[digest] = struct{}{}

		added := p.extractPage(html, pageURL, snap, logger)
		logger.Debug("page processed", "url", pageURL, "records", added)

		p.discoverLinks(html, pageURL, work, logger)
	}

	run.FinishedAt = time.Now()
	run.Records = snap.Len()

	if snap.Len() == 0 {
		return nil, run, dockb.Errorf(dockb.ENOTFOUND, "no API methods extracted from %s", p.Config.BaseURL)
	}

	snap.SetLastUpdate(time.Now())
	return snap, run, nil
}

// authenticate runs the strategy chain. Authentication failure downgrades
// the run to anonymous instead of aborting it: public pages are still worth
// scraping.
func (p *Pipeline) authenticate(ctx context.Context, run *dockb.Run, logger *slog.Logger) *dockb.Session {
	if p.Auth == nil {
		return nil
	}
	sess, err := p.Auth.Authenticate(ctx, p.Config.Credentials)
	if err != nil {
		logger.Info("proceeding unauthenticated", "reason", dockb.ErrorMessage(err))
		return nil
	}
	run.Authenticated = true
	run.Strategy = sess.Strategy
	logger.Info("authenticated", "strategy", sess.Strategy)
	return sess
}

// seed fills the worklist with the configured documentation paths and any
// keyword-matching sitemap URLs.
func (p *Pipeline) seed(ctx context.Context, work *Worklist, logger *slog.Logger) {
	for _, path := range p.Config.DocPaths {
		work.Push(p.Config.ResolveURL(path))
	}

	if p.Sitemaps == nil {
		return
	}
	urls, err := p.Sitemaps.Discover(ctx, p.Config.BaseURL)
	if err != nil {
		logger.Warn("sitemap discovery failed", "err", err)
		return
	}
	seeded := 0
	for _, u := range urls {
		if !p.matchesKeyword(u) {
			continue
		}
		if work.Push(u) {
			seeded++
		}
	}
	logger.Info("worklist seeded", "sitemap", seeded, "total", work.Len())
}

// extractPage runs the extraction passes over one page, merges their
// candidates, and adds the merged records to the snapshot. It returns the
// number of records added.
func (p *Pipeline) extractPage(html, pageURL string, snap *dockb.Snapshot, logger *slog.Logger) int {
	candidates := dockb.PatternPass(p.pageText(html), pageURL)

	if p.Structural != nil {
		structural, err := p.Structural.Extract(html, pageURL)
		if err != nil {
			logger.Warn("structural pass failed", "url", pageURL, "err", err)
		} else {
			candidates = append(candidates, structural...)
		}
	}

	if len(candidates) == 0 && p.Summarizer != nil {
		rec, err := p.Summarizer.Summarize(html, pageURL)
		if err == nil {
			candidates = append(candidates, dockb.Candidate{Pass: dockb.PassSummary, Record: rec})
		}
	}

	added := 0
	for _, rec := range dockb.MergePage(candidates) {
		if snap.Add(rec, p.Config.DuplicatePolicy) {
			added++
		}
	}
	return added
}

// discoverLinks queues keyword-matching links found on the page.
func (p *Pipeline) discoverLinks(html, pageURL string, work *Worklist, logger *slog.Logger) {
	if p.Links == nil {
		return
	}
	links, err := p.Links.Links(html, pageURL)
	if err != nil {
		logger.Warn("link discovery failed", "url", pageURL, "err", err)
		return
	}
	for _, link := range links {
		work.Push(link)
	}
}

// pageText derives the text the pattern pass scans. Markdown conversion
// strips tags while keeping line structure; when conversion fails the raw
// HTML is scanned instead, which still catches verb+path mentions.
func (p *Pipeline) pageText(html string) string {
	if p.Converter == nil {
		return html
	}
	text, err := p.Converter.Convert(html)
	if err != nil || strings.TrimSpace(text) == "" {
		return html
	}
	return text
}

func (p *Pipeline) matchesKeyword(u string) bool {
	lowered := strings.ToLower(u)
	for _, kw := range p.Config.LinkKeywords {
		if strings.Contains(lowered, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func (p *Pipeline) observePageFetched() {
	if p.Metrics != nil {
		p.Metrics.ObservePageFetched()
	}
}

func (p *Pipeline) observePageFailed() {
	if p.Metrics != nil {
		p.Metrics.ObservePageFailed()
	}
}
