package scrape_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/asafar/dockb"
	"github.com/asafar/dockb/mock"
	"github.com/asafar/dockb/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() dockb.Config {
	cfg := dockb.DefaultConfig()
	cfg.BaseURL = "https://example.com"
	cfg.DocPaths = []string{"/docs/api"}
	cfg.LinkKeywords = []string{"api", "docs"}
	cfg.PolitenessDelay = 0
	cfg.MaxPages = 50
	return cfg
}

// structuralStub returns one structural candidate per page keyed by a path
// derived from the URL.
func structuralStub(recs map[string][]dockb.Candidate) *mock.StructuralExtractor {
	return &mock.StructuralExtractor{
		ExtractFn: func(html, sourceURL string) ([]dockb.Candidate, error) {
			return recs[sourceURL], nil
		},
	}
}

// resettableFetcher records whether the pipeline cleared it before fetching.
type resettableFetcher struct {
	mock.Fetcher
	reset bool
}

func (f *resettableFetcher) Reset() { f.reset = true }

func candidate(pass dockb.Pass, key, desc string) dockb.Candidate {
	return dockb.Candidate{
		Pass: pass,
		Record: dockb.MethodRecord{
			Key:         key,
			Name:        key,
			Description: desc,
		},
	}
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	t.Run("builds snapshot from seeded pages and discovered links", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			"https://example.com/docs/api":        "page one",
			"https://example.com/docs/api/device": "page two",
		}
		p := &scrape.Pipeline{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string, sess *dockb.Session) (string, error) {
					html, ok := pages[url]
					if !ok {
						return "", dockb.Errorf(dockb.EUNAVAILABLE, "HTTP 404")
					}
					return html, nil
				},
			},
			Links: &mock.LinkFinder{
				LinksFn: func(html, pageURL string) ([]string, error) {
					if pageURL == "https://example.com/docs/api" {
						return []string{"https://example.com/docs/api/device"}, nil
					}
					return nil, nil
				},
			},
			Structural: structuralStub(map[string][]dockb.Candidate{
				"https://example.com/docs/api":        {candidate(dockb.PassStructural, "/device/status", "Status of the device.")},
				"https://example.com/docs/api/device": {candidate(dockb.PassStructural, "/device/reboot", "Reboots the device.")},
			}),
			Logger: quietLogger(),
			Config: testConfig(),
		}

		snap, run, err := p.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, snap.Len())
		assert.Equal(t, 2, run.PagesFetched)
		assert.Equal(t, 0, run.PagesFailed)
		assert.Equal(t, 2, run.Records)
		assert.False(t, snap.LastUpdate().IsZero())
	})

	t.Run("seeds keyword-matching sitemap URLs", func(t *testing.T) {
		t.Parallel()

		var fetched []string
		p := &scrape.Pipeline{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string, sess *dockb.Session) (string, error) {
					fetched = append(fetched, url)
					return "content of " + url, nil
				},
			},
			Sitemaps: &mock.SitemapDiscoverer{
				DiscoverFn: func(ctx context.Context, baseURL string) ([]string, error) {
					return []string{
						"https://example.com/docs/api/media",
						"https://example.com/blog/announcement",
					}, nil
				},
			},
			Structural: structuralStub(map[string][]dockb.Candidate{
				"https://example.com/docs/api": {candidate(dockb.PassStructural, "/x", "Some method of the portal.")},
			}),
			Logger: quietLogger(),
			Config: testConfig(),
		}

		_, _, err := p.Run(context.Background())
		require.NoError(t, err)
		assert.Contains(t, fetched, "https://example.com/docs/api/media")
		assert.NotContains(t, fetched, "https://example.com/blog/announcement")
	})

	t.Run("counts failed pages and continues", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.DocPaths = []string{"/docs/api", "/docs/broken"}
		p := &scrape.Pipeline{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string, sess *dockb.Session) (string, error) {
					if url == "https://example.com/docs/broken" {
						return "", dockb.Errorf(dockb.EUNAVAILABLE, "HTTP 500")
					}
					return "fine", nil
				},
			},
			Structural: structuralStub(map[string][]dockb.Candidate{
				"https://example.com/docs/api": {candidate(dockb.PassStructural, "/ok", "A method that still extracts.")},
			}),
			Logger: quietLogger(),
			Config: cfg,
		}

		snap, run, err := p.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, run.PagesFetched)
		assert.Equal(t, 1, run.PagesFailed)
		assert.Equal(t, 1, snap.Len())
	})

	t.Run("extracts identical page bodies only once", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.DocPaths = []string{"/docs/api", "/docs/api-alias"}
		extractions := 0
		p := &scrape.Pipeline{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string, sess *dockb.Session) (string, error) {
					return "same body on both URLs", nil
				},
			},
			Structural: &mock.StructuralExtractor{
				ExtractFn: func(html, sourceURL string) ([]dockb.Candidate, error) {
					extractions++
					return []dockb.Candidate{candidate(dockb.PassStructural, "/m", "Method on the shared page.")}, nil
				},
			},
			Logger: quietLogger(),
			Config: cfg,
		}

		_, run, err := p.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, run.PagesFetched)
		assert.Equal(t, 1, extractions)
	})

	t.Run("falls back to summary when passes yield nothing", func(t *testing.T) {
		t.Parallel()

		p := &scrape.Pipeline{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string, sess *dockb.Session) (string, error) {
					return "<html>prose only</html>", nil
				},
			},
			Structural: structuralStub(nil),
			Summarizer: &mock.Summarizer{
				SummarizeFn: func(html, sourceURL string) (dockb.MethodRecord, error) {
					return dockb.MethodRecord{Key: "/docs/api", Name: "API Docs", Description: "Overview page.", SourceURL: sourceURL}, nil
				},
			},
			Logger: quietLogger(),
			Config: testConfig(),
		}

		snap, _, err := p.Run(context.Background())
		require.NoError(t, err)
		rec, ok := snap.Get("/docs/api")
		require.True(t, ok)
		assert.Equal(t, "API Docs", rec.Name)
	})

	t.Run("resets the fetcher before fetching so runs start cold", func(t *testing.T) {
		t.Parallel()

		f := &resettableFetcher{}
		f.FetchFn = func(ctx context.Context, url string, sess *dockb.Session) (string, error) {
			assert.True(t, f.reset, "fetch before reset")
			return "page", nil
		}

		p := &scrape.Pipeline{
			Fetcher: f,
			Structural: structuralStub(map[string][]dockb.Candidate{
				"https://example.com/docs/api": {candidate(dockb.PassStructural, "/device/status", "Device status.")},
			}),
			Logger: quietLogger(),
			Config: testConfig(),
		}

		_, _, err := p.Run(context.Background())
		require.NoError(t, err)
		assert.True(t, f.reset)
	})

	t.Run("returns ENOTFOUND when nothing extracts", func(t *testing.T) {
		t.Parallel()

		p := &scrape.Pipeline{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string, sess *dockb.Session) (string, error) {
					return "", dockb.Errorf(dockb.EUNAVAILABLE, "down")
				},
			},
			Structural: structuralStub(nil),
			Logger:     quietLogger(),
			Config:     testConfig(),
		}

		snap, run, err := p.Run(context.Background())
		require.Error(t, err)
		assert.Equal(t, dockb.ENOTFOUND, dockb.ErrorCode(err))
		assert.Nil(t, snap)
		assert.Equal(t, 1, run.PagesFailed)
	})

	t.Run("records auth outcome without failing on auth error", func(t *testing.T) {
		t.Parallel()

		p := &scrape.Pipeline{
			Auth: &mock.Authenticator{
				AuthenticateFn: func(ctx context.Context, creds dockb.Credentials) (*dockb.Session, error) {
					return nil, dockb.Errorf(dockb.EUNAUTHORIZED, "no authentication strategy succeeded")
				},
			},
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string, sess *dockb.Session) (string, error) {
					assert.True(t, sess.Anonymous())
					return "public page", nil
				},
			},
			Structural: structuralStub(map[string][]dockb.Candidate{
				"https://example.com/docs/api": {candidate(dockb.PassStructural, "/public", "A public method.")},
			}),
			Logger: quietLogger(),
			Config: testConfig(),
		}

		_, run, err := p.Run(context.Background())
		require.NoError(t, err)
		assert.False(t, run.Authenticated)
		assert.Empty(t, run.Strategy)
	})

	t.Run("threads session into fetches after successful auth", func(t *testing.T) {
		t.Parallel()

		p := &scrape.Pipeline{
			Auth: &mock.Authenticator{
				AuthenticateFn: func(ctx context.Context, creds dockb.Credentials) (*dockb.Session, error) {
					return &dockb.Session{Token: "tok", Strategy: "json-body"}, nil
				},
			},
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string, sess *dockb.Session) (string, error) {
					require.NotNil(t, sess)
					assert.Equal(t, "tok", sess.Token)
					return "member page", nil
				},
			},
			Structural: structuralStub(map[string][]dockb.Candidate{
				"https://example.com/docs/api": {candidate(dockb.PassStructural, "/member", "A member-only method.")},
			}),
			Logger: quietLogger(),
			Config: testConfig(),
		}

		_, run, err := p.Run(context.Background())
		require.NoError(t, err)
		assert.True(t, run.Authenticated)
		assert.Equal(t, "json-body", run.Strategy)
	})

	t.Run("reports metrics for fetched and failed pages", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.DocPaths = []string{"/docs/api", "/docs/broken"}
		var fetchedN, failedN int
		p := &scrape.Pipeline{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string, sess *dockb.Session) (string, error) {
					if url == "https://example.com/docs/broken" {
						return "", dockb.Errorf(dockb.EUNAVAILABLE, "HTTP 500")
					}
					return "ok", nil
				},
			},
			Structural: structuralStub(map[string][]dockb.Candidate{
				"https://example.com/docs/api": {candidate(dockb.PassStructural, "/m", "Counted method.")},
			}),
			Metrics: &mock.Metrics{
				ObservePageFetchedFn: func() { fetchedN++ },
				ObservePageFailedFn:  func() { failedN++ },
			},
			Logger: quietLogger(),
			Config: cfg,
		}

		_, _, err := p.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, fetchedN)
		assert.Equal(t, 1, failedN)
	})
}
