package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/asafar/dockb"
	"github.com/asafar/dockb/mock"
	dockbslog "github.com/asafar/dockb/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	t.Run("delegates and logs at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		f := dockbslog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string, sess *dockb.Session) (string, error) {
				return "<html></html>", nil
			},
		}, logger)

		html, err := f.Fetch(context.Background(), "https://example.com/docs", nil)
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Contains(t, buf.String(), "page fetch")
		assert.Contains(t, buf.String(), "https://example.com/docs")
	})

	t.Run("logs the error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		f := dockbslog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string, sess *dockb.Session) (string, error) {
				return "", dockb.Errorf(dockb.EUNAVAILABLE, "HTTP 503")
			},
		}, logger)

		_, err := f.Fetch(context.Background(), "https://example.com/docs", nil)
		require.Error(t, err)
		assert.Contains(t, buf.String(), "HTTP 503")
	})

	t.Run("forwards reset to a resettable fetcher", func(t *testing.T) {
		t.Parallel()

		inner := &resettableFetcher{}
		f := dockbslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

		f.Reset()
		assert.True(t, inner.reset)
	})
}

type resettableFetcher struct {
	mock.Fetcher
	reset bool
}

func (f *resettableFetcher) Reset() { f.reset = true }

func TestLoggingAuthenticator(t *testing.T) {
	t.Parallel()

	t.Run("logs the winning strategy, never the credentials", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		a := dockbslog.NewLoggingAuthenticator(&mock.Authenticator{
			AuthenticateFn: func(ctx context.Context, creds dockb.Credentials) (*dockb.Session, error) {
				return &dockb.Session{Token: "tok", Strategy: "query-digest"}, nil
			},
		}, logger)

		_, err := a.Authenticate(context.Background(), dockb.Credentials{Email: "user@example.com", Password: "hunter2"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "query-digest")
		assert.NotContains(t, buf.String(), "hunter2")
		assert.NotContains(t, buf.String(), "user@example.com")
	})
}

func TestLoggingSitemapDiscoverer(t *testing.T) {
	t.Parallel()

	t.Run("logs the discovered URL count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		d := dockbslog.NewLoggingSitemapDiscoverer(&mock.SitemapDiscoverer{
			DiscoverFn: func(ctx context.Context, baseURL string) ([]string, error) {
				return []string{"https://example.com/docs/a", "https://example.com/docs/b"}, nil
			},
		}, logger)

		urls, err := d.Discover(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Len(t, urls, 2)
		assert.Contains(t, buf.String(), "count=2")
	})
}
