package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	dockbhttp "github.com/asafar/dockb/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverer_Discover(t *testing.T) {
	t.Parallel()

	t.Run("falls back to /sitemap.xml when robots.txt is absent", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%[1]s/docs/api</loc></url>
  <url><loc>%[1]s/docs/guide</loc></url>
</urlset>`, srv.URL)
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		d := dockbhttp.NewDiscoverer(nil)
		pages, err := d.Discover(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/docs/api", srv.URL + "/docs/guide"}, pages)
	})

	t.Run("follows robots.txt sitemap directives", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "User-agent: *\nSitemap: %s/custom-sitemap.xml\n", srv.URL)
		})
		mux.HandleFunc("/custom-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset><url><loc>%s/docs/only</loc></url></urlset>`, srv.URL)
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		d := dockbhttp.NewDiscoverer(nil)
		pages, err := d.Discover(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/docs/only"}, pages)
	})

	t.Run("recurses into sitemap indexes and dedupes", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<sitemapindex>
  <sitemap><loc>%[1]s/sitemap-child.xml</loc></sitemap>
  <sitemap><loc>%[1]s/sitemap-child.xml</loc></sitemap>
</sitemapindex>`, srv.URL)
		})
		mux.HandleFunc("/sitemap-child.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset>
  <url><loc>%[1]s/docs/a</loc></url>
  <url><loc>%[1]s/docs/a</loc></url>
  <url><loc>%[1]s/docs/b</loc></url>
</urlset>`, srv.URL)
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		d := dockbhttp.NewDiscoverer(nil)
		pages, err := d.Discover(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/docs/a", srv.URL + "/docs/b"}, pages)
	})

	t.Run("skips URLs on other hosts", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset>
  <url><loc>https://elsewhere.example.com/docs</loc></url>
  <url><loc>%s/docs/local</loc></url>
</urlset>`, srv.URL)
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		d := dockbhttp.NewDiscoverer(nil)
		pages, err := d.Discover(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/docs/local"}, pages)
	})

	t.Run("returns empty when no sitemap exists", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		d := dockbhttp.NewDiscoverer(nil)
		pages, err := d.Discover(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Empty(t, pages)
	})

	t.Run("tolerates malformed sitemap XML", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("this is not xml <<<"))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		d := dockbhttp.NewDiscoverer(nil)
		pages, err := d.Discover(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Empty(t, pages)
	})
}
