package readability_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/asafar/dockb"
	"github.com/asafar/dockb/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizer_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("builds descriptive record keyed by URL path", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Device API Overview</title></head><body>
			<article>
				<h1>Device API Overview</h1>
				<p>The device API lets integrators monitor and control intercom panels
				over the local network. All requests require authentication.</p>
				<p>Endpoints are grouped by subsystem: access control, media, and
				system management.</p>
			</article>
		</body></html>`

		s := readability.NewSummarizer()
		rec, err := s.Summarize(html, "https://example.com/docs/device-api")
		require.NoError(t, err)

		assert.Equal(t, "/docs/device-api", rec.Key)
		assert.Equal(t, "Device API Overview", rec.Name)
		assert.Contains(t, rec.Description, "monitor and control intercom panels")
		assert.Equal(t, "https://example.com/docs/device-api", rec.SourceURL)
		assert.Empty(t, rec.HTTPMethod)
		assert.Empty(t, rec.Endpoint)
	})

	t.Run("clips long descriptions at a word boundary", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40)
		html := `<html><head><title>Long Page</title></head><body><article><p>` + long + `</p></article></body></html>`

		s := readability.NewSummarizer()
		rec, err := s.Summarize(html, "https://example.com/docs/long")
		require.NoError(t, err)

		assert.LessOrEqual(t, len(rec.Description), 510)
		assert.False(t, strings.HasSuffix(strings.TrimSuffix(rec.Description, "…"), " "))
	})

	t.Run("clips spaceless multibyte text on a rune boundary", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("ドアを開ける方法について説明します。", 40)
		html := `<html><head><title>日本語ページ</title></head><body><article><p>` + long + `</p></article></body></html>`

		s := readability.NewSummarizer()
		rec, err := s.Summarize(html, "https://example.com/docs/ja")
		require.NoError(t, err)

		assert.True(t, utf8.ValidString(rec.Description))
		assert.True(t, strings.HasSuffix(rec.Description, "…"))
	})

	t.Run("falls back to key when page has no title", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Short page with no title element at all, just prose.</p></body></html>`

		s := readability.NewSummarizer()
		rec, err := s.Summarize(html, "https://example.com/docs/untitled")
		require.NoError(t, err)

		assert.Equal(t, "/docs/untitled", rec.Key)
		assert.Equal(t, "/docs/untitled", rec.Name)
	})

	t.Run("uses full URL as key when path is bare", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Home</title></head><body><p>Welcome to the developer portal.</p></body></html>`

		s := readability.NewSummarizer()
		rec, err := s.Summarize(html, "https://example.com/")
		require.NoError(t, err)

		assert.Equal(t, "https://example.com/", rec.Key)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		s := readability.NewSummarizer()
		_, err := s.Summarize("", "https://example.com/docs")

		require.Error(t, err)
		assert.Equal(t, dockb.EINVALID, dockb.ErrorCode(err))
	})
}
