package dockb

import (
	"net/url"
	"time"
)

// Config is the explicit configuration value threaded into the pipeline's
// entry point. There is no package-level mutable configuration.
type Config struct {
	// BaseURL is the portal root, e.g. "https://developers.bas-ip.com".
	BaseURL string

	// Credentials for the portal. May be empty; the pipeline then crawls
	// public pages only.
	Credentials Credentials

	// LoginEndpoints are candidate login paths tried by the body-based
	// authentication strategies, relative to BaseURL.
	LoginEndpoints []string

	// DocPaths are known documentation section paths seeding the worklist,
	// relative to BaseURL.
	DocPaths []string

	// LinkKeywords is the allow-list for runtime link discovery: an anchor
	// href containing any of these keywords is queued as a candidate URL.
	LinkKeywords []string

	// RequestTimeout bounds each fetch attempt so a stuck request cannot
	// stall the whole cycle.
	RequestTimeout time.Duration

	// PolitenessDelay is the minimum spacing between discovered-link
	// fetches. It is the deliberate substitute for fetch parallelism.
	PolitenessDelay time.Duration

	// MaxPages bounds a run to stop runaway link discovery.
	MaxPages int

	// BrowserRecyclePages is how many pages the headless browser renders
	// before it is relaunched to reclaim memory. Only used by the browser
	// fetcher; zero means the fetcher's default.
	BrowserRecyclePages int

	// DuplicatePolicy resolves duplicate keys across pages within one run.
	DuplicatePolicy DuplicatePolicy

	// DataFile is the persisted knowledge-base JSON path.
	DataFile string

	// ReportFile is the generated markdown report path.
	ReportFile string
}

// DefaultConfig returns the configuration matching the portal this tool was
// built for. Credentials are intentionally absent.
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://developers.bas-ip.com",
		LoginEndpoints: []string{
			"/api/auth/login",
			"/auth/login",
			"/login",
			"/api/login",
		},
		DocPaths: []string{
			"/documentation",
			"/docs",
			"/api-docs",
			"/reference",
			"/documentation/android-panels",
			"/docs/android-panels",
			"/api/android-panels",
			"/reference/android-panels",
		},
		LinkKeywords: []string{
			"api", "android", "camdroid", "auth", "device",
			"door", "camera", "intercom", "panel", "doc",
		},
		RequestTimeout:      10 * time.Second,
		PolitenessDelay:     time.Second,
		MaxPages:            200,
		BrowserRecyclePages: 75,
		DuplicatePolicy:     FirstWins,
		DataFile:            "dockb_api_data.json",
		ReportFile:          "dockb_api_docs.md",
	}
}

// Validate ensures the configuration is coherent.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return Errorf(EINVALID, "base URL required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || u.Scheme == "" {
		return Errorf(EINVALID, "base URL must be absolute: %q", c.BaseURL)
	}
	if c.RequestTimeout <= 0 {
		return Errorf(EINVALID, "request timeout must be positive")
	}
	if c.PolitenessDelay < 0 {
		return Errorf(EINVALID, "politeness delay must not be negative")
	}
	if c.MaxPages <= 0 {
		return Errorf(EINVALID, "max pages must be positive")
	}
	if c.BrowserRecyclePages < 0 {
		return Errorf(EINVALID, "browser recycle pages must not be negative")
	}
	return nil
}

// ResolveURL joins a path onto the base URL.
func (c *Config) ResolveURL(path string) string {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return c.BaseURL + path
	}
	ref, err := url.Parse(path)
	if err != nil {
		return c.BaseURL + path
	}
	return base.ResolveReference(ref).String()
}
