package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/asafar/dockb"
	"github.com/asafar/dockb/prometheus"
	"github.com/asafar/dockb/scrape"
	"github.com/asafar/dockb/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    dockb.Config
	KB        *dockb.KnowledgeBase
	Store     dockb.SnapshotStore
	Report    dockb.ReportWriter
	Refresher *scrape.Refresher
	Runs      *sqlite.RunService
	Metrics   *prometheus.Metrics
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL    string `help:"Documentation portal root URL" default:"https://developers.bas-ip.com" env:"DOCKB_BASE_URL"`
	Email      string `help:"Portal account email" env:"DOCKB_EMAIL"`
	Username   string `help:"Portal account username (defaults to email)" env:"DOCKB_USERNAME"`
	Password   string `help:"Portal account password" env:"DOCKB_PASSWORD"`
	DataFile   string `help:"Knowledge base data file" default:"dockb_api_data.json" env:"DOCKB_DATA_FILE"`
	ReportFile string `help:"Markdown report file" default:"dockb_api_docs.md" env:"DOCKB_REPORT_FILE"`
	DB         string `help:"Run history database path" default:"dockb.db" env:"DOCKB_DB"`
	MaxPages   int    `help:"Page limit per refresh" default:"200"`
	LastWins   bool   `help:"Let later pages overwrite earlier duplicate records"`
	Browser    bool   `help:"Fetch pages through headless Chrome instead of plain HTTP"`
	Verbose    bool   `short:"v" help:"Enable debug logging"`

	Refresh RefreshCmd `cmd:"" help:"Scrape the portal and rebuild the knowledge base"`
	Search  SearchCmd  `cmd:"" help:"Search known API methods"`
	Details DetailsCmd `cmd:"" help:"Show full documentation for one API method"`
	List    ListCmd    `cmd:"" help:"List all known API methods grouped by endpoint"`
	Status  StatusCmd  `cmd:"" help:"Show knowledge base status and recent runs"`
	Report  ReportCmd  `cmd:"" help:"Write the markdown report from the current knowledge base"`
	Serve   ServeCmd   `cmd:"" help:"Serve the knowledge base over the Model Context Protocol"`
}

// RefreshCmd is the "refresh" subcommand.
type RefreshCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Search term"`
}

// DetailsCmd is the "details" subcommand.
type DetailsCmd struct {
	Key string `arg:"" help:"Method key, usually the endpoint path"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	Runs int `help:"Number of recent runs to show" default:"5"`
}

// ReportCmd is the "report" subcommand.
type ReportCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	HTTP     string `help:"Serve MCP over HTTP on this address instead of stdio (e.g. :8080)"`
	Metrics  string `help:"Serve Prometheus metrics on this address (HTTP mode only)"`
	Schedule string `help:"Cron spec for automatic refreshes" default:"@every 24h"`
}
