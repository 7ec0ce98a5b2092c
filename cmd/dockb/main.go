// Command dockb scrapes a vendor API documentation portal into a queryable
// knowledge base and serves it to coding assistants over MCP.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/asafar/dockb"
	"github.com/asafar/dockb/auth"
	"github.com/asafar/dockb/fs"
	"github.com/asafar/dockb/goquery"
	"github.com/asafar/dockb/htmltomarkdown"
	dockbhttp "github.com/asafar/dockb/http"
	"github.com/asafar/dockb/prometheus"
	"github.com/asafar/dockb/readability"
	"github.com/asafar/dockb/rod"
	"github.com/asafar/dockb/scrape"
	dockbslog "github.com/asafar/dockb/slog"
	"github.com/asafar/dockb/sqlite"
)

// Version is set by the build.
var Version = "dev"

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database holding run history.
	DB *sqlite.DB

	// Fetcher is closed on shutdown.
	Fetcher dockb.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		m.Fetcher.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("dockb"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'dockb --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)
	deps.Config = configFromCLI(cli)
	if err := deps.Config.Validate(); err != nil {
		return err
	}

	deps.KB = dockb.NewKnowledgeBase()
	deps.Store = fs.NewStore(deps.Config.DataFile)
	deps.Report = fs.NewReport(deps.Config.ReportFile)
	deps.Metrics = prometheus.NewMetrics()

	// Warm the knowledge base from the data file so query commands work
	// without a refresh.
	if snap, err := deps.Store.Load(ctx); err == nil && snap.Len() > 0 {
		deps.KB.Replace(snap)
	}

	// Run history is best effort; query commands still work if the
	// database cannot be opened.
	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		deps.Logger.Warn("run history unavailable", "path", cli.DB, "err", err)
		m.DB = nil
	} else {
		deps.Runs = sqlite.NewRunService(m.DB)
	}

	// The refresh pipeline is only wired for commands that scrape. Kong
	// accepts global flags before the subcommand, so the command name has
	// to come from the parsed context, not the raw arguments.
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")
	if cmd == "refresh" || cmd == "serve" {
		refresher, err := m.buildRefresher(cli, deps)
		if err != nil {
			return err
		}
		deps.Refresher = refresher
	}
	defer m.Close()

	return kongCtx.Run(deps)
}

// buildRefresher wires the full scrape pipeline.
func (m *Main) buildRefresher(cli *CLI, deps *Dependencies) (*scrape.Refresher, error) {
	cfg := deps.Config
	client := dockbhttp.NewClient(cfg.RequestTimeout)

	var fetcher dockb.Fetcher
	if cli.Browser {
		var rodOpts []rod.ManagerOption
		if cfg.BrowserRecyclePages > 0 {
			rodOpts = append(rodOpts, rod.WithMaxPages(int64(cfg.BrowserRecyclePages)))
		}
		rodFetcher, err := rod.NewFetcher(rodOpts...)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --browser")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rodFetcher
	} else {
		fetcher = dockbhttp.NewFetcher(dockbhttp.WithClient(client))
	}
	m.Fetcher = fetcher

	chain := auth.NewChain(
		auth.NewQueryDigest(client, cfg.ResolveURL("/login")),
		auth.NewJSONBody(client, cfg.BaseURL, cfg.LoginEndpoints),
		auth.NewFormBody(client, cfg.BaseURL, cfg.LoginEndpoints),
		auth.NewFormDiscovery(client, cfg.BaseURL),
	).WithMetrics(deps.Metrics)

	pipeline := &scrape.Pipeline{
		Auth:       dockbslog.NewLoggingAuthenticator(chain, deps.Logger),
		Fetcher:    dockbslog.NewLoggingFetcher(fetcher, deps.Logger),
		Sitemaps:   dockbslog.NewLoggingSitemapDiscoverer(dockbhttp.NewDiscoverer(client), deps.Logger),
		Links:      goquery.NewLinkFinder(cfg.LinkKeywords),
		Structural: goquery.NewStructuralExtractor(),
		Summarizer: readability.NewSummarizer(),
		Converter:  htmltomarkdown.NewConverter(),
		Metrics:    deps.Metrics,
		Logger:     deps.Logger,
		Config:     cfg,
	}

	refresher := &scrape.Refresher{
		Pipeline: pipeline,
		KB:       deps.KB,
		Store:    deps.Store,
		Report:   deps.Report,
		Metrics:  deps.Metrics,
		Logger:   deps.Logger,
	}
	if deps.Runs != nil {
		refresher.Runs = deps.Runs
	}
	return refresher, nil
}

// configFromCLI maps global flags onto the pipeline configuration.
func configFromCLI(cli *CLI) dockb.Config {
	cfg := dockb.DefaultConfig()
	cfg.BaseURL = cli.BaseURL
	cfg.Credentials = dockb.Credentials{
		Email:    cli.Email,
		Username: cli.Username,
		Password: cli.Password,
	}
	cfg.DataFile = cli.DataFile
	cfg.ReportFile = cli.ReportFile
	cfg.MaxPages = cli.MaxPages
	if cli.LastWins {
		cfg.DuplicatePolicy = dockb.LastWins
	}
	return cfg
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// refreshTimeout bounds a whole refresh cycle.
const refreshTimeout = 30 * time.Minute
