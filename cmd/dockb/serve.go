package main

import (
	"net/http"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/asafar/dockb/cron"
	dockbmcp "github.com/asafar/dockb/mcp"
)

// Run executes the serve command. The knowledge base is served over MCP,
// stdio by default or streamable HTTP with --http, with a cron-scheduled
// background refresh keeping it current.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, cancel := signal.NotifyContext(deps.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := dockbmcp.New(deps.KB, deps.Refresher, Version)

	scheduler := cron.NewScheduler(deps.Refresher, deps.Logger)
	if err := scheduler.Start(ctx, c.Schedule); err != nil {
		return err
	}
	defer scheduler.Stop()

	if c.HTTP == "" {
		deps.Logger.Info("serving MCP over stdio", "schedule", c.Schedule)
		return srv.Run(ctx, &sdk.StdioTransport{})
	}

	if c.Metrics != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", deps.Metrics.Handler())
			deps.Logger.Info("serving metrics", "addr", c.Metrics)
			if err := http.ListenAndServe(c.Metrics, mux); err != nil {
				deps.Logger.Error("metrics server stopped", "err", err)
			}
		}()
	}

	handler := sdk.NewStreamableHTTPHandler(func(r *http.Request) *sdk.Server {
		return srv
	}, nil)

	httpSrv := &http.Server{Addr: c.HTTP, Handler: handler}
	go func() {
		<-ctx.Done()
		httpSrv.Close()
	}()

	deps.Logger.Info("serving MCP over HTTP", "addr", c.HTTP, "schedule", c.Schedule)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
