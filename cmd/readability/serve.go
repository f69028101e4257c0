package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Furafrafrfr/readability/api"
	"github.com/Furafrafrfr/readability/cache"
)

// Run executes the serve command: starts the HTTP API server and blocks
// until a shutdown signal arrives, draining in-flight requests first.
func (c *ServeCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	cc := cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	deps.Cache = cc
	deps.StartTime = time.Now()

	router := api.NewRouter(cfg, cc, deps.StartTime)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
		return err
	}
	slog.Info("HTTP server drained gracefully")
	return nil
}
