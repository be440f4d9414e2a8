package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/prom-reaper/prom-reaper/internal/config"
	"github.com/prom-reaper/prom-reaper/internal/httpapi"
	prlog "github.com/prom-reaper/prom-reaper/internal/log"
	"github.com/prom-reaper/prom-reaper/internal/scrape"
	"github.com/prom-reaper/prom-reaper/internal/shard"
)

// runServer wires together the shard store, scrape loop, and HTTP server
// described by the given config, then blocks until SIGINT/SIGTERM.
// Returns the process exit code.
func runServer(cfg *config.Config) int {
	listener, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		prlog.Errorf("bind %s: %v", cfg.Listen, err)
		return 1
	}

	store := shard.NewStore()

	loop, err := scrape.New(cfg, store)
	if err != nil {
		prlog.Errorf("create scrape loop: %v", err)
		return 1
	}
	if err := loop.Start(); err != nil {
		prlog.Errorf("start scrape loop: %v", err)
		return 1
	}

	srv := httpapi.New(store, prometheus.NewRegistry())

	httpServer := &http.Server{
		Handler:      srv.Router(),
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			serveErrCh <- err
			return
		}
		serveErrCh <- nil
	}()

	prlog.Infof("prom-reaper listening at %s", cfg.Listen)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigs:
		prlog.Info("shutting down")
	case err := <-serveErrCh:
		if err != nil {
			prlog.Errorf("http server: %v", err)
			return 1
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	httpServer.Shutdown(ctx)
	loop.Shutdown()

	return 0
}
