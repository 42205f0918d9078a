package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wenjia-h/corpustree/internal/api"
	"github.com/wenjia-h/corpustree/internal/config"
	"github.com/wenjia-h/corpustree/internal/graphstore"
	"github.com/wenjia-h/corpustree/internal/metrics"
	"github.com/wenjia-h/corpustree/internal/pipeline"
	"github.com/wenjia-h/corpustree/internal/registry"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	corpora := registry.New(cfg.CorpusTTL)
	buildStats := metrics.NewStats(time.Hour)

	var graphs *graphstore.Client
	if cfg.GraphstoreURL != "" {
		graphs = graphstore.NewClient(cfg.GraphstoreURL, cfg.GraphstoreAPIKey)
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, corpora, graphs, buildStats, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, corpora, buildStats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if graphs != nil {
			graphs.Close()
		}
	}()

	log.Info("starting corpustree", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
