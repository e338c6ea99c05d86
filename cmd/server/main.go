package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vgcpastes/team-finder/internal/api"
	"github.com/vgcpastes/team-finder/internal/config"
	"github.com/vgcpastes/team-finder/internal/mcp"
	"github.com/vgcpastes/team-finder/internal/services"
)

func main() {
	cfg := config.Load()

	logLevel := slog.LevelInfo
	if !cfg.IsProduction() {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Initialize services
	sprites := services.NewSpriteService()
	fetcher := services.NewSheetFetcher(cfg.SpreadsheetID, cfg.FetchTimeout)
	normalizer := services.NewNormalizer(cfg.Columns, sprites)
	store := services.NewTeamStore()
	worker := services.NewRefreshWorker(fetcher, normalizer, store, cfg.Regulations, cfg.RefreshInterval)

	mcpServer := mcp.New(store, worker.Status, cfg.Recommend, logger)

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stdio transport serves a single MCP session over stdin/stdout and
	// skips the HTTP server entirely.
	if cfg.MCPTransport == "stdio" {
		go worker.Start(ctx)
		if err := mcpServer.ServeStdio(ctx); err != nil {
			logger.Error("mcp stdio server exited", "error", err)
			os.Exit(1)
		}
		return
	}

	// Start refresh worker in background with panic recovery
	go func() {
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Error("panic in refresh worker, restarting in 30 seconds", "panic", r)
					}
				}()
				worker.Start(ctx)
			}()

			select {
			case <-ctx.Done():
				return
			case <-time.After(30 * time.Second):
				logger.Info("refresh worker restarting after panic recovery")
			}
		}
	}()

	router := api.SetupRouter(cfg, store, worker, mcpServer.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Cancel the context to stop the refresh worker
	cancel()

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
