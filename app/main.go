package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ftacconi/jornal/app/api"
	"github.com/ftacconi/jornal/app/cfg"
	"github.com/ftacconi/jornal/app/feed"
	"github.com/ftacconi/jornal/app/section"
	"github.com/ftacconi/jornal/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Jornal server", "version", appCfg.Version)

	// Load topic configurations
	topicCache := feed.NewTopicCache(appCfg.TopicsDir)
	if err := topicCache.Run(); err != nil {
		slog.Error("Failed to load topic configurations", "error", err)
		os.Exit(1)
	}
	slog.Info("Topic configurations loaded", "dir", appCfg.TopicsDir, "count", topicCache.GetTopicCount())

	// Initialize core components
	httpClient := &http.Client{Timeout: appCfg.GetFeedTimeout()}
	fetcher := feed.NewFetcher(httpClient, appCfg.UserAgent, appCfg.GetFeedCacheTTL())
	normalizer := feed.NewNormalizer(appCfg.Location())
	filterer := feed.NewFilterer()
	collector := feed.NewCollector(fetcher, normalizer, filterer)

	sections := section.NewCache(collector, topicCache, appCfg.SnapshotPath, appCfg.GetSectionTTL())

	// Initialize and start scheduler
	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval", appCfg.GetSchedulerInterval())
	scheduler := tasks.NewScheduler(sections, fetcher, topicCache,
		appCfg.GetSchedulerInterval(), appCfg.WorkerCount)
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize HTTP server
	handler := api.NewHandler(sections, topicCache, appCfg.BaseUrl, appCfg.Location())
	server := api.NewServer(handler, appCfg.StaticDir, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
