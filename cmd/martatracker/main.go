package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/martatracker-data/internal/alerts"
	"github.com/martatracker-data/internal/api"
	"github.com/martatracker-data/internal/common/config"
	"github.com/martatracker-data/internal/common/db"
	"github.com/martatracker-data/internal/common/discord"
	"github.com/martatracker-data/internal/common/logger"
	"github.com/martatracker-data/internal/common/maintenance"
	"github.com/martatracker-data/internal/feed"
	"github.com/martatracker-data/internal/store"
)

func main() {
	// Load .env file if present; in deployed environments configuration
	// comes from real environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.NewWithLevel(
		logger.ParseLogLevel(cfg.Logging.Level),
		logger.ConsoleWriter(),
		logger.FileWriter(cfg.Logging.FilePath),
	)

	log.Info("MARTA alert tracker starting",
		"log_level", cfg.Logging.Level,
		"sync_interval", cfg.Sync.Interval,
		"http_addr", cfg.HTTP.Addr,
	)

	if err := cfg.Database.Validate(); err != nil {
		log.Fatal("Invalid database configuration", "error", err)
	}

	database, err := db.New(cfg.Database.ConnectionString(), log)
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := store.EnsureSchema(ctx, database); err != nil {
		log.Fatal("Failed to ensure database schema", "error", err)
	}

	params := store.NewParamStore(database)

	// The bearer credential is fetched once per process lifetime.
	token, found, err := params.Get(ctx, cfg.Feed.TokenParameter)
	if err != nil {
		log.Fatal("Failed to read feed credential", "error", err)
	}
	if !found {
		log.Fatal("Feed credential parameter not found", "parameter", cfg.Feed.TokenParameter)
	}

	alertStore := store.NewAlertStore(database)
	cursor := alerts.NewCursor(params, cfg.Sync.CursorParameter)
	searchClient := feed.NewClient(cfg.Feed, token, log)
	syncer := alerts.NewSyncer(searchClient, alertStore, cursor, log)
	queryService := alerts.NewQueryService(alertStore, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup

	// Periodic ingestion
	scheduler := alerts.NewScheduler(syncer, cfg.Sync.Interval, discord.NewClient(cfg.Sync.DiscordURL), log)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := scheduler.Start(ctx); err != nil {
			log.Error("Sync scheduler error", "error", err)
		}
	}()

	// Periodic sweep of expired alert rows
	cleanup := maintenance.NewCleanupScheduler(database, log, cfg.Sync.CleanupInterval)
	if err := cleanup.Start(ctx); err != nil {
		log.Error("Cleanup scheduler error", "error", err)
	}

	// HTTP read API
	server := api.NewServer(queryService, syncer, log)
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: server.Handler(),
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("HTTP server listening", "addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	<-sigChan
	log.Info("Shutdown signal received")

	cancel()
	cleanup.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	wg.Wait()

	log.Info("MARTA alert tracker stopped")
}
