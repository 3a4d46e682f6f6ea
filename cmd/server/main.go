package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/storage/redis/v3"

	"linkisend/internal/config"
	"linkisend/internal/db"
	"linkisend/internal/jobs"
	"linkisend/internal/links"
	"linkisend/internal/metrics"
	"linkisend/internal/prices"
	"linkisend/internal/server"
	"linkisend/internal/validation"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Network family table (defaults + optional YAML override)
	networks, err := validation.LoadNetworks(cfg.NetworksFile)
	if err != nil {
		log.Fatalf("Failed to load networks config: %v", err)
	}

	// Link lifecycle service
	svc := links.NewService(database, links.Policy{
		TTL:                  cfg.LinkTTL,
		RequirePhoneMatch:    cfg.RequirePhoneMatch,
		ValidateSenderWallet: cfg.ValidateSenderWallet,
		CollapseClaimErrors:  cfg.CollapseClaimErrors,
	}, networks)

	// Price relay cache: Redis when configured, in-process otherwise
	var priceCache prices.Storage
	if cfg.RedisURL != "" {
		priceCache = redis.New(redis.Config{URL: cfg.RedisURL})
		log.Println("Price cache backed by Redis")
	} else {
		priceCache = prices.NewMemoryStorage()
		log.Println("Price cache in-process (set REDIS_URL for shared caching)")
	}
	priceSvc := prices.New(priceCache, cfg.PriceCacheTTL)

	// Metrics
	metrics.Init(database)

	// Background reaper for expired unclaimed links
	reaperCtx, stopReaper := context.WithCancel(ctx)
	defer stopReaper()
	go jobs.NewReaper(database, cfg.ReapInterval).Start(reaperCtx)

	// HTTP server
	srv := server.New(cfg)
	srv.RegisterRoutes(database, svc, priceSvc)

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopReaper()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
