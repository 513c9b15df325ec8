package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"entsoe-collector/internal/collector"
	"entsoe-collector/internal/config"
	"entsoe-collector/internal/entsoe"
	"entsoe-collector/internal/observability"
	"entsoe-collector/internal/registry"
	"entsoe-collector/internal/storage"
	"entsoe-collector/internal/storage/clickhouse"
	"entsoe-collector/internal/storage/migrations"
	pgstore "entsoe-collector/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML configuration file")
	flag.Parse()

	logger := log.New(os.Stdout, "[collector] ", log.LstdFlags)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Fatalf("Load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	pool, err := pgstore.NewPool(ctx, cfg.Database.PostgresDSN)
	if err != nil {
		logger.Fatalf("Connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		logger.Fatalf("Run postgres migrations: %v", err)
	}

	zoneStore := pgstore.NewZoneMappingStore(pool)
	priceStore := pgstore.NewPricePointStore(pool)

	if err := registry.Seed(ctx, zoneStore); err != nil {
		logger.Fatalf("Seed zone mappings: %v", err)
	}

	// Revision audit log is optional: without ClickHouse configured the
	// collector runs on Postgres alone.
	var revisionStore storage.PriceRevisionStore
	if cfg.Database.ClickhouseDSN != "" {
		conn, err := clickhouse.NewConn(ctx, cfg.Database.ClickhouseDSN)
		if err != nil {
			logger.Fatalf("Connect to clickhouse: %v", err)
		}
		defer conn.Close()

		if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
			logger.Fatalf("Run clickhouse migrations: %v", err)
		}
		revisionStore = clickhouse.NewPriceRevisionStore(conn)
		logger.Printf("Price revision audit log enabled")
	}

	metrics := observability.New()
	if cfg.Metrics.Addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("Starting metrics server on %s", cfg.Metrics.Addr)
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	apiConfig := entsoe.Config{
		BaseURL:       cfg.Entsoe.BaseURL,
		SecurityToken: cfg.Entsoe.SecurityToken,
	}
	client := entsoe.NewClient(apiConfig)

	coll := collector.New(collector.Options{
		ZoneStore:     zoneStore,
		PriceStore:    priceStore,
		RevisionStore: revisionStore,
		Fetcher:       client,
		APIConfig:     apiConfig,
		ForceRefetch:  cfg.Collector.ForceRefetch,
		Metrics:       metrics,
		Logger:        logger,
	})

	schedulerLoc := time.Local
	if cfg.Collector.Timezone != "" {
		schedulerLoc, err = time.LoadLocation(cfg.Collector.Timezone)
		if err != nil {
			logger.Fatalf("Load scheduler timezone: %v", err)
		}
	}

	scheduler, err := collector.NewScheduler(coll, collector.SchedulerConfig{
		RunAt:      cfg.Collector.RunAt,
		RunAtStart: cfg.Collector.RunAtStart,
		Location:   schedulerLoc,
	}, logger)
	if err != nil {
		logger.Fatalf("Create scheduler: %v", err)
	}

	if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("Scheduler stopped: %v", err)
	}

	logger.Println("Shutdown complete")
}
