// Manual trigger: fetch and store day-ahead prices for one entity and
// one date, then exit. The counterpart of the scheduled daily batch.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"entsoe-collector/internal/collector"
	"entsoe-collector/internal/config"
	"entsoe-collector/internal/entsoe"
	"entsoe-collector/internal/registry"
	"entsoe-collector/internal/storage/migrations"
	pgstore "entsoe-collector/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML configuration file")
	entityID := flag.Int64("entity", 0, "Market entity ID to fetch prices for")
	dateStr := flag.String("date", "", "Target local date, YYYY-MM-DD (default: yesterday)")
	flag.Parse()

	logger := log.New(os.Stdout, "[fetch] ", log.LstdFlags)

	if *entityID == 0 {
		logger.Fatal("Missing required flag: -entity")
	}

	targetDate := time.Now().AddDate(0, 0, -1)
	if *dateStr != "" {
		var err error
		targetDate, err = time.Parse("2006-01-02", *dateStr)
		if err != nil {
			logger.Fatalf("Invalid -date %q: %v", *dateStr, err)
		}
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Fatalf("Load config: %v", err)
	}

	ctx := context.Background()

	pool, err := pgstore.NewPool(ctx, cfg.Database.PostgresDSN)
	if err != nil {
		logger.Fatalf("Connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		logger.Fatalf("Run postgres migrations: %v", err)
	}

	zoneStore := pgstore.NewZoneMappingStore(pool)
	if err := registry.Seed(ctx, zoneStore); err != nil {
		logger.Fatalf("Seed zone mappings: %v", err)
	}

	apiConfig := entsoe.Config{
		BaseURL:       cfg.Entsoe.BaseURL,
		SecurityToken: cfg.Entsoe.SecurityToken,
	}

	coll := collector.New(collector.Options{
		ZoneStore:    zoneStore,
		PriceStore:   pgstore.NewPricePointStore(pool),
		Fetcher:      entsoe.NewClient(apiConfig),
		APIConfig:    apiConfig,
		ForceRefetch: cfg.Collector.ForceRefetch,
		Logger:       logger,
	})

	count, err := coll.FetchAndStore(ctx, *entityID, targetDate)
	if err != nil {
		logger.Fatalf("Fetch failed: %v", err)
	}

	fmt.Printf("Stored %d price points for entity %d on %s\n",
		count, *entityID, targetDate.Format("2006-01-02"))
}
