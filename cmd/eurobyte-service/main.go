package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/Danish0929x/eurobytebackend/internal/app/background"
	"github.com/Danish0929x/eurobytebackend/internal/app/setup"
	"github.com/Danish0929x/eurobytebackend/internal/config"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/logger"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/migrate"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/postgres"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init logger
	logger.MustInit(cfg.LogConfig)
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.LedgerDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.LedgerDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Wire repos, publisher, metrics and usecases
	deps := setup.NewDependencies(cfg, db)

	// Schedule daily yield distribution
	tasks := background.NewBackgroundTasks(deps.YieldUsecase, cfg.Rewards.DailyCronSpec)
	if _, err := tasks.Start(context.Background()); err != nil {
		log.Fatalf("failed to schedule daily distribution: %v", err)
	}

	// Metrics endpoint
	addr := fmt.Sprintf("%s:%s", cfg.MetricsServer.Host, cfg.MetricsServer.Port)
	http.Handle("/metrics", promhttp.Handler())
	log.Printf("metrics server started on %s\n", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("failed to serve metrics: %v\n", err)
	}
}
