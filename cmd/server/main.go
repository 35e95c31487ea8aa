package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skyward/tower/internal/api"
	"skyward/tower/internal/config"
	"skyward/tower/internal/db"
	"skyward/tower/internal/logging"
	"skyward/tower/internal/metrics"
	gormModels "skyward/tower/internal/models/gorm"
	"skyward/tower/internal/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Tower starting up",
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	// Connect to DB with sqlx
	if err := db.InitPostgres(cfg.PostgresDSN); err != nil {
		logging.Error("Failed to connect to Postgres (sqlx)", "error", err.Error())
		log.Fatalf("Failed to connect to Postgres (sqlx): %v", err)
	}
	logging.Info("Connected to Postgres (sqlx)")

	// Connect to DB with GORM
	gdb, err := db.InitPostgresORM(cfg.PostgresDSN)
	if err != nil {
		logging.Error("Failed to connect to Postgres (GORM)", "error", err.Error())
		log.Fatalf("Failed to connect to Postgres (GORM): %v", err)
	}
	logging.Info("Connected to Postgres (GORM)")

	if err := gormModels.AutoMigrate(gdb); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	metricsReg := metrics.NewMetricsRegistry()

	deps, err := api.InitDependencies(cfg, metricsReg)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}

	// Confirmation emails are sent off the notification stream,
	// independent of the booking transactions.
	go func() {
		if err := deps.Worker.Start(context.Background(), 3); err != nil {
			logging.Error("Email worker stopped", "error", err.Error())
		}
	}()

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, metricsReg, upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	logging.Info("Server starting",
		"port", cfg.Port,
		"environment", cfg.AppEnv,
	)

	log.Printf("Starting server on :%s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, mux))
}
