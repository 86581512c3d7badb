package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"rentdesk/internal/api"
	"rentdesk/internal/config"
	"rentdesk/internal/ical"
	"rentdesk/internal/logger"
	"rentdesk/internal/repository/postgres"
	"rentdesk/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// .env is optional; env vars override the YAML file either way
	godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rentdesk API server...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.From, cfg.SendGrid.FromName)
	availabilitySvc := service.NewAvailabilityService(store.Reservations)
	reservationSvc := service.NewReservationService(store.Reservations, store.Assets, store.Customers, availabilitySvc, emailSvc)
	fetcher := ical.NewHTTPFetcher(cfg.FetchTimeout())
	syncSvc := service.NewSyncService(store.Assets, store.Reservations, availabilitySvc, fetcher)

	// Initialize Handlers
	reservationHandler := api.NewReservationHandler(reservationSvc, availabilitySvc)
	assetHandler := api.NewAssetHandler(store.Assets, store.Reservations, store.Customers)
	syncHandler := api.NewSyncHandler(syncSvc)

	router := api.NewRouter(reservationHandler, assetHandler, syncHandler)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
