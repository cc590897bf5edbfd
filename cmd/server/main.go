package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	api "servicehours-backend/internal/api/http"
	"servicehours-backend/internal/config"
	"servicehours-backend/internal/logger"
	"servicehours-backend/internal/repository/postgres"
	"servicehours-backend/internal/security"
	"servicehours-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting service-hours server...", "log_level", cfg.Log.Level)

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	dispatcher := service.NewDispatcher(store.UserRepository, store.NotificationRepository, emailSvc)

	authSvc := service.NewAuthService(store.UserRepository, tokens)
	eventSvc := service.NewEventService(store.EventRepository)
	registrationSvc := service.NewRegistrationService(store.EventRepository, dispatcher)
	notificationSvc := service.NewNotificationService(store.NotificationRepository)
	reportSvc := service.NewReportService(store.EventRepository)

	server := api.NewServer(authSvc, eventSvc, registrationSvc, notificationSvc, reportSvc, tokens)

	addr := cfg.GetServerAddress()
	logger.Info("HTTP server listening", "addr", addr)
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
