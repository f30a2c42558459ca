package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/silsilah/bloglist-service/internal/auth"
	"github.com/silsilah/bloglist-service/internal/config"
	"github.com/silsilah/bloglist-service/internal/handler"
	"github.com/silsilah/bloglist-service/internal/integrations/feed"
	"github.com/silsilah/bloglist-service/internal/repository"
	"github.com/silsilah/bloglist-service/internal/service"
	"github.com/silsilah/bloglist-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize storage
	var store repository.Store
	switch cfg.Storage {
	case "postgres":
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		store, err = repository.NewPostgres(db)
		if err != nil {
			logger.Fatalf("Failed to initialize postgres storage: %v", err)
		}
	default:
		store = repository.NewMemory()
	}
	defer store.Close()

	// Initialize layers
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	mailer := email.NewSender(cfg, logger)
	svc := service.NewService(store, tokens, mailer, logger, cfg)
	h := handler.NewHandler(svc, feed.NewRenderer(cfg), logger, cfg)

	if cfg.TestingAPI {
		logger.Warn("Testing API enabled, POST /api/testing/reset is exposed")
	}

	// Sweep expired sessions in the background
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 10m", svc.PurgeExpiredSessions); err != nil {
		logger.Fatalf("Failed to schedule session sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      h.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
