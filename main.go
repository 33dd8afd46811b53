package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"compliance-service/internal/config"
	"compliance-service/internal/publisher"
	"compliance-service/internal/repository"
	"compliance-service/internal/server"
	"compliance-service/internal/service"
	"compliance-service/internal/view"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	log "github.com/sirupsen/logrus"

	"github.com/labstack/echo/v4"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn("Could not load .env file.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Could not load configuration")
	}

	setupLogging(cfg.Log)

	// Record source
	var (
		repo repository.ComplianceRepository
		db   *sql.DB
	)
	if cfg.DB.URL != "" {
		db = openDatabase(cfg.DB)
		defer db.Close()
		repo = repository.NewPostgresComplianceRepository(db)
	} else {
		log.Info("DATABASE_URL is not set, serving built-in sample records")
		repo = repository.NewMemoryRepository()
	}

	// Audit publisher
	var auditPublisher service.AuditPublisher
	if cfg.Kafka.BootstrapServers != "" {
		kafkaPublisher, err := publisher.NewAuditPublisher(cfg.Kafka.BootstrapServers, cfg.Kafka.AuditTopic)
		if err != nil {
			log.WithError(err).Fatal("Could not create audit publisher")
		}
		defer kafkaPublisher.Close()
		auditPublisher = kafkaPublisher
	} else {
		log.Info("KAFKA_BOOTSTRAP_SERVERS is not set, audit events go to the log")
		auditPublisher = publisher.NewLogPublisher(log.StandardLogger())
	}

	// Create service
	dashboardService := service.NewDashboardService(repo, service.NewAuditService(auditPublisher), cfg.Dashboard.ComplianceScore)

	// Create server
	srv := server.NewServer(dashboardService, db, cfg.Dashboard.Profile())

	renderer, err := view.NewRenderer()
	if err != nil {
		log.WithError(err).Fatal("Could not load page templates")
	}

	// Setup Echo
	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(server.Middleware()...)
	srv.Register(e)

	go func() {
		log.WithField("port", cfg.Server.Port).Info("Compliance service is starting with Echo")
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithField("error", err).Fatal("Echo server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Echo server shutdown failed")
	}
	log.Info("Compliance service stopped")
}

func setupLogging(cfg config.Log) {
	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
		})
	}

	log.SetOutput(os.Stdout)

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.DebugLevel
	}
	log.SetLevel(level)
}

func openDatabase(cfg config.DB) *sql.DB {
	log.Info("Starting database migration...")
	m, err := migrate.New(cfg.MigrationsPath, cfg.URL)
	if err != nil {
		log.WithField("error", err).Fatal("Could not create migrate instance")
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.WithField("error", err).Fatal("Could not apply migration")
	}
	log.Info("Database migration finished successfully.")

	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		log.WithField("error", err).Fatal("Could not connect to the database")
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		log.WithField("error", err).Fatal("Could not ping the database")
	}
	log.Info("Successfully connected to the PostgreSQL database.")

	return db
}
