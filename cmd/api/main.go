package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/finance-assistant/internal/config"
	"github.com/Dan9191/finance-assistant/internal/engine"
	"github.com/Dan9191/finance-assistant/internal/handler"
	"github.com/Dan9191/finance-assistant/internal/integrations/assistant"
	"github.com/Dan9191/finance-assistant/internal/integrations/cbr"
	"github.com/Dan9191/finance-assistant/internal/repository"
	"github.com/Dan9191/finance-assistant/internal/scheduler"
	"github.com/Dan9191/finance-assistant/internal/service"
	"github.com/Dan9191/finance-assistant/internal/utils/email"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	// A missing .env is fine; the environment may already be populated
	_ = godotenv.Load()

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

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	cbrClient, err := cbr.NewClient(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to create CBR client: %v", err)
	}
	defer cbrClient.Close()

	var asst assistant.Assistant = assistant.Offline{}
	if claude, err := assistant.New(cfg, logger); err == nil {
		asst = claude
	} else {
		logger.Warnf("Chat runs without a language model: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	eng := engine.New(logger, engine.Options{
		SpendingGrowth:      cfg.SpendingGrowth,
		AnomalyThreshold:    cfg.AnomalyThreshold,
		InsightLimit:        cfg.InsightLimit,
		DefaultAnnualReturn: engine.Rate(cfg.DefaultReturn),
	})
	svc := service.NewService(service.Deps{
		Repo:      repo,
		Engine:    eng,
		Rates:     cbrClient,
		Assistant: asst,
		Mailer:    email.NewSender(cfg, logger),
	}, logger, cfg)
	h := handler.NewHandler(svc, logger)

	sched, err := scheduler.New(cfg, cbrClient, svc, logger)
	if err != nil {
		logger.Fatalf("Failed to create scheduler: %v", err)
	}
	sched.Start()

	// Setup router
	r := handler.NewRouter(h, cfg, logger)
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      c.Handler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	sched.Stop(shutdownCtx)
}
