package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"carelens/internal/api"
	"carelens/internal/api/handlers"
	"carelens/internal/classify"
	"carelens/internal/detector"
	"carelens/internal/ingest"
	"carelens/internal/jobs"
	"carelens/internal/repository"
	"carelens/internal/service"
	"carelens/pkg/auth"
	"carelens/pkg/config"
	"carelens/pkg/logger"
	"carelens/pkg/postgres"

	"go.uber.org/zap"
)

// @title Carelens API
// @version 1.0
// @description Care-provider statement analysis: upload statements, review overcharge alerts, export reports

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting carelens service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	stRepo := repository.NewStatementRepository(db, appLogger)
	decisionRepo := repository.NewDecisionRepository(db, appLogger)

	classifier := classify.New()
	if cfg.Detector.RulesPath != "" {
		rules, err := classify.LoadRules(cfg.Detector.RulesPath)
		if err != nil {
			appLogger.Fatal("Failed to load category rules", zap.Error(err))
		}
		classifier = classify.NewWithRules(rules)
		appLogger.Info("Loaded category rules", zap.String("path", cfg.Detector.RulesPath))
	}
	det := detector.New(classifier)

	extractor, err := ingest.NewGigaChatExtractor(&cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize extraction oracle", zap.Error(err))
	}
	defer extractor.Close()
	adapter := ingest.NewAdapter(extractor, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	stService := service.NewStatementService(txRepo, stRepo, adapter, appLogger)
	reportService := service.NewReportService(txRepo, stRepo, decisionRepo, det, classifier, appLogger)
	txService := service.NewTransactionService(txRepo, classifier, appLogger)
	decisionService := service.NewDecisionService(decisionRepo, txRepo, classifier, appLogger)

	authHandler := handlers.NewAuthHandler(authService, appLogger)
	stHandler := handlers.NewStatementHandler(stService, reportService, appLogger)
	txHandler := handlers.NewTransactionHandler(txService, appLogger)
	decisionHandler := handlers.NewDecisionHandler(decisionService, stService, appLogger)

	retention := jobs.NewRetentionJob(txRepo, stRepo, cfg.Retention, appLogger)
	if err := retention.Start(); err != nil {
		appLogger.Fatal("Failed to schedule retention sweep", zap.Error(err))
	}

	app := api.SetupRouter(authHandler, stHandler, txHandler, decisionHandler, jwtManager, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	retention.Stop()
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
