package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/clients/yahoo"
	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/config"
	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/database"
	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/calculations"
	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/marketdata"
	marketdatahandlers "github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/marketdata/handlers"
	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/optimization"
	optimizationhandlers "github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/optimization/handlers"
	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/prediction"
	predictionhandlers "github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/prediction/handlers"
	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/risk"
	riskhandlers "github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/risk/handlers"
	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/simulation"
	simulationhandlers "github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/simulation/handlers"
	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/universe"
	universehandlers "github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/universe/handlers"
	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/scheduler"
	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/server"
	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting risk engine")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Market data pipeline
	yahooClient := yahoo.NewClient(cfg.YahooBaseURL, log)
	priceStore := marketdata.NewPriceStore(db)
	marketService := marketdata.NewService(priceStore, yahooClient, yahooClient, cfg.PriceMaxStale, log)

	// Computation services
	calcCache := calculations.NewCache(db, log)
	riskCalculator := risk.NewCalculator(marketService, cfg.RiskFreeRate, log)
	simulator := simulation.NewSimulator(marketService, 0, log)
	optimizer := optimization.NewService(marketService, log)
	predictor := prediction.NewPredictor(marketService, log)
	catalog := universe.NewCatalog()

	// Background jobs
	sched := scheduler.New(log)
	syncJob := marketdata.NewSyncJob(marketService, cfg.WatchedSymbols, cfg.LookbackDays, log)
	if cfg.PriceSyncEnabled {
		if err := sched.AddJob(cfg.PriceSyncCron, syncJob); err != nil {
			log.Fatal().Err(err).Msg("Failed to register price sync job")
		}
	}
	if err := sched.AddJob("@hourly", calculations.NewPurgeJob(calcCache, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache purge job")
	}
	sched.Start()
	defer sched.Stop()

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:    cfg.Port,
		Log:     log,
		DB:      db,
		DevMode: cfg.DevMode,
		Modules: []server.RouteRegistrar{
			marketdatahandlers.NewHandler(marketService, log),
			riskhandlers.NewHandler(riskCalculator, calcCache, log),
			simulationhandlers.NewHandler(simulator, cfg.DefaultNumPaths, log),
			optimizationhandlers.NewHandler(optimizer, log),
			predictionhandlers.NewHandler(predictor, log),
			universehandlers.NewHandler(catalog, log),
		},
	})

	// Warm the price cache in the background so first requests have data
	if cfg.PriceSyncEnabled {
		go func() {
			if err := sched.RunNow(syncJob); err != nil {
				log.Warn().Err(err).Msg("Initial price sync failed")
			}
		}()
	}

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
