package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mfreitas/clima-api/internal/api"
	"github.com/mfreitas/clima-api/internal/app"
	"github.com/mfreitas/clima-api/internal/config"
	"github.com/mfreitas/clima-api/internal/geocode"
	"github.com/mfreitas/clima-api/internal/history"
	"github.com/mfreitas/clima-api/internal/metrics"
	"github.com/mfreitas/clima-api/internal/position"
	"github.com/mfreitas/clima-api/internal/service"
	"github.com/mfreitas/clima-api/internal/stats"
	"github.com/mfreitas/clima-api/internal/weather"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := history.Open(context.Background(), "")
	if err != nil {
		logger.Fatal("Failed to open history database", zap.Error(err))
	}
	defer db.Close()

	if err := history.Migrate(db, "file://migrations/sqlite"); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	store := history.NewStore(db)

	geocoder := geocode.NewClient(cfg.Geocode)
	fetcher := weather.NewClient(cfg.Weather)
	source := position.NewIPSource(cfg.Position)

	orchestrator := app.NewOrchestrator(fetcher, store, logger)
	metricsCollector := metrics.NewCollector("clima")
	svc := service.NewService(geocoder, source, orchestrator, store, cfg.Suggest, metricsCollector, logger)
	statsCollector := stats.NewCollector(store)
	router := api.NewRouter(svc, statsCollector, metricsCollector)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
