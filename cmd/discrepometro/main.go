package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matheusmosca/discrepometro/internal/analyses"
	"github.com/matheusmosca/discrepometro/internal/companies"
	"github.com/matheusmosca/discrepometro/internal/config"
	"github.com/matheusmosca/discrepometro/internal/database"
	"github.com/matheusmosca/discrepometro/internal/httpapi"
	"github.com/matheusmosca/discrepometro/internal/logger"
	"github.com/matheusmosca/discrepometro/internal/stock"
	"github.com/matheusmosca/discrepometro/internal/telemetry"
	"github.com/matheusmosca/discrepometro/internal/transactions"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(logger.Config{
		Development: cfg.IsDevelopment(),
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	if err := run(cfg, logg); err != nil {
		logg.Fatal("❌ Server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize OpenTelemetry
	shutdown, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		Version:     version,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logg.Warn("Error shutting down telemetry", zap.Error(err))
		}
	}()

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		return err
	}

	// Initialize data store
	backend, err := database.Open(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer backend.Close()

	// Initialize dependencies
	services := httpapi.Services{
		Companies:    companies.NewUseCase(companies.NewRepository(backend), logg, metrics),
		Transactions: transactions.NewUseCase(transactions.NewRepository(backend), logg, metrics),
		Stock:        stock.NewUseCase(stock.NewRepository(backend), logg, metrics),
		Analyses:     analyses.NewUseCase(analyses.NewRepository(backend), logg, metrics),
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := httpapi.NewRouter(cfg, services, logg, telemetry.Tracer())
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("🚀 Discrepômetro listening", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
