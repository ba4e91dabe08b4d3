package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/esgate/internal/config"
	"github.com/kailas-cloud/esgate/internal/db/elastic"
	"github.com/kailas-cloud/esgate/internal/db/observed"
	logpkg "github.com/kailas-cloud/esgate/internal/logger"
	"github.com/kailas-cloud/esgate/internal/metrics"
	chiTransport "github.com/kailas-cloud/esgate/internal/transport/chi"
	gatewayuc "github.com/kailas-cloud/esgate/internal/usecase/gateway"
	healthuc "github.com/kailas-cloud/esgate/internal/usecase/health"
	"github.com/kailas-cloud/esgate/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting esgate API server",
		zap.String("version", version.String()),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("elastic_hosts", cfg.Elastic.Addresses()),
		zap.Bool("elastic_auth", cfg.Elastic.Password != ""),
		zap.Bool("api_auth", len(cfg.Auth.APIKeys) > 0),
	)

	store, err := elastic.NewStore(elastic.Config{
		Addresses: cfg.Elastic.Addresses(),
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create search backend", zap.Error(err))
	}

	// Wait for the cluster to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Elastic.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Search cluster not ready", zap.Error(err))
	}
	logger.Info("Connected to search cluster")

	metrics.RegisterBackendMetrics()
	backend := observed.New(store, logger)

	gatewaySvc := gatewayuc.New(backend)
	healthSvc := healthuc.New(backend, healthuc.DefaultTimeout)

	server := chiTransport.NewServer(gatewaySvc, healthSvc, int64(cfg.HTTP.MaxBodyBytes), logger)
	handler := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
