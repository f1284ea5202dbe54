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

	"github.com/kailas-cloud/cinema/internal/config"
	dbRedis "github.com/kailas-cloud/cinema/internal/db/redis"
	"github.com/kailas-cloud/cinema/internal/domain"
	logpkg "github.com/kailas-cloud/cinema/internal/logger"
	"github.com/kailas-cloud/cinema/internal/metrics"
	"github.com/kailas-cloud/cinema/internal/repository/artifact"
	"github.com/kailas-cloud/cinema/internal/repository/reccache"
	chiTransport "github.com/kailas-cloud/cinema/internal/transport/chi"
	healthuc "github.com/kailas-cloud/cinema/internal/usecase/health"
	"github.com/kailas-cloud/cinema/internal/usecase/recommend"
	"github.com/kailas-cloud/cinema/internal/version"
)

func main() {
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

	logger.Info("Starting cinema API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog", cfg.Artifacts.CatalogPath),
		zap.String("matrix", cfg.Artifacts.MatrixPath),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// Artifacts must load completely before the listener starts.
	arts, err := artifact.Load(cfg.Artifacts.CatalogPath, cfg.Artifacts.MatrixPath)
	if err != nil {
		logger.Fatal("Failed to load artifacts", zap.Error(err))
	}

	engine, err := recommend.New(arts.Catalog, arts.Matrix)
	if err != nil {
		logger.Fatal("Failed to build recommendation engine", zap.Error(err))
	}
	logger.Info("Artifacts loaded",
		zap.Int("movies", arts.Catalog.Len()),
		zap.String("fingerprint", arts.Fingerprint),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterEngineMetrics()
	metrics.CatalogItems.Set(float64(arts.Catalog.Len()))

	// Decorator chain: engine -> cached (optional) -> instrumented
	var recommender domain.Recommender = engine
	var cachePinger healthuc.CachePinger
	if cfg.Cache.Enabled {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.Cache.Addrs,
			Password:   cfg.Cache.Password,
			Standalone: cfg.Cache.Standalone,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(context.Background(), readiness); err != nil {
			logger.Fatal("Cache not ready", zap.String("driver", cfg.Cache.Driver), zap.Error(err))
		}
		logger.Info("Connected to cache",
			zap.String("driver", cfg.Cache.Driver),
			zap.Strings("addrs", cfg.Cache.Addrs),
			zap.Duration("ttl", cfg.Cache.TTL()),
		)

		guarded := reccache.NewBreakerStore(store, reccache.DefaultBreakerSettings(), logger)
		recommender = reccache.New(
			recommender, guarded, arts.Fingerprint, cfg.Cache.TTL(),
			metrics.RecommendCacheTotal, logger,
		)
		cachePinger = store
	}
	recommender = recommend.NewInstrumented(recommender, logger)

	healthSvc := healthuc.New(engine, cachePinger)

	server := chiTransport.NewServer(recommender, engine, healthSvc, logger)
	handler := chiTransport.NewRouter(server, chiTransport.RouterOptions{
		APIKeys:            cfg.Auth.APIKeys,
		RateLimitPerMin:    cfg.HTTP.RateLimitPerMin,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

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
