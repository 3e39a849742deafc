package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sayeedajmal/saudimart-core/api/routes"
	internalcatalog "github.com/sayeedajmal/saudimart-core/internal/catalog"
	"github.com/sayeedajmal/saudimart-core/internal/composer"
	"github.com/sayeedajmal/saudimart-core/internal/quotes"
	"github.com/sayeedajmal/saudimart-core/pkg/backend"
	"github.com/sayeedajmal/saudimart-core/pkg/config"
	"github.com/sayeedajmal/saudimart-core/pkg/logger"
	"github.com/sayeedajmal/saudimart-core/pkg/metrics"
	"github.com/sayeedajmal/saudimart-core/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	backendClient, err := backend.NewClient(cfg.Backend)
	if err != nil {
		logg.Error(context.Background(), "failed to build backend client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	compositionMetrics := metrics.NewCompositionMetrics(registry)

	productLoader := internalcatalog.NewLoader(backendClient, redisClient, cfg.Cache, logg)
	composeService := composer.NewService(backendClient, logg, compositionMetrics, productLoader)

	quoteService, err := quotes.NewService(backendClient, productLoader, cfg.Quote, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build quote service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, registry,
			composeService, productLoader, quoteService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
