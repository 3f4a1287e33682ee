package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"valuation_service/internal/config"
	"valuation_service/internal/domain/service/pricing"
	"valuation_service/internal/domain/service/valuation"
	"valuation_service/internal/infrastructure/cache"
	"valuation_service/internal/server"
	"valuation_service/pkg/application/connectors"
	"valuation_service/pkg/application/modules"
	"valuation_service/pkg/contextx"
	"valuation_service/pkg/logx"
	"valuation_service/pkg/middlewarex"
	"valuation_service/pkg/probe"
)

const metricsNamespace = "valuation_service"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Run wires the service and blocks until ctx is done or a module fails.
func Run(ctx context.Context, cfg config.Config) error {
	logger(ctx).Info(
		"application starting",
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
		slog.String(logx.FieldModelVersion, pricing.ModelVersion),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := valuation.NewService(pricing.NewDefaultEngine(), valuation.NewMetrics(registry, metricsNamespace))

	var readinessChecks []probe.ReadinessCheck

	switch cfg.Cache.Driver {
	case config.CacheDriverMemory:
		svc.WithCache(cache.NewMemory(cfg.Cache.TTL, cfg.Cache.CleanupInterval))
	case config.CacheDriverRedis:
		redisConnector := &connectors.Redis{
			Username:           cfg.Redis.Username,
			Password:           cfg.Redis.Password,
			Address:            cfg.Redis.Address,
			DatabaseNumber:     cfg.Redis.DatabaseNumber,
			PoolSize:           cfg.Redis.PoolSize,
			MinIdleConnections: cfg.Redis.MinIdleConnections,
			MaxIdleConnections: cfg.Redis.MaxIdleConnections,
		}
		defer redisConnector.Close(ctx)

		redisClient, err := redisConnector.Client(ctx)
		if err != nil {
			return fmt.Errorf("redisConnector.Client: %w", err)
		}

		svc.WithCache(cache.NewRedis(redisClient, cfg.Cache.TTL))
		readinessChecks = append(readinessChecks, redisConnector.Ping)
	}

	logger(ctx).Info("estimate cache configured", slog.String(logx.FieldCacheDriver, cfg.Cache.Driver))

	httpMetrics := middlewarex.NewHTTPMetrics(registry, metricsNamespace)

	router := server.NewRouter(
		server.NewServer(server.NewValuationServer(svc, cfg.HTTP.MaxBatchSize)),
		server.RouterOptions{
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			LogFieldMaxLen: cfg.HTTP.LogFieldMaxLen,
			Masker:         logx.NewSensitiveDataMasker(),
			Metrics:        &httpMetrics,
		},
	)

	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, httpServer)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ModelVersion:  pricing.ModelVersion,
		ListenAddress: cfg.Probe.ListenAddress,
	}.Run(ctx, g, readinessChecks...)

	modules.MetricServer{ListenAddress: cfg.Metrics.ListenAddress}.Run(ctx, g, registry)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("errgroup.Wait: %w", err)
	}

	logger(ctx).Info("application stopped")

	return nil
}
