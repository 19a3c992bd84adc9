package main

import (
	"context"

	"github.com/manavdhamecha77/fastrac-shipping/internal/config"
	"github.com/manavdhamecha77/fastrac-shipping/internal/telemetry"
	"github.com/manavdhamecha77/fastrac-shipping/pkg/rates"
	"github.com/manavdhamecha77/fastrac-shipping/pkg/rates/kurir"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}

	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
}

func initCache(cfg *config.Config) rates.RegionCache {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return rates.NewRedisCache(client, cfg.CacheTTL)
	}
	return rates.NewMemoryCache(cfg.CacheTTL)
}

func initCalculator(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) *rates.Calculator {
	provider := kurir.New(kurir.Config{
		AccessKey: cfg.KurirAccessKey,
		SecretKey: cfg.KurirSecretKey,
		BaseURL:   cfg.KurirBaseURL,
		Timeout:   cfg.RequestTimeout,
		UseMock:   cfg.KurirUseMock,
	}, logger, tracer)

	return rates.NewCalculator(rates.CalculatorConfig{
		OriginID:    cfg.KurirOriginID,
		SearchLimit: cfg.SearchLimit,
	}, provider, initCache(cfg), logger)
}

func fallbackRate(cfg *config.Config) rates.FallbackRate {
	return rates.FallbackRate{
		Cost:  cfg.FallbackCost,
		Label: cfg.FallbackLabel,
	}
}
