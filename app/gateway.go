package app

import (
	"log"

	"job-marketplace-api/internal/config"
	"job-marketplace-api/internal/gateway"
	"job-marketplace-api/pkg/http_server"

	"github.com/redis/go-redis/v9"
)

func RunGateway() {
	cfg, err := config.LoadConfig(config.Gateway)
	if err != nil {
		log.Fatal(err)
	}

	l := newLogger(cfg)
	defer l.Sync()

	var limiter gateway.Limiter = gateway.NewMemoryLimiter()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()
		limiter = gateway.NewRedisLimiter(client, l)
		l.Info("rate limiting through redis", "addr", cfg.RedisAddr)
	}

	handler, err := gateway.New(gateway.Options{
		JobPortalURLs:   cfg.JobPortalURL,
		MarketplaceURLs: cfg.MarketplaceURL,
		Limiter:         limiter,
		RateLimit:       cfg.RateLimit,
		RateLimitWindow: cfg.RateLimitWindow,
	}, l)
	if err != nil {
		l.Fatal("invalid gateway configuration", "error", err)
	}

	l.Info("starting server...", "http", cfg.ServerAddress)
	httpServer := http_server.New(handler, cfg.ServerAddress)

	waitForShutdown(l, httpServer.Notify(), nil)

	l.Info("shutting down...")
	if err := httpServer.Shutdown(); err != nil {
		l.Error("shutdown error", "error", err)
		return
	}
	l.Info("successful shutdown")
}
