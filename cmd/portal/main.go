package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/memberhub/portal/config"
	"github.com/memberhub/portal/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		slog.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context) (err error) {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logger := bootstrap.InitLogger(cfg.Observability.Log)
	logStartupInfo(ctx, logger, &cfg)

	redisClient, err := bootstrap.ConnectSessionBackend(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("close redis: %w", cerr))
			}
		}()
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	portal, err := bootstrap.NewPortal(&bootstrap.HTTPServerConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	return bootstrap.RunWithShutdown(ctx, portal, cfg.HTTP)
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	store := "redis"
	if cfg.UseMemorySessions() {
		store = "memory"
	}
	logger.InfoContext(ctx, "starting member portal",
		"addr", cfg.HTTP.Addr,
		"backend", cfg.Backend.URL,
		"session_store", store,
		"dev", cfg.IsDev)
}
