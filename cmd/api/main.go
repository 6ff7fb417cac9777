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

	"github.com/rs/zerolog"

	"github.com/99minutos/service-catalog/internal/api"
	"github.com/99minutos/service-catalog/internal/api/handler"
	"github.com/99minutos/service-catalog/internal/core/service"
	"github.com/99minutos/service-catalog/internal/infrastructure/config"
	"github.com/99minutos/service-catalog/internal/infrastructure/db/memory"
	"github.com/99minutos/service-catalog/internal/infrastructure/db/mongo"
	"github.com/99minutos/service-catalog/internal/infrastructure/db/redis"
	"github.com/99minutos/service-catalog/pkg/logger"
)

const appName = "service-catalog"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: appName,
		Env:     cfg.Env,
	})

	deps := api.Dependencies{
		Tokens:       service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		TokenTTL:     cfg.TokenTTL,
		Checks:       map[string]handler.DependencyCheck{},
		Logger:       log,
		SecureCookie: cfg.IsProduction(),
	}

	var cleanups []func(context.Context)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i](shutdownCtx)
		}
	}()

	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: appName})
		if err != nil {
			return err
		}
		cleanups = append(cleanups, func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		})
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		deps.Services = mongo.NewServiceRepository(db)
		deps.Users = mongo.NewUserRepository(db)
		deps.Checks["mongo"] = mongo.Healthcheck(client)
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")
	case config.DriverMemory:
		deps.Services = memory.NewServiceRepository()
		deps.Users = memory.NewUserRepository()
		log.Warn().Msg("using in-memory store; data is lost on restart")
	}

	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		cleanups = append(cleanups, func(context.Context) {
			if err := client.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close")
			}
		})
		deps.UserLookup = redis.NewUserCache(client, deps.Users, cfg.Redis.UserTTL, logger.Component("user_cache"))
		deps.Checks["redis"] = redis.Healthcheck(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("user cache enabled")
	}

	e := api.NewRouter(deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	return shutdown(e.Shutdown, cfg.ShutdownTimeout, log)
}

func shutdown(fn func(context.Context) error, timeout time.Duration, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info().Msg("http server stopped")
	return nil
}
