package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	userpostgres "github.com/Apurer/go-gin-pizza-service/internal/domains/users/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-pizza-service/internal/platform/config"
	platformobservability "github.com/Apurer/go-gin-pizza-service/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-pizza-service/internal/platform/postgres"
)

type purgerConfig struct {
	Postgres   config.Postgres
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"info"`
	SessionTTL time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	Timeout    time.Duration `envconfig:"PURGE_TIMEOUT" default:"30s"`
}

func main() {
	var cfg purgerConfig
	if err := config.Load(&cfg); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	logger := platformobservability.NewLogger(cfg.LogLevel, nil)
	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.Postgres.DSN, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge sessions")
	}

	store := userpostgres.NewSessionStore(db, cfg.SessionTTL)
	purged, err := store.PurgeExpired(ctx)
	if err != nil {
		log.Fatalf("failed to purge sessions: %v", err)
	}
	logger.Info("session purge completed", slog.Int64("purged", purged))
}
