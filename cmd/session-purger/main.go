package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/app/api"
	userpostgres "github.com/Apurer/go-gin-storefront/internal/domains/users/adapters/persistence/postgres"
	platformpostgres "github.com/Apurer/go-gin-storefront/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		logger.Error("POSTGRES_DSN not set or connection failed, cannot purge sessions")
		os.Exit(1)
	}

	removed, err := userpostgres.NewSessionStore(db).PurgeExpired(ctx, time.Now().UTC())
	if err != nil {
		logger.Error("failed to purge sessions", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("session purge completed", slog.Int64("removed", removed))
}
