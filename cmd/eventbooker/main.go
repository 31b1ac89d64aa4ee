package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Basmalamoustafa/event-frontend/internal/api"
	"github.com/Basmalamoustafa/event-frontend/internal/config"
	"github.com/Basmalamoustafa/event-frontend/internal/session"
	"github.com/Basmalamoustafa/event-frontend/internal/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.Env),
	}))

	store := session.NewFileStore(cfg.StatePath, logger)
	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout, store, logger)
	shell := ui.New(client, store, cfg.CatalogPageSize, cfg.AdminPageSize, os.Stdin, os.Stdout, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("client starting", "api", cfg.APIBaseURL, "env", cfg.Env)
	shell.Run(ctx)
}

func logLevel(env string) slog.Level {
	if env == "development" {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
