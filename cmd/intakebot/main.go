package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/larriantoniy/tg_intake_bot/internal/adapters/memory"
	mongorepo "github.com/larriantoniy/tg_intake_bot/internal/adapters/mongo"
	"github.com/larriantoniy/tg_intake_bot/internal/adapters/tg"
	"github.com/larriantoniy/tg_intake_bot/internal/config"
	"github.com/larriantoniy/tg_intake_bot/internal/httpapi"
	"github.com/larriantoniy/tg_intake_bot/internal/observability"
	"github.com/larriantoniy/tg_intake_bot/internal/ports"
	"github.com/larriantoniy/tg_intake_bot/internal/useCases"
)

const (
	envDev  = "dev"
	envProd = "prod"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := setupLogger(cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	repo, err := newRecordRepo(ctx, cfg, logger)
	if err != nil {
		logger.Error("record repo init failed", "error", err)
		os.Exit(1)
	}

	metrics := observability.NewMetrics("intakebot")

	ops := httpapi.New(cfg.MetricsAddr, logger)
	go ops.Start()

	bot, err := tg.NewClient(cfg, logger)
	if err != nil {
		logger.Error("telegram client init failed", "error", err)
		os.Exit(1)
	}

	intake := useCases.NewIntake(logger, bot, repo, metrics)

	if err := intake.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("intake.Run error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	bot.Close()
	if err := ops.Shutdown(shutdownCtx); err != nil {
		logger.Error("ops server shutdown", "error", err)
	}
	if err := repo.Close(shutdownCtx); err != nil {
		logger.Error("record repo close", "error", err)
	}

	logger.Info("exit")
}

// newRecordRepo выбирает хранилище: Mongo при заданном URI, иначе in-memory
func newRecordRepo(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (ports.RecordRepo, error) {
	if cfg.Mongo.URI == "" {
		logger.Warn("MONGO_URI is empty, records will not survive restart")
		return memory.NewRecordRepo(), nil
	}
	return mongorepo.NewRecordRepo(ctx, cfg.Mongo.URI, cfg.Mongo.DBName)
}

func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return logger
}
