package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"book_catalog/config"
	"book_catalog/data/db/sqlite"
	redisClient "book_catalog/data/redis"
	"book_catalog/internal/lib/clock"
	"book_catalog/internal/repository"
	"book_catalog/internal/service/catalogService"
	"book_catalog/internal/transport/console"
	"book_catalog/utils"
)

func main() {
	cfg := config.MustLoad()

	setupLogger(cfg)

	slog.Debug("config", slog.Any("cfg", cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storage, closeStorage := newStorage(cfg)
	defer closeStorage()

	svc, err := catalogService.New(utils.CreateCtxWithRqID(ctx), cfg, storage, clock.System{})
	if err != nil {
		slog.Error("failed to init catalog", slog.String("err", err.Error()))
		os.Exit(1)
	}

	ctrl := console.NewController(cfg, svc, os.Stdin, os.Stdout)

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Run(ctx)
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case err = <-done:
		if err != nil {
			slog.Error("console stopped with error", slog.String("err", err.Error()))
			os.Exit(1)
		}
	case sig := <-interrupt:
		slog.Info("got signal, saving catalog", slog.String("signal", sig.String()))
		cancel()
		if err = svc.Save(utils.CreateCtxWithRqID(context.Background())); err != nil {
			slog.Error("failed to save catalog", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}
}

func newStorage(cfg *config.Config) (catalogService.Storage, func()) {
	switch cfg.Storage.Driver {
	case config.StorageSqlite:
		db := sqlite.MustInitSqlite(cfg)
		return repository.NewSqliteRepo(db), func() { _ = db.Close() }
	case config.StorageRedis:
		rdb := redisClient.MustInitRedis(cfg)
		return repository.NewRedisRepo(rdb, cfg.Redis.CatalogKey), func() { _ = rdb.Close() }
	default:
		return repository.NewJSONFile(cfg.Storage.FilePath), func() {}
	}
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	// stdout belongs to the console menu
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
